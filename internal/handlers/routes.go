package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
)

// Dependencies are the collaborators the handlers are built from.
type Dependencies struct {
	Store    *repository.Store
	Payments *services.PaymentService
	Verifier services.IdentityVerifier
	Events   services.EventPublisher
	Notifier services.Notifier
	Images   ImageStore
	Hub      *services.Hub
}

// RegisterRoutes mounts every endpoint on r.
//
// Admin routes chain AuthMiddleware and then AdminOnly. AdminOnly reads the
// identity AuthMiddleware stores and rejects the request when it is missing,
// so the order matters.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ProFast parcel server is running")
	})

	auth := middleware.AuthMiddleware(deps.Verifier)
	admin := middleware.AdminOnly(deps.Store.Users)

	// WebSocket connection, token passed as a query parameter
	r.GET("/ws", auth, admin, WebSocketHandler(deps.Hub))

	protected := r.Group("/")
	protected.Use(auth)
	{
		// Parcel routes
		protected.POST("/parcels", CreateParcel(deps.Store.Parcels))
		protected.GET("/parcels/:email", ListParcelsBySender(deps.Store.Parcels))
		protected.GET("/parcel/:id", GetParcel(deps.Store.Parcels))
		protected.DELETE("/parcels/:id", DeleteParcel(deps.Store.Parcels, deps.Store.Users))
		protected.POST("/uploads/parcel-image", UploadParcelImage(deps.Images))

		// User routes
		protected.POST("/users", UpsertUser(deps.Store.Users))
		protected.GET("/users", ListUsers(deps.Store.Users))
		protected.GET("/users/:email", GetUser(deps.Store.Users))
		protected.GET("/users/:email/role", GetUserRole(deps.Store.Users))
		protected.PATCH("/users/role/:email", admin, UpdateUserRole(deps.Store.Users, deps.Events))

		// Rider routes
		protected.POST("/riders", ApplyRider(deps.Store.Riders, deps.Events))
		protected.GET("/riders", admin, ListRiders(deps.Store.Riders))
		protected.GET("/riders/pending", admin, ListPendingRiders(deps.Store.Riders))
		protected.PATCH("/riders/:id", admin, ReviewRider(deps.Store.Riders, deps.Events, deps.Notifier))

		// Payment routes
		protected.POST("/create-payment-intent", CreatePaymentIntent(deps.Payments))
		protected.POST("/payments", RecordPayment(deps.Payments, deps.Notifier))
		protected.GET("/payments", ListPayments(deps.Payments, deps.Store.Users))
	}
}
