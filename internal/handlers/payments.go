package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/web"
)

// CreatePaymentIntent starts a card payment for a parcel. Any amount in the
// body is ignored; the charge is derived from the stored cost.
func CreatePaymentIntent(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ParcelID     string `json:"parcelId" binding:"required"`
			CustomerName string `json:"customerName"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "parcelId is required")
			return
		}

		intent, err := payments.CreateIntent(c.Request.Context(), input.ParcelID, services.Customer{
			Name:  strings.TrimSpace(input.CustomerName),
			Email: middleware.CallerEmail(c),
		})
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", intent)
	}
}

// RecordPayment stores a confirmed payment and marks the parcel paid.
func RecordPayment(payments *services.PaymentService, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ParcelID        string `json:"parcelId" binding:"required"`
			TransactionID   string `json:"transactionId"`
			PaymentIntentID string `json:"paymentIntentId"`
			CustomerName    string `json:"customerName"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "parcelId is required")
			return
		}

		transactionID := strings.TrimSpace(input.TransactionID)
		if transactionID == "" {
			transactionID = strings.TrimSpace(input.PaymentIntentID)
		}
		if transactionID == "" {
			badRequest(c, "transactionId is required")
			return
		}

		payment, parcel, err := payments.Record(c.Request.Context(), services.RecordInput{
			ParcelID:      input.ParcelID,
			TransactionID: transactionID,
			Customer: services.Customer{
				Name:  strings.TrimSpace(input.CustomerName),
				Email: middleware.CallerEmail(c),
			},
		})
		if err != nil {
			fail(c, err)
			return
		}

		notifyPayment(c, notifier, payment)
		web.RespondCreated(c, "Payment recorded", payment.ID, gin.H{"payment": payment, "parcel": parcel})
	}
}

// ListPayments returns the payment history visible to the caller. The scope is
// decided by the caller's stored role; query parameters cannot widen it.
func ListPayments(payments *services.PaymentService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.CallerEmail(c)

		caller, err := users.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, models.ErrNotFound) {
			caller = &models.User{Email: email, Role: models.RoleUser}
		} else if err != nil {
			fail(c, err)
			return
		}

		list, err := payments.List(c.Request.Context(), caller, strings.ToLower(strings.TrimSpace(c.Query("email"))))
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", list)
	}
}
