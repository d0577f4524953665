package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/web"
)

// Keys the server owns on a parcel. Clients cannot set them through the
// free-form body.
var parcelTypedKeys = []string{
	"_id", "title", "parcelType", "senderEmail", "cost",
	"paymentStatus", "transactionId", "paidAt", "createdAt",
}

func CreateParcel(parcels repository.ParcelRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "Request body must be a JSON object")
			return
		}

		title := stringField(body, "title")
		parcelType := stringField(body, "parcelType")
		if title == "" || parcelType == "" {
			badRequest(c, "title and parcelType are required")
			return
		}

		cost, ok := costField(body)
		if !ok {
			badRequest(c, "cost must be a number between 0 and 999999.99")
			return
		}

		senderEmail := strings.ToLower(stringField(body, "senderEmail"))
		if senderEmail == "" {
			senderEmail = middleware.CallerEmail(c)
		}

		parcel := &models.Parcel{
			Title:         title,
			ParcelType:    parcelType,
			SenderEmail:   senderEmail,
			Cost:          cost,
			PaymentStatus: models.PaymentStatusUnpaid,
			CreatedAt:     time.Now().UTC(),
			Details:       datatypes.JSONMap(models.SplitDetails(body, parcelTypedKeys...)),
		}

		if err := parcels.Create(c.Request.Context(), parcel); err != nil {
			fail(c, err)
			return
		}

		web.RespondCreated(c, "Parcel created successfully", parcel.ID, parcel)
	}
}

// ListParcelsBySender returns the sender's parcels, newest first.
func ListParcelsBySender(parcels repository.ParcelRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.Param("email")))
		if email == "" {
			badRequest(c, "email is required")
			return
		}

		list, err := parcels.ListBySender(c.Request.Context(), email)
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", list)
	}
}

func GetParcel(parcels repository.ParcelRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := models.ParseID(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		parcel, err := parcels.FindByID(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", parcel)
	}
}

// DeleteParcel removes a parcel. Only its sender or an admin may do so.
func DeleteParcel(parcels repository.ParcelRepository, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := models.ParseID(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		parcel, err := parcels.FindByID(ctx, id)
		if err != nil {
			fail(c, err)
			return
		}

		caller := middleware.CallerEmail(c)
		if parcel.SenderEmail != caller {
			user, err := users.FindByEmail(ctx, caller)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				fail(c, err)
				return
			}
			if !user.IsAdmin() {
				fail(c, models.ErrForbidden)
				return
			}
		}

		if err := parcels.Delete(ctx, id); err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "Parcel deleted successfully", gin.H{"deletedCount": 1})
	}
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return strings.TrimSpace(s)
}

// costField reads an optional cost. Absent means zero.
// Values above MaxParcelCost are rejected.
func costField(body map[string]interface{}) (float64, bool) {
	raw, present := body["cost"]
	if !present || raw == nil {
		return 0, true
	}
	cost, ok := raw.(float64)
	if !ok || cost < 0 || cost > models.MaxParcelCost || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, false
	}
	return cost, true
}
