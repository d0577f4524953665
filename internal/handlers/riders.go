package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/web"
)

var riderTypedKeys = []string{
	"_id", "email", "name", "phone", "region", "district",
	"status", "createdAt", "reviewedAt",
}

// ApplyRider files the caller's rider application. A pending or approved
// application for the same email is a conflict; a denied one is resubmitted.
func ApplyRider(riders repository.RiderRepository, events services.EventPublisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "Request body must be a JSON object")
			return
		}

		name := stringField(body, "name")
		if name == "" {
			badRequest(c, "name is required")
			return
		}

		caller := middleware.CallerEmail(c)
		email := strings.ToLower(stringField(body, "email"))
		if email == "" {
			email = caller
		}
		if email != caller {
			fail(c, models.ErrForbidden)
			return
		}

		application := &models.RiderApplication{
			Email:     email,
			Name:      name,
			Phone:     stringField(body, "phone"),
			Region:    stringField(body, "region"),
			District:  stringField(body, "district"),
			Status:    models.ApplicationPending,
			CreatedAt: time.Now().UTC(),
			Details:   datatypes.JSONMap(models.SplitDetails(body, riderTypedKeys...)),
		}

		if err := riders.Apply(c.Request.Context(), application); err != nil {
			fail(c, err)
			return
		}

		publish(c, events, services.EventRiderApplied, application)
		web.RespondCreated(c, "Rider application submitted", application.ID, application)
	}
}

// ListRiders returns every application, optionally filtered by ?status=.
func ListRiders(riders repository.RiderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status models.ApplicationStatus
		if raw := c.Query("status"); raw != "" {
			parsed, err := models.ParseApplicationStatus(raw)
			if err != nil {
				fail(c, err)
				return
			}
			status = parsed
		}

		list, err := riders.List(c.Request.Context(), status)
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", list)
	}
}

func ListPendingRiders(riders repository.RiderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := riders.List(c.Request.Context(), models.ApplicationPending)
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", list)
	}
}

// ReviewRider sets the application status and the applicant's role together.
func ReviewRider(riders repository.RiderRepository, events services.EventPublisher, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := models.ParseID(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "status is required")
			return
		}

		status, err := models.ParseApplicationStatus(strings.ToLower(strings.TrimSpace(input.Status)))
		if err != nil {
			fail(c, err)
			return
		}

		application, err := riders.Review(c.Request.Context(), id, status)
		if err != nil {
			fail(c, err)
			return
		}

		publish(c, events, services.EventRiderReviewed, application)
		notifyReview(c, notifier, application)
		web.Respond(c, http.StatusOK, "Rider application "+string(status), application)
	}
}
