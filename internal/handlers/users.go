package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/web"
)

// UpsertUser registers the caller on first sign-in and records the login
// otherwise. The response tells the two apart with "created".
func UpsertUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			PhotoURL string `json:"photoURL"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Request body must be a JSON object")
			return
		}

		caller := middleware.CallerEmail(c)
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email == "" {
			email = caller
		}
		if email != caller {
			fail(c, models.ErrForbidden)
			return
		}

		user, created, err := users.UpsertOnLogin(c.Request.Context(), email, strings.TrimSpace(input.Name), strings.TrimSpace(input.PhotoURL))
		if err != nil {
			fail(c, err)
			return
		}

		status, message := http.StatusOK, "Login recorded"
		if created {
			status, message = http.StatusCreated, "User registered"
		}
		web.Respond(c, status, message, gin.H{"created": created, "user": user})
	}
}

func ListUsers(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", list)
	}
}

func GetUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.FindByEmail(c.Request.Context(), emailParam(c))
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", user)
	}
}

// GetUserRole returns only the stored role, which clients use to pick a
// dashboard.
func GetUserRole(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.FindByEmail(c.Request.Context(), emailParam(c))
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusOK, "", gin.H{"email": user.Email, "role": user.Role})
	}
}

func UpdateUserRole(users repository.UserRepository, events services.EventPublisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Role string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "role is required")
			return
		}

		role, err := models.ParseRole(strings.ToLower(strings.TrimSpace(input.Role)))
		if err != nil {
			fail(c, err)
			return
		}

		user, err := users.UpdateRole(c.Request.Context(), emailParam(c), role)
		if err != nil {
			fail(c, err)
			return
		}

		publish(c, events, services.EventRoleUpdated, user)
		web.Respond(c, http.StatusOK, "Role updated", user)
	}
}

func emailParam(c *gin.Context) string {
	return strings.ToLower(strings.TrimSpace(c.Param("email")))
}
