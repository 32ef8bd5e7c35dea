package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-admin-go/pkg/api/middleware"
	"newsletter-admin-go/pkg/api/response"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/services"
)

// CreateUser registers a user and returns its API key
func CreateUser(service *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UserCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Validation(c, err.Error())
			return
		}

		user, err := service.Register(c.Request.Context(), req.Email, "")
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// GetCurrentUser returns the authenticated user without its API key
func GetCurrentUser(c *gin.Context) {
	user, ok := c.MustGet(middleware.UserKey).(*models.User)
	if !ok {
		response.Unauthorized(c, "User not found")
		return
	}

	me := *user
	me.APIKey = ""
	c.JSON(http.StatusOK, me)
}
