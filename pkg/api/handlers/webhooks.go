package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-admin-go/pkg/api/response"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/services"
)

type webhooksRequest struct {
	Webhooks []models.WebhookCreate `json:"webhooks" binding:"required,min=1,dive"`
}

// ListWebhooks lists every webhook
func ListWebhooks(service *services.WebhookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hooks, err := service.List(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"webhooks": hooks})
	}
}

// CreateWebhook registers the first webhook of the request body
func CreateWebhook(service *services.WebhookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req webhooksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Validation(c, err.Error())
			return
		}

		hook, err := service.Create(c.Request.Context(), req.Webhooks[0])
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"webhooks": []*models.Webhook{hook}})
	}
}

// DeleteWebhook removes a webhook
func DeleteWebhook(service *services.WebhookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.FromError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
