package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-admin-go/pkg/api/response"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/services"
)

type linkUpdateRequest struct {
	Link models.LinkUpdate `json:"link" binding:"required"`
}

// ListPosts lists every post
func ListPosts(service *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := service.List(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"posts": posts})
	}
}

// ListNewsletters lists every newsletter
func ListNewsletters(service *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		newsletters, err := service.ListNewsletters(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"newsletters": newsletters})
	}
}

// ListPostLinks lists the tracked links of a post
func ListPostLinks(service *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := service.ListPostLinks(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"links": links})
	}
}

// UpdatePostLink changes where a post link points
func UpdatePostLink(service *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req linkUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Validation(c, err.Error())
			return
		}

		link, err := service.UpdatePostLink(c.Request.Context(), c.Param("id"), c.Param("link_id"), req.Link.To)
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"links": []*models.PostLink{link}})
	}
}
