package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-admin-go/pkg/api/response"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/services"
)

type membersRequest struct {
	Members []models.MemberCreate `json:"members" binding:"required,min=1,dive"`
}

// ListMembers returns one page of members
func ListMembers(service *services.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := GetPage(c), GetLimit(c)

		members, total, err := service.List(c.Request.Context(), limit, GetOffset(page, limit))
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"members": members,
			"meta":    gin.H{"pagination": NewPagination(page, limit, total)},
		})
	}
}

// CreateMember creates the first member of the request body
func CreateMember(service *services.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Validation(c, err.Error())
			return
		}

		member, err := service.Create(c.Request.Context(), req.Members[0])
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"members": []*models.Member{member}})
	}
}

// GetMember returns a single member
func GetMember(service *services.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := service.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"members": []*models.Member{member}})
	}
}

// DeleteMember deletes a member
func DeleteMember(service *services.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.FromError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
