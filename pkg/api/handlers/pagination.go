package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationConfig bounds the limit query parameter.
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

var DefaultPaginationConfig = PaginationConfig{
	DefaultLimit: 15,
	MaxLimit:     100,
}

// Pagination is the meta.pagination object of list responses.
type Pagination struct {
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
	Pages int  `json:"pages"`
	Total int  `json:"total"`
	Next  *int `json:"next"`
	Prev  *int `json:"prev"`
}

func GetPage(c *gin.Context) int {
	page, _ := strconv.Atoi(c.Query("page"))
	if page <= 0 {
		return 1
	}
	return page
}

func GetLimit(c *gin.Context) int {
	cfg := DefaultPaginationConfig
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		return cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}

func GetOffset(page, limit int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * limit
}

// NewPagination builds the meta block for one page of total items.
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.Pages = (total + limit - 1) / limit
	}
	if page < p.Pages {
		next := page + 1
		p.Next = &next
	}
	if page > 1 {
		prev := page - 1
		p.Prev = &prev
	}
	return p
}
