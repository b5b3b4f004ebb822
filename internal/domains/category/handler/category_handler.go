package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/blcktgr73/StudyBlog/internal/domains/category"
	"github.com/blcktgr73/StudyBlog/internal/shared/response"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

type CategoryHandler struct {
	service category.Service
}

// NewCategoryHandler - constructor
func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list categories", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.OK(c, gin.H{"categories": categories})
}

// GetBySlug handles GET /categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("failed to get category", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.OK(c, cat)
}
