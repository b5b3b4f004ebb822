package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/blcktgr73/StudyBlog/internal/domains/tag"
	"github.com/blcktgr73/StudyBlog/internal/shared/response"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

type TagHandler struct {
	service tag.Service
}

// NewTagHandler - constructor
func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list tags", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.OK(c, gin.H{"tags": tags})
}

// GetBySlug handles GET /tags/:slug
func (h *TagHandler) GetBySlug(c *gin.Context) {
	tg, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("failed to get tag", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.OK(c, tg)
}
