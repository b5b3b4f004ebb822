package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blcktgr73/StudyBlog/internal/domains/post"
	"github.com/blcktgr73/StudyBlog/internal/shared/middleware"
	"github.com/blcktgr73/StudyBlog/internal/shared/response"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

type PostHandler struct {
	service post.Service
}

// NewPostHandler - constructor
func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, post.ErrFieldsRequired.Error())
		return
	}

	detail, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, detail)
}

// List handles GET /posts. A slug query resolves a single post the way
// the dedicated slug route does.
func (h *PostHandler) List(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		h.getBySlug(c, slug)
		return
	}

	filter := post.ListFilter{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("search"),
		Published:    post.PublishedOnly,
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			response.BadRequest(c, "Invalid author id")
			return
		}
		filter.AuthorID = authorID
	}

	callerID, authed := middleware.CallerID(c)
	ownAuthor := authed && filter.AuthorID != uuid.Nil && filter.AuthorID == callerID

	// Authors browsing their own posts see drafts alongside published
	// work without asking; everyone else sees published only.
	switch c.Query("published") {
	case "false":
		filter.Published = post.DraftsOnly
	case "all":
		filter.Published = post.PublishedAny
	case "":
		if ownAuthor {
			filter.Published = post.PublishedAny
		}
	}

	if filter.Published != post.PublishedOnly {
		if !authed {
			response.Unauthorized(c, "Authentication required")
			return
		}
		if filter.AuthorID == uuid.Nil {
			filter.AuthorID = callerID
		} else if filter.AuthorID != callerID {
			// Another author's drafts stay invisible; the author
			// filter itself is honored.
			filter.Published = post.PublishedOnly
		}
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetBySlug handles GET /posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	h.getBySlug(c, c.Param("slug"))
}

func (h *PostHandler) getBySlug(c *gin.Context, slug string) {
	viewerID, _ := middleware.CallerID(c)

	detail, err := h.service.GetBySlug(c.Request.Context(), slug, viewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, detail)
}

// Update handles PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, post.ErrInvalidTitle.Error())
		return
	}

	detail, err := h.service.Update(c.Request.Context(), postID, callerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, detail)
}

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, callerID); err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, gin.H{"success": true})
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, post.ErrFieldsRequired), errors.Is(err, post.ErrInvalidTitle):
		response.BadRequest(c, err.Error())
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, post.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, post.ErrSlugConflict):
		response.Conflict(c, err.Error())
	default:
		logger.Error("post handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
