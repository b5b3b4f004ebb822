package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blcktgr73/StudyBlog/internal/domains/post"
	"github.com/blcktgr73/StudyBlog/internal/shared/utils"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

type postService struct {
	repo post.Repository
}

// NewPostService - constructor
func NewPostService(repo post.Repository) post.Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req post.CreatePostRequest) (*post.Detail, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, post.ErrFieldsRequired
	}

	baseSlug := utils.GenerateSlug(title)
	if baseSlug == "" {
		baseSlug = "post"
	}

	slug, err := s.repo.GenerateUniqueSlug(ctx, baseSlug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	stats := post.ProcessContent(req.Content)
	now := time.Now()

	p := &post.Post{
		ID:             uuid.New(),
		Title:          title,
		Slug:           slug,
		Content:        req.Content,
		CoverImage:     req.CoverImage,
		AuthorID:       authorID,
		CategoryID:     req.CategoryID,
		IsPublished:    req.IsPublished,
		ReadingTime:    stats.ReadingTime,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if stats.Excerpt != "" {
		p.Excerpt = &stats.Excerpt
	}
	if req.IsPublished {
		p.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, p, req.TagIDs); err != nil {
		return nil, err
	}

	logger.Info("post created", map[string]interface{}{
		"postId": p.ID.String(),
		"slug":   p.Slug,
	})

	return s.repo.GetDetailByID(ctx, p.ID)
}

func (s *postService) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error) {
	d, err := s.repo.GetDetailBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	// The increment is fire-and-forget for the caller; the response
	// reflects the read it triggered.
	if err := s.repo.IncrementViewCount(ctx, d.ID); err != nil {
		logger.Warn("failed to increment view count", err)
	} else {
		d.ViewCount++
	}

	return d, nil
}

func (s *postService) Update(ctx context.Context, id, callerID uuid.UUID, req post.UpdatePostRequest) (*post.Detail, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.AuthorID != callerID {
		return nil, post.ErrNotOwner
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, post.ErrInvalidTitle
		}
		if title != existing.Title {
			baseSlug := utils.GenerateSlug(title)
			if baseSlug == "" {
				baseSlug = "post"
			}
			slug, err := s.repo.GenerateUniqueSlug(ctx, baseSlug, existing.ID)
			if err != nil {
				return nil, err
			}
			existing.Slug = slug
		}
		existing.Title = title
	}

	if req.Content != nil {
		existing.Content = *req.Content
		stats := post.ProcessContent(*req.Content)
		existing.ReadingTime = stats.ReadingTime
		if stats.Excerpt != "" {
			existing.Excerpt = &stats.Excerpt
		} else {
			existing.Excerpt = nil
		}
	}

	if req.CategoryID != nil {
		existing.CategoryID = req.CategoryID
	}
	if req.CoverImage != nil {
		existing.CoverImage = req.CoverImage
	}
	if req.SeoTitle != nil {
		existing.SeoTitle = req.SeoTitle
	}
	if req.SeoDescription != nil {
		existing.SeoDescription = req.SeoDescription
	}
	if req.IsPinned != nil {
		existing.IsPinned = *req.IsPinned
	}

	if req.IsPublished != nil {
		// publishedAt is stamped on the first publish only and is
		// never cleared by unpublishing.
		if *req.IsPublished && !existing.IsPublished && existing.PublishedAt == nil {
			now := time.Now()
			existing.PublishedAt = &now
		}
		existing.IsPublished = *req.IsPublished
	}

	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, existing.ID, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.GetDetailByID(ctx, existing.ID)
}

func (s *postService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.AuthorID != callerID {
		return post.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("post deleted", map[string]interface{}{
		"postId": id.String(),
	})

	return nil
}

func (s *postService) List(ctx context.Context, filter post.ListFilter) (*post.ListResponse, error) {
	filter.Normalize()

	details, totalCount, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &post.ListResponse{
		Posts:      details,
		Pagination: post.NewPagination(filter.Page, filter.Limit, totalCount),
	}, nil
}
