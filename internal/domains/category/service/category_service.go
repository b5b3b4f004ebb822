package service

import (
	"context"
	"time"

	"github.com/blcktgr73/StudyBlog/internal/domains/category"
	"github.com/blcktgr73/StudyBlog/pkg/cache"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

const (
	listCacheKey  = "categories:all"
	cacheDuration = 10 * time.Minute
)

type categoryService struct {
	repo  category.Repository
	cache cache.Cache
}

// NewCategoryService - constructor. cache may be nil when Redis is
// unavailable; lookups then always hit the database.
func NewCategoryService(repo category.Repository, c cache.Cache) category.Service {
	return &categoryService{repo: repo, cache: c}
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	if s.cache != nil {
		var cached []category.Category
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			logger.Warn("category cache read failed", err)
		}
		if found {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, categories, cacheDuration); err != nil {
			logger.Warn("category cache write failed", err)
		}
	}

	return categories, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}
