package service

import (
	"context"
	"time"

	"github.com/blcktgr73/StudyBlog/internal/domains/tag"
	"github.com/blcktgr73/StudyBlog/pkg/cache"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

const (
	listCacheKey  = "tags:all"
	cacheDuration = 10 * time.Minute
)

type tagService struct {
	repo  tag.Repository
	cache cache.Cache
}

// NewTagService - constructor. cache may be nil when Redis is unavailable.
func NewTagService(repo tag.Repository, c cache.Cache) tag.Service {
	return &tagService{repo: repo, cache: c}
}

func (s *tagService) List(ctx context.Context) ([]tag.Tag, error) {
	if s.cache != nil {
		var cached []tag.Tag
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			logger.Warn("tag cache read failed", err)
		}
		if found {
			return cached, nil
		}
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, tags, cacheDuration); err != nil {
			logger.Warn("tag cache write failed", err)
		}
	}

	return tags, nil
}

func (s *tagService) GetBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	return s.repo.GetBySlug(ctx, slug)
}
