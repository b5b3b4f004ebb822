package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blcktgr73/StudyBlog/internal/domains/category"
)

type mockRepository struct {
	listFn      func(ctx context.Context) ([]category.Category, error)
	getBySlugFn func(ctx context.Context, slug string) (*category.Category, error)
}

func (m *mockRepository) List(ctx context.Context) ([]category.Category, error) {
	return m.listFn(ctx)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return m.getBySlugFn(ctx, slug)
}

// memoryCache is an in-process stand-in for the Redis cache.
type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memoryCache) Ping(_ context.Context) error { return nil }

func TestList_CachesResult(t *testing.T) {
	dbHits := 0
	repo := &mockRepository{
		listFn: func(_ context.Context) ([]category.Category, error) {
			dbHits++
			return []category.Category{
				{ID: uuid.New(), Name: "Go", Slug: "go", PostCount: 3},
			}, nil
		},
	}
	c := newMemoryCache()
	svc := NewCategoryService(repo, c)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, dbHits)
	assert.Equal(t, 1, c.sets)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, dbHits, "second read must come from cache")
}

func TestList_NilCacheFallsThrough(t *testing.T) {
	dbHits := 0
	repo := &mockRepository{
		listFn: func(_ context.Context) ([]category.Category, error) {
			dbHits++
			return []category.Category{}, nil
		},
	}
	svc := NewCategoryService(repo, nil)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dbHits)
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo := &mockRepository{
		getBySlugFn: func(_ context.Context, _ string) (*category.Category, error) {
			return nil, category.ErrCategoryNotFound
		},
	}
	svc := NewCategoryService(repo, nil)

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}
