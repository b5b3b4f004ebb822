package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blcktgr73/StudyBlog/internal/domains/post"
)

type mockRepository struct {
	createFn             func(ctx context.Context, p *post.Post, tagIDs []uuid.UUID) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*post.Post, error)
	getDetailByIDFn      func(ctx context.Context, id uuid.UUID) (*post.Detail, error)
	getDetailBySlugFn    func(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error)
	incrementViewCountFn func(ctx context.Context, id uuid.UUID) error
	updateFn             func(ctx context.Context, p *post.Post) error
	replaceTagsFn        func(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	deleteFn             func(ctx context.Context, id uuid.UUID) error
	listFn               func(ctx context.Context, filter post.ListFilter) ([]post.Detail, int, error)
	generateUniqueSlugFn func(ctx context.Context, baseSlug string, excludeID uuid.UUID) (string, error)
}

func (m *mockRepository) Create(ctx context.Context, p *post.Post, tagIDs []uuid.UUID) error {
	return m.createFn(ctx, p, tagIDs)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) GetDetailByID(ctx context.Context, id uuid.UUID) (*post.Detail, error) {
	return m.getDetailByIDFn(ctx, id)
}

func (m *mockRepository) GetDetailBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error) {
	return m.getDetailBySlugFn(ctx, slug, viewerID)
}

func (m *mockRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.incrementViewCountFn(ctx, id)
}

func (m *mockRepository) Update(ctx context.Context, p *post.Post) error {
	return m.updateFn(ctx, p)
}

func (m *mockRepository) ReplaceTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.replaceTagsFn(ctx, postID, tagIDs)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, filter post.ListFilter) ([]post.Detail, int, error) {
	return m.listFn(ctx, filter)
}

func (m *mockRepository) GenerateUniqueSlug(ctx context.Context, baseSlug string, excludeID uuid.UUID) (string, error) {
	return m.generateUniqueSlugFn(ctx, baseSlug, excludeID)
}

// passthroughSlug returns the base slug untouched, as the repo does
// when there is no collision.
func passthroughSlug(_ context.Context, baseSlug string, _ uuid.UUID) (string, error) {
	return baseSlug, nil
}

func detailFor(p *post.Post) *post.Detail {
	return &post.Detail{Post: *p, Author: post.AuthorRef{ID: p.AuthorID}, Tags: []post.TagRef{}}
}

func TestCreate_Draft(t *testing.T) {
	authorID := uuid.New()
	var created *post.Post
	var createdTags []uuid.UUID

	repo := &mockRepository{
		generateUniqueSlugFn: passthroughSlug,
		createFn: func(_ context.Context, p *post.Post, tagIDs []uuid.UUID) error {
			created = p
			createdTags = tagIDs
			return nil
		},
		getDetailByIDFn: func(_ context.Context, id uuid.UUID) (*post.Detail, error) {
			return detailFor(created), nil
		},
	}
	svc := NewPostService(repo)

	tagID := uuid.New()
	detail, err := svc.Create(context.Background(), authorID, post.CreatePostRequest{
		Title:   "Hello World",
		Content: "Some content for the very first post.",
		TagIDs:  []uuid.UUID{tagID},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, authorID, created.AuthorID)
	assert.False(t, created.IsPublished)
	assert.Nil(t, created.PublishedAt, "drafts must not carry a publish timestamp")
	assert.Equal(t, 1, created.ReadingTime)
	require.NotNil(t, created.Excerpt)
	assert.Equal(t, "Some content for the very first post....", *created.Excerpt)
	assert.Equal(t, []uuid.UUID{tagID}, createdTags)
	assert.Equal(t, created.ID, detail.ID)
}

func TestCreate_Published(t *testing.T) {
	var created *post.Post
	repo := &mockRepository{
		generateUniqueSlugFn: passthroughSlug,
		createFn: func(_ context.Context, p *post.Post, _ []uuid.UUID) error {
			created = p
			return nil
		},
		getDetailByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Detail, error) {
			return detailFor(created), nil
		},
	}
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), post.CreatePostRequest{
		Title:       "Launch",
		Content:     "It ships today.",
		IsPublished: true,
	})

	require.NoError(t, err)
	assert.True(t, created.IsPublished)
	require.NotNil(t, created.PublishedAt)
	assert.WithinDuration(t, time.Now(), *created.PublishedAt, 5*time.Second)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewPostService(&mockRepository{})

	cases := []post.CreatePostRequest{
		{Title: "", Content: "body"},
		{Title: "title", Content: ""},
		{Title: "   ", Content: "body"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, post.ErrFieldsRequired)
	}
}

func TestUpdate_PublishStampsOnce(t *testing.T) {
	authorID := uuid.New()
	existing := &post.Post{
		ID:       uuid.New(),
		Title:    "Draft",
		Slug:     "draft",
		Content:  "body",
		AuthorID: authorID,
	}

	var updated *post.Post
	repo := &mockRepository{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Post, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(_ context.Context, p *post.Post) error {
			updated = p
			return nil
		},
		getDetailByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Detail, error) {
			return detailFor(updated), nil
		},
	}
	svc := NewPostService(repo)

	published := true
	_, err := svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{
		IsPublished: &published,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstStamp := *updated.PublishedAt

	// Unpublish, republish: the timestamp must survive untouched.
	existing.IsPublished = true
	existing.PublishedAt = &firstStamp

	unpublished := false
	_, err = svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{
		IsPublished: &unpublished,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, firstStamp, *updated.PublishedAt)

	existing.IsPublished = false
	_, err = svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, firstStamp, *updated.PublishedAt)
}

func TestUpdate_NotOwner(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*post.Post, error) {
			return &post.Post{ID: id, AuthorID: uuid.New()}, nil
		},
	}
	svc := NewPostService(repo)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), post.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, post.ErrNotOwner)
}

func TestUpdate_TitleChangeRegeneratesSlug(t *testing.T) {
	authorID := uuid.New()
	existing := &post.Post{ID: uuid.New(), Title: "Old Title", Slug: "old-title", Content: "body", AuthorID: authorID}

	var updated *post.Post
	var slugExclude uuid.UUID
	repo := &mockRepository{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Post, error) {
			cp := *existing
			return &cp, nil
		},
		generateUniqueSlugFn: func(_ context.Context, baseSlug string, excludeID uuid.UUID) (string, error) {
			slugExclude = excludeID
			return baseSlug, nil
		},
		updateFn: func(_ context.Context, p *post.Post) error {
			updated = p
			return nil
		},
		getDetailByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Detail, error) {
			return detailFor(updated), nil
		},
	}
	svc := NewPostService(repo)

	title := "New Title"
	_, err := svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, existing.ID, slugExclude, "slug probe must exclude the post itself")
}

func TestUpdate_TagReplacement(t *testing.T) {
	authorID := uuid.New()
	existing := &post.Post{ID: uuid.New(), Title: "T", Slug: "t", Content: "body", AuthorID: authorID}

	replaceCalls := 0
	var replacedWith []uuid.UUID
	repo := &mockRepository{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Post, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(_ context.Context, _ *post.Post) error { return nil },
		replaceTagsFn: func(_ context.Context, _ uuid.UUID, tagIDs []uuid.UUID) error {
			replaceCalls++
			replacedWith = tagIDs
			return nil
		},
		getDetailByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Detail, error) {
			return detailFor(existing), nil
		},
	}
	svc := NewPostService(repo)

	// Omitted tagIds leaves the set untouched.
	_, err := svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, replaceCalls)

	// An explicit empty list clears it.
	empty := []uuid.UUID{}
	_, err = svc.Update(context.Background(), existing.ID, authorID, post.UpdatePostRequest{TagIDs: &empty})
	require.NoError(t, err)
	assert.Equal(t, 1, replaceCalls)
	assert.Empty(t, replacedWith)
}

func TestDelete(t *testing.T) {
	authorID := uuid.New()
	postID := uuid.New()
	deleted := false

	repo := &mockRepository{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*post.Post, error) {
			return &post.Post{ID: id, AuthorID: authorID}, nil
		},
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewPostService(repo)

	require.NoError(t, svc.Delete(context.Background(), postID, authorID))
	assert.True(t, deleted)

	err := svc.Delete(context.Background(), postID, uuid.New())
	assert.ErrorIs(t, err, post.ErrNotOwner)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*post.Post, error) {
			return nil, post.ErrPostNotFound
		},
	}
	svc := NewPostService(repo)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestGetBySlug_IncrementsViewCount(t *testing.T) {
	incremented := false
	repo := &mockRepository{
		getDetailBySlugFn: func(_ context.Context, slug string, _ uuid.UUID) (*post.Detail, error) {
			return &post.Detail{Post: post.Post{ID: uuid.New(), Slug: slug, ViewCount: 7}}, nil
		},
		incrementViewCountFn: func(_ context.Context, _ uuid.UUID) error {
			incremented = true
			return nil
		},
	}
	svc := NewPostService(repo)

	d, err := svc.GetBySlug(context.Background(), "hello-world", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, incremented)
	assert.Equal(t, 8, d.ViewCount, "response reflects the read it triggered")
}

func TestList_NormalizesPagination(t *testing.T) {
	var seen post.ListFilter
	repo := &mockRepository{
		listFn: func(_ context.Context, filter post.ListFilter) ([]post.Detail, int, error) {
			seen = filter
			return []post.Detail{}, 25, nil
		},
	}
	svc := NewPostService(repo)

	resp, err := svc.List(context.Background(), post.ListFilter{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, seen.Page)
	assert.Equal(t, post.DefaultPageSize, seen.Limit)
	assert.Equal(t, 25, resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)

	_, err = svc.List(context.Background(), post.ListFilter{Page: 2, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, post.MaxPageSize, seen.Limit)
}
