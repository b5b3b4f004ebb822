package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blcktgr73/StudyBlog/internal/domains/post"
	"github.com/blcktgr73/StudyBlog/internal/shared/middleware"
)

type mockService struct {
	createFn    func(ctx context.Context, authorID uuid.UUID, req post.CreatePostRequest) (*post.Detail, error)
	getBySlugFn func(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error)
	updateFn    func(ctx context.Context, id, callerID uuid.UUID, req post.UpdatePostRequest) (*post.Detail, error)
	deleteFn    func(ctx context.Context, id, callerID uuid.UUID) error
	listFn      func(ctx context.Context, filter post.ListFilter) (*post.ListResponse, error)
}

func (m *mockService) Create(ctx context.Context, authorID uuid.UUID, req post.CreatePostRequest) (*post.Detail, error) {
	return m.createFn(ctx, authorID, req)
}

func (m *mockService) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error) {
	return m.getBySlugFn(ctx, slug, viewerID)
}

func (m *mockService) Update(ctx context.Context, id, callerID uuid.UUID, req post.UpdatePostRequest) (*post.Detail, error) {
	return m.updateFn(ctx, id, callerID, req)
}

func (m *mockService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	return m.deleteFn(ctx, id, callerID)
}

func (m *mockService) List(ctx context.Context, filter post.ListFilter) (*post.ListResponse, error) {
	return m.listFn(ctx, filter)
}

// asUser injects an authenticated caller the way the auth middleware does.
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Next()
	}
}

func setupRouter(svc post.Service, callerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(svc)
	r := gin.New()

	group := r.Group("/api/v1")
	if callerID != uuid.Nil {
		group.Use(asUser(callerID))
	}
	group.GET("/posts", h.List)
	group.GET("/posts/:slug", h.GetBySlug)
	group.POST("/posts", h.Create)
	group.PATCH("/posts/:id", h.Update)
	group.DELETE("/posts/:id", h.Delete)

	return r
}

func perform(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePost(t *testing.T) {
	callerID := uuid.New()
	svc := &mockService{
		createFn: func(_ context.Context, authorID uuid.UUID, req post.CreatePostRequest) (*post.Detail, error) {
			assert.Equal(t, callerID, authorID)
			return &post.Detail{Post: post.Post{
				ID:    uuid.New(),
				Title: req.Title,
				Slug:  "hello-world",
			}}, nil
		},
	}
	r := setupRouter(svc, callerID)

	w := perform(r, http.MethodPost, "/api/v1/posts", gin.H{
		"title":   "Hello World",
		"content": "First post body.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello-world", resp["slug"])
	assert.Equal(t, "Hello World", resp["title"])
}

func TestCreatePost_MissingFields(t *testing.T) {
	svc := &mockService{}
	r := setupRouter(svc, uuid.New())

	for _, body := range []gin.H{
		{"content": "no title"},
		{"title": "no content"},
	} {
		w := perform(r, http.MethodPost, "/api/v1/posts", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "title and content are required", resp["error"])
	}
}

func TestCreatePost_Unauthenticated(t *testing.T) {
	r := setupRouter(&mockService{}, uuid.Nil)

	w := perform(r, http.MethodPost, "/api/v1/posts", gin.H{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPostBySlug(t *testing.T) {
	svc := &mockService{
		getBySlugFn: func(_ context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error) {
			assert.Equal(t, "hello-world", slug)
			assert.Equal(t, uuid.Nil, viewerID)
			return &post.Detail{Post: post.Post{Slug: slug, ViewCount: 3}}, nil
		},
	}
	r := setupRouter(svc, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts/hello-world", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["viewCount"])
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	svc := &mockService{
		getBySlugFn: func(_ context.Context, _ string, _ uuid.UUID) (*post.Detail, error) {
			return nil, post.ErrPostNotFound
		},
	}
	r := setupRouter(svc, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "post not found", resp["error"])
}

func TestListPosts(t *testing.T) {
	svc := &mockService{
		listFn: func(_ context.Context, filter post.ListFilter) (*post.ListResponse, error) {
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 5, filter.Limit)
			assert.Equal(t, "golang", filter.TagSlug)
			assert.Equal(t, post.PublishedOnly, filter.Published)
			return &post.ListResponse{
				Posts:      []post.Detail{},
				Pagination: post.NewPagination(2, 5, 12),
			}, nil
		},
	}
	r := setupRouter(svc, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts?page=2&limit=5&tag=golang", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts      []post.Detail   `json:"posts"`
		Pagination post.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestListPosts_DraftsRequireAuth(t *testing.T) {
	r := setupRouter(&mockService{}, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts?published=false", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListPosts_DraftsScopedToCaller(t *testing.T) {
	callerID := uuid.New()
	svc := &mockService{
		listFn: func(_ context.Context, filter post.ListFilter) (*post.ListResponse, error) {
			assert.Equal(t, post.DraftsOnly, filter.Published)
			assert.Equal(t, callerID, filter.AuthorID)
			return &post.ListResponse{Posts: []post.Detail{}, Pagination: post.NewPagination(1, 10, 0)}, nil
		},
	}
	r := setupRouter(svc, callerID)

	w := perform(r, http.MethodGet, "/api/v1/posts?published=false", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPosts_OwnAuthorIncludesDrafts(t *testing.T) {
	callerID := uuid.New()
	svc := &mockService{
		listFn: func(_ context.Context, filter post.ListFilter) (*post.ListResponse, error) {
			assert.Equal(t, post.PublishedAny, filter.Published, "own-author listing must include drafts")
			assert.Equal(t, callerID, filter.AuthorID)
			return &post.ListResponse{Posts: []post.Detail{}, Pagination: post.NewPagination(1, 10, 0)}, nil
		},
	}
	r := setupRouter(svc, callerID)

	w := perform(r, http.MethodGet, "/api/v1/posts?author="+callerID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPosts_OtherAuthorStaysPublishedOnly(t *testing.T) {
	otherID := uuid.New()
	svc := &mockService{
		listFn: func(_ context.Context, filter post.ListFilter) (*post.ListResponse, error) {
			assert.Equal(t, post.PublishedOnly, filter.Published)
			assert.Equal(t, otherID, filter.AuthorID, "author filter is honored, not rewritten")
			return &post.ListResponse{Posts: []post.Detail{}, Pagination: post.NewPagination(1, 10, 0)}, nil
		},
	}
	r := setupRouter(svc, uuid.New())

	w := perform(r, http.MethodGet, "/api/v1/posts?author="+otherID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Asking for another author's drafts outright also collapses to
	// published only.
	w = perform(r, http.MethodGet, "/api/v1/posts?author="+otherID.String()+"&published=false", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPosts_AnonymousAuthorFilterPublishedOnly(t *testing.T) {
	authorID := uuid.New()
	svc := &mockService{
		listFn: func(_ context.Context, filter post.ListFilter) (*post.ListResponse, error) {
			assert.Equal(t, post.PublishedOnly, filter.Published)
			assert.Equal(t, authorID, filter.AuthorID)
			return &post.ListResponse{Posts: []post.Detail{}, Pagination: post.NewPagination(1, 10, 0)}, nil
		},
	}
	r := setupRouter(svc, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts?author="+authorID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPosts_SlugQueryResolvesSinglePost(t *testing.T) {
	svc := &mockService{
		getBySlugFn: func(_ context.Context, slug string, _ uuid.UUID) (*post.Detail, error) {
			assert.Equal(t, "hello-world", slug)
			return &post.Detail{Post: post.Post{Slug: slug}}, nil
		},
	}
	r := setupRouter(svc, uuid.Nil)

	w := perform(r, http.MethodGet, "/api/v1/posts?slug=hello-world", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello-world", resp["slug"])
}

func TestUpdatePost_Forbidden(t *testing.T) {
	svc := &mockService{
		updateFn: func(_ context.Context, _, _ uuid.UUID, _ post.UpdatePostRequest) (*post.Detail, error) {
			return nil, post.ErrNotOwner
		},
	}
	r := setupRouter(svc, uuid.New())

	w := perform(r, http.MethodPatch, "/api/v1/posts/"+uuid.NewString(), gin.H{"title": "New"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdatePost_InvalidID(t *testing.T) {
	r := setupRouter(&mockService{}, uuid.New())

	w := perform(r, http.MethodPatch, "/api/v1/posts/not-a-uuid", gin.H{"title": "New"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePost(t *testing.T) {
	callerID := uuid.New()
	postID := uuid.New()
	svc := &mockService{
		deleteFn: func(_ context.Context, id, caller uuid.UUID) error {
			assert.Equal(t, postID, id)
			assert.Equal(t, callerID, caller)
			return nil
		},
	}
	r := setupRouter(svc, callerID)

	w := perform(r, http.MethodDelete, "/api/v1/posts/"+postID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["success"])
}

func TestDeletePost_NotFound(t *testing.T) {
	svc := &mockService{
		deleteFn: func(_ context.Context, _, _ uuid.UUID) error {
			return post.ErrPostNotFound
		},
	}
	r := setupRouter(svc, uuid.New())

	w := perform(r, http.MethodDelete, "/api/v1/posts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
