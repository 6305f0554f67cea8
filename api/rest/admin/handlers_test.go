package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/auth"
	"codeberg.org/guidebot/server/internal/errors"
	"codeberg.org/guidebot/server/internal/responsecache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testItemID = "3f1c2a9e-8d4b-4c6a-9e2f-1b7d5a0c3e41"

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenCacheAdmin struct{}

func (brokenCacheAdmin) GetStats(context.Context) (responsecache.Stats, error) {
	return responsecache.Stats{}, fmt.Errorf("pq: relation response_cache does not exist")
}

func (brokenCacheAdmin) ClearAll(context.Context) (int64, error) {
	return 0, fmt.Errorf("pq: relation response_cache does not exist")
}

func (brokenCacheAdmin) CleanupExpired(context.Context) (int64, error) {
	return 0, fmt.Errorf("pq: relation response_cache does not exist")
}

type fakeContent struct {
	created []content.CreateItemRequest
	deleted []string
}

func (f *fakeContent) Create(_ context.Context, req content.CreateItemRequest, embedding []float32) (*content.Item, error) {
	f.created = append(f.created, req)

	return &content.Item{
		ID:           testItemID,
		Kind:         req.Kind,
		Title:        req.Title,
		Body:         req.Body,
		HasEmbedding: embedding != nil,
	}, nil
}

func (f *fakeContent) Delete(_ context.Context, id string) error {
	if id != testItemID {
		return content.ErrNotFound
	}

	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (fakeEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type fixture struct {
	router  *gin.Engine
	cache   *responsecache.Cache
	content *fakeContent
	token   string
}

func newFixture(t *testing.T, cacheAdmin CacheAdmin) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	cache := responsecache.New(responsecache.NewMemoryStore())
	if cacheAdmin == nil {
		cacheAdmin = responsecache.NewAdmin(cache)
	}

	repo := &fakeContent{}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), cacheAdmin, repo, fakeEmbedder{})

	token, err := auth.GenerateJWT("op-1", "ops@example.com", true)
	require.NoError(t, err)

	return &fixture{router: router, cache: cache, content: repo, token: token}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGetCacheStats(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.cache.Put(ctx, "fp-1", "when can i eat after surgery", "Start with clear fluids.", nil)
	f.cache.Get(ctx, "fp-1")

	w := f.do(http.MethodGet, "/api/v1/admin/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	data := body["data"]
	assert.EqualValues(t, 1, data["totalEntries"])
	assert.EqualValues(t, 2, data["totalHits"])
	assert.EqualValues(t, 0, data["expiredEntries"])
	assert.EqualValues(t, 100, data["hitRate"])
	assert.EqualValues(t, 2, data["averageHitCount"])
}

func TestClearCache(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.cache.Put(ctx, "fp-1", "a", "r", nil)
	f.cache.Put(ctx, "fp-2", "b", "r", nil)

	w := f.do(http.MethodDelete, "/api/v1/admin/cache", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body DeletedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Data.DeletedCount)
	assert.NotEmpty(t, body.Data.Message)
	assert.Nil(t, f.cache.Get(ctx, "fp-1"))
}

func TestCleanupCache(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(http.MethodPost, "/api/v1/admin/cache/cleanup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deletedCount":0`)
}

func TestCacheEndpoints_Failure(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/cache/stats"},
		{http.MethodDelete, "/api/v1/admin/cache"},
		{http.MethodPost, "/api/v1/admin/cache/cleanup"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			f := newFixture(t, brokenCacheAdmin{})

			w := f.do(tt.method, tt.path, "")
			require.Equal(t, http.StatusInternalServerError, w.Code)

			var body errors.APIErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, errors.CodeInternalError, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "relation")
		})
	}
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	f := newFixture(t, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/cache/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateJWT("user-1", "user@example.com", false)
	require.NoError(t, err)
	f.token = token

	w = f.do(http.MethodGet, "/api/v1/admin/cache/stats", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateContent_InvalidatesCache(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.cache.Put(ctx, "fp-1", "a", "r", nil)

	w := f.do(http.MethodPost, "/api/v1/admin/content",
		`{"kind":"FAQ","title":"Eating after surgery","body":"Start with clear fluids once you are awake."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body ContentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, content.KindFAQ, body.Data.Kind)
	assert.True(t, body.Data.HasEmbedding)

	require.Len(t, f.content.created, 1)
	assert.Nil(t, f.cache.Get(ctx, "fp-1"))
}

func TestCreateContent_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"kind":"faq","body":"x"}`},
		{"bad kind", `{"kind":"podcast","title":"t","body":"x"}`},
		{"malformed", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)

			w := f.do(http.MethodPost, "/api/v1/admin/content", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, f.content.created)
		})
	}
}

func TestDeleteContent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.cache.Put(ctx, "fp-1", "a", "r", nil)

	w := f.do(http.MethodDelete, "/api/v1/admin/content/"+testItemID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{testItemID}, f.content.deleted)
	assert.Nil(t, f.cache.Get(ctx, "fp-1"))
}

func TestDeleteContent_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.cache.Put(ctx, "fp-1", "a", "r", nil)

	w := f.do(http.MethodDelete, "/api/v1/admin/content/9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotNil(t, f.cache.Get(ctx, "fp-1"))

	w = f.do(http.MethodDelete, "/api/v1/admin/content/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
