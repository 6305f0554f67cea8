package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/guidebot/server/guidebot/content"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownID = "3f1c2a9e-8d4b-4c6a-9e2f-1b7d5a0c3e41"

type fakeReader struct {
	items     []content.Item
	lastKind  content.Kind
	lastLimit int
	failList  bool
}

func (f *fakeReader) Get(_ context.Context, id string) (*content.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, content.ErrNotFound
}

func (f *fakeReader) List(_ context.Context, kind content.Kind, limit, offset int) ([]content.Item, int, error) {
	f.lastKind = kind
	f.lastLimit = limit

	if f.failList {
		return nil, 0, fmt.Errorf("connection reset")
	}

	var out []content.Item
	for _, item := range f.items {
		if kind == "" || item.Kind == kind {
			out = append(out, item)
		}
	}

	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}

	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}

	return out, total, nil
}

func newRouter(reader ContentReader) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), reader)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func fixtureItems() []content.Item {
	return []content.Item{
		{ID: knownID, Kind: content.KindFAQ, Title: "Eating after surgery"},
		{ID: "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d", Kind: content.KindArticle, Title: "Visiting hours"},
		{ID: "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e", Kind: content.KindFAQ, Title: "Pain relief at home"},
	}
}

func TestListContent(t *testing.T) {
	reader := &fakeReader{items: fixtureItems()}
	router := newRouter(reader)

	w := get(router, "/api/v1/content?kind=faq&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, content.KindFAQ, reader.lastKind)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Eating after surgery", body.Data[0].Title)
	assert.Equal(t, 2, body.Pagination.Total)
	assert.True(t, body.Pagination.HasMore)
}

func TestListContent_DefaultsAndEmpty(t *testing.T) {
	reader := &fakeReader{}
	router := newRouter(reader)

	w := get(router, "/api/v1/content")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultPageSize, reader.lastLimit)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListContent_Errors(t *testing.T) {
	w := get(newRouter(&fakeReader{}), "/api/v1/content?kind=podcast")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(newRouter(&fakeReader{failList: true}), "/api/v1/content")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetContent(t *testing.T) {
	router := newRouter(&fakeReader{items: fixtureItems()})

	tests := []struct {
		name string
		id   string
		code int
	}{
		{"found", knownID, http.StatusOK},
		{"missing", "0f0f0f0f-0f0f-4f0f-8f0f-0f0f0f0f0f0f", http.StatusNotFound},
		{"not a uuid", "returns", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/api/v1/content/"+tt.id)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
