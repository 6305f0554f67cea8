package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct {
	gotQuery string
	gotKinds []content.Kind
	err      error
}

func (f *fakeAnswerer) Answer(_ context.Context, query string, kinds []content.Kind) (*retriever.Answer, error) {
	f.gotQuery = query
	f.gotKinds = kinds

	if f.err != nil {
		return nil, f.err
	}

	return &retriever.Answer{Query: query, Response: "Start with clear fluids once you are awake.", Cached: true, HitCount: 3}, nil
}

func post(answerer Answerer, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), answerer, func(c *gin.Context) { c.Next() })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQueryHandler(t *testing.T) {
	answerer := &fakeAnswerer{}

	w := post(answerer, `{"query":"When can I eat after surgery?","kinds":["faq","FAQ","article"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Cached)
	assert.EqualValues(t, 3, body.Data.HitCount)

	assert.Equal(t, "When can I eat after surgery?", answerer.gotQuery)
	assert.Equal(t, []content.Kind{content.KindFAQ, content.KindArticle}, answerer.gotKinds)
}

func TestQueryHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"missing query", `{}`, nil, http.StatusBadRequest},
		{"bad kind", `{"query":"q","kinds":["podcast"]}`, nil, http.StatusBadRequest},
		{"blank query", `{"query":"   "}`, retriever.ErrEmptyQuery, http.StatusBadRequest},
		{"retrieval failure", `{"query":"q"}`, fmt.Errorf("embedding API returned 503"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(&fakeAnswerer{err: tt.err}, tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
