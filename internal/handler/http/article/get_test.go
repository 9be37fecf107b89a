package article_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain/entity"
	"newshub/internal/handler/http/article"
	artUC "newshub/internal/usecase/article"
)

func TestGetHandler(t *testing.T) {
	repo := &stubRepo{articles: []*entity.Article{stubArticle(7)}}
	h := article.GetHandler(&artUC.Service{Repo: repo})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto article.DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, "Test headline", dto.Title)
	assert.NotNil(t, dto.Tags)
}

func TestGetHandler_NotFound(t *testing.T) {
	h := article.GetHandler(&artUC.Service{Repo: &stubRepo{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHandler_InvalidID(t *testing.T) {
	h := article.GetHandler(&artUC.Service{Repo: &stubRepo{}})

	for _, target := range []string{"/api/articles/abc", "/api/articles/0", "/api/articles/-1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
