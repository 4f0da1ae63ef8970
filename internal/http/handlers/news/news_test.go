package news_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/news"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

type stubService struct {
	articles []models.Article
	err      error
}

func (s stubService) Articles(context.Context) ([]models.Article, error) { return s.articles, s.err }

func (s stubService) Sources(context.Context) []models.NewsSource {
	return []models.NewsSource{{Name: "the_source", Title: "The Source", URL: "https://thesource.com/feed/"}}
}

func TestArticles(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := news.New(log, stubService{articles: []models.Article{{Title: "Story", Source: "the_source"}}})
	rec := httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"articles":[{"title":"Story"`)

	h = news.New(log, stubService{})
	rec = httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	assert.JSONEq(t, `{"articles":[]}`, rec.Body.String())

	h = news.New(log, stubService{err: errors.New("boom")})
	rec = httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSources(t *testing.T) {
	h := news.New(slog.New(slog.NewTextHandler(io.Discard, nil)), stubService{})
	rec := httptest.NewRecorder()
	h.Sources(rec, httptest.NewRequest(http.MethodGet, "/api/news/sources", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"sources":[{"name":"the_source","title":"The Source","description":"","url":"https://thesource.com/feed/"}]}`,
		rec.Body.String())
}
