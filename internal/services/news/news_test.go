package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const feedA = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Feed A</title>
  <description>First feed</description>
  <item>
    <title>Old story</title>
    <link>https://a.example/old</link>
    <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
    <dc:creator>Alice</dc:creator>
    <description>old</description>
    <category>music</category>
  </item>
  <item>
    <title>Undated story</title>
    <link>https://a.example/undated</link>
  </item>
</channel>
</rss>`

const feedB = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Feed B</title>
  <description>Second feed</description>
  <item>
    <title>New story</title>
    <link>https://b.example/new</link>
    <pubDate>Wed, 01 May 2024 10:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedA)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedB)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newService(srv *httptest.Server, cache Cache, names ...string) *Service {
	sources := make([]config.FeedSource, 0, len(names))
	for _, n := range names {
		sources = append(sources, config.FeedSource{Name: n, URL: srv.URL + "/" + n})
	}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), config.News{
		Sources:      sources,
		FetchTimeout: 2 * time.Second,
		CacheTTL:     time.Minute,
	}, cache)
}

type memCache struct {
	data map[string][]models.Article
	sets int
}

func (m *memCache) Get(_ context.Context, key string, result any) (bool, error) {
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(result.(*[]models.Article)) = v
	return true, nil
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	m.data[key] = value.([]models.Article)
	return nil
}

func TestArticles_MergedAndSorted(t *testing.T) {
	srv := newFeedServer(t)
	svc := newService(srv, nil, "a", "broken", "b")

	got, err := svc.Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "New story", got[0].Title)
	assert.Equal(t, "b", got[0].Source)
	assert.Equal(t, "Feed B", got[0].SourceName)

	assert.Equal(t, "Old story", got[1].Title)
	assert.Equal(t, "Alice", got[1].Creator)
	assert.Equal(t, []string{"music"}, got[1].Categories)

	assert.Equal(t, "Undated story", got[2].Title)
	assert.Empty(t, got[2].PubDate)
}

func TestArticles_AllSourcesFail(t *testing.T) {
	srv := newFeedServer(t)
	svc := newService(srv, nil, "broken")

	got, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArticles_UsesCache(t *testing.T) {
	srv := newFeedServer(t)
	cache := &memCache{data: map[string][]models.Article{}}
	svc := newService(srv, cache, "a")

	first, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	srv.Close()
	second, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestArticles_WithoutCacheFetchesEveryTime(t *testing.T) {
	srv := newFeedServer(t)
	svc := newService(srv, nil, "a")

	first, err := svc.Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	srv.Close()
	second, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestSources(t *testing.T) {
	srv := newFeedServer(t)
	svc := newService(srv, nil, "a", "broken")

	got := svc.Sources(context.Background())
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "Feed A", got[0].Title)
	assert.Equal(t, "First feed", got[0].Description)
	assert.Equal(t, srv.URL+"/a", got[0].URL)

	assert.Equal(t, "broken", got[1].Name)
	assert.Equal(t, "broken", got[1].Title)
	assert.Contains(t, got[1].Description, "Error accessing feed")
}

func TestSortArticles_Stable(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	in := []datedArticle{
		{Article: models.Article{Title: "u1"}},
		{Article: models.Article{Title: "old"}, published: &t1},
		{Article: models.Article{Title: "u2"}},
		{Article: models.Article{Title: "new"}, published: &t2},
	}

	got := sortArticles(in)
	titles := make([]string, len(got))
	for i, a := range got {
		titles[i] = a.Title
	}
	assert.Equal(t, []string{"new", "old", "u1", "u2"}, titles)
}
