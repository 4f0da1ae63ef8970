// Package news собирает новости хип-хопа из RSS-источников.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/foundation-backend/internal/cache"
	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// CacheKey ключ объединённого списка статей в кэше.
const CacheKey = "news:articles"

const maxParallelFetches = 4

// Cache хранилище готового списка статей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service агрегатор новостей.
type Service struct {
	sources []config.FeedSource
	timeout time.Duration
	ttl     time.Duration
	cache   Cache
	client  *http.Client
	log     *slog.Logger
}

// New создаёт Service. Без cache статьи загружаются при каждом запросе.
func New(log *slog.Logger, cfg config.News, c Cache) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		sources: cfg.Sources,
		timeout: cfg.FetchTimeout,
		ttl:     cfg.CacheTTL,
		cache:   c,
		client:  &http.Client{},
		log:     log,
	}
}

type datedArticle struct {
	models.Article
	published *time.Time
}

// Articles возвращает статьи всех источников, новые первыми.
// Недоступные источники пропускаются.
func (s *Service) Articles(ctx context.Context) ([]models.Article, error) {
	const op = "news.Articles"

	var cached []models.Article
	ok, err := s.cache.Get(ctx, CacheKey, &cached)
	if err != nil {
		s.log.Warn("news cache read failed", sl.Err(err))
	} else if ok {
		return cached, nil
	}

	perSource := make([][]datedArticle, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, src := range s.sources {
		g.Go(func() error {
			feed, err := s.fetch(gctx, src.URL)
			if err != nil {
				s.log.Warn("failed to fetch feed", slog.String("source", src.Name), sl.Err(err))
				return nil
			}
			perSource[i] = convert(src.Name, feed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var merged []datedArticle
	for _, items := range perSource {
		merged = append(merged, items...)
	}
	res := sortArticles(merged)

	if len(res) > 0 {
		if err := s.cache.Set(ctx, CacheKey, res, s.ttl); err != nil {
			s.log.Warn("news cache write failed", sl.Err(err))
		}
	}
	return res, nil
}

// Sources возвращает описание каждого источника. Для недоступного
// источника в description попадает текст ошибки.
func (s *Service) Sources(ctx context.Context) []models.NewsSource {
	res := make([]models.NewsSource, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, src := range s.sources {
		g.Go(func() error {
			info := models.NewsSource{Name: src.Name, Title: src.Name, URL: src.URL}
			feed, err := s.fetch(gctx, src.URL)
			if err != nil {
				info.Description = fmt.Sprintf("Error accessing feed: %s", err)
			} else {
				if feed.Title != "" {
					info.Title = feed.Title
				}
				info.Description = feed.Description
			}
			res[i] = info
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (s *Service) fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	fp := gofeed.NewParser()
	fp.Client = s.client
	return fp.ParseURLWithContext(url, ctx)
}

func convert(source string, feed *gofeed.Feed) []datedArticle {
	sourceName := feed.Title
	if sourceName == "" {
		sourceName = source
	}

	res := make([]datedArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		creator := ""
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			creator = item.Authors[0].Name
		}
		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}
		res = append(res, datedArticle{
			Article: models.Article{
				Title:      item.Title,
				Link:       item.Link,
				PubDate:    item.Published,
				Creator:    creator,
				Content:    item.Description,
				Source:     source,
				SourceName: sourceName,
				Categories: categories,
			},
			published: item.PublishedParsed,
		})
	}
	return res
}

// sortArticles упорядочивает по дате публикации по убыванию.
// Статьи без даты идут последними в исходном порядке.
func sortArticles(in []datedArticle) []models.Article {
	sort.SliceStable(in, func(i, j int) bool {
		a, b := in[i].published, in[j].published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	res := make([]models.Article, len(in))
	for i := range in {
		res[i] = in[i].Article
	}
	return res
}
