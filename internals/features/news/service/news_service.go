package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"tvdigital_backend/internals/configs"
	"tvdigital_backend/internals/features/news/model"
	"tvdigital_backend/internals/helpers/breaker"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	DefaultTimeout = 10 * time.Second

	maxFeedBytes = 4 << 20
)

var ErrNoFeedAvailable = errors.New("semua sumber berita sedang tidak bisa diakses")

type NewsService struct {
	Feeds   []string
	Client  *http.Client
	Timeout time.Duration
	Now     func() time.Time

	// satu breaker per feed, satu sumber rusak tidak menutup yang lain
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

func NewNewsService(feeds []string) *NewsService {
	return &NewsService{
		Feeds:   feeds,
		Client:  &http.Client{Timeout: 8 * time.Second},
		Timeout: DefaultTimeout,
		Now:     time.Now,
	}
}

func NewNewsServiceFromEnv() *NewsService {
	return NewNewsService(configs.NewsFeedURLs)
}

func (s *NewsService) breakerFor(feedURL string) *gobreaker.CircuitBreaker[[]byte] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.breakers == nil {
		s.breakers = map[string]*gobreaker.CircuitBreaker[[]byte]{}
	}
	cb, ok := s.breakers[feedURL]
	if !ok {
		cb = breaker.New[[]byte](breaker.Config{
			Name:             "rss " + feedURL,
			FailureThreshold: 3,
			IsSuccessful: func(err error) bool {
				return err == nil || breaker.Canceled(err)
			},
		})
		s.breakers[feedURL] = cb
	}
	return cb
}

// Latest mengambil semua feed, melewati feed yang gagal, urut terbaru dulu.
func (s *NewsService) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if len(s.Feeds) == 0 {
		return []model.Article{}, nil
	}

	type result struct {
		items []model.Article
		err   error
	}
	results := make([]result, len(s.Feeds))

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := breaker.Detach(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, feedURL := range s.Feeds {
		wg.Add(1)
		go func(i int, feedURL string) {
			defer wg.Done()
			items, err := s.fetchFeed(ctx, feedURL)
			results[i] = result{items: items, err: err}
		}(i, feedURL)
	}
	wg.Wait()

	var (
		all    []model.Article
		failed int
	)
	seen := map[string]bool{}
	for i, r := range results {
		if r.err != nil {
			failed++
			log.Printf("[WARN] feed %s dilewati: %v", s.Feeds[i], r.err)
			continue
		}
		for _, a := range r.items {
			if seen[a.Link] {
				continue
			}
			seen[a.Link] = true
			all = append(all, a)
		}
	}
	if failed == len(s.Feeds) {
		return nil, ErrNoFeedAvailable
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}

	now := s.now()
	for i := range all {
		all[i].TimeAgo = TimeAgo(all[i].PublishedAt, now)
	}
	if all == nil {
		all = []model.Article{}
	}
	return all, nil
}

func (s *NewsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *NewsService) fetchFeed(ctx context.Context, feedURL string) ([]model.Article, error) {
	raw, err := s.breakerFor(feedURL).Execute(func() ([]byte, error) {
		return s.download(ctx, feedURL)
	})
	if err != nil {
		return nil, err
	}
	_, items, err := parseFeed(raw)
	return items, err
}

func (s *NewsService) download(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("buat request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", "tvdigital-backend/1.0")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("baca body: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("body kosong")
	}
	return raw, nil
}
