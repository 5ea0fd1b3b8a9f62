package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/engagekit/question-engine/internal/archive"
	"github.com/engagekit/question-engine/internal/cache"
	"github.com/engagekit/question-engine/internal/fetch"
	"github.com/engagekit/question-engine/internal/metrics"
	"github.com/engagekit/question-engine/internal/publish"
	"github.com/engagekit/question-engine/internal/question"
	"github.com/engagekit/question-engine/internal/store"
)

// Sentinel errors the HTTP layer maps to status codes and wire messages.
var (
	ErrNoURL       = errors.New("no url provided")
	ErrFetchFailed = errors.New("failed to retrieve content")
	ErrCache       = errors.New("cache service failure")
)

// classifyResponse is the wire shape for a successful classification.
type classifyResponse struct {
	Questions question.Set `json:"questions"`
}

// Service orchestrates the fetch, generate, cache and persist pipeline.
type Service struct {
	fetcher   fetch.Fetcher
	headless  fetch.Fetcher
	detector  *fetch.Detector
	generator *question.Generator
	cache     cache.Cache
	store     store.Store
	archive   archive.Archive
	publisher publish.Publisher
	logger    *zap.Logger
}

// NewService wires the pipeline collaborators. headless may be nil when the
// headless fallback is disabled; archive and publisher may be nil when those
// side effects are not configured.
func NewService(
	fetcher fetch.Fetcher,
	headless fetch.Fetcher,
	detector *fetch.Detector,
	generator *question.Generator,
	c cache.Cache,
	st store.Store,
	arc archive.Archive,
	pub publish.Publisher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	return &Service{
		fetcher:   fetcher,
		headless:  headless,
		detector:  detector,
		generator: generator,
		cache:     c,
		store:     st,
		archive:   arc,
		publisher: pub,
		logger:    logger,
	}
}

// NormalizeURL prefixes bare hosts with http:// so downstream parsers accept
// them. The normalized form is also the cache key.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "http://" + raw
	}
	return raw
}

// Classify runs the full pipeline for rawURL and returns the response body
// as JSON. Cached responses are returned byte for byte.
func (s *Service) Classify(ctx context.Context, rawURL string) ([]byte, error) {
	url := NormalizeURL(rawURL)
	if url == "" {
		return nil, ErrNoURL
	}

	cached, hit, err := s.cache.Get(ctx, url)
	if err != nil {
		s.logger.Error("cache lookup failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCache, err)
	}
	metrics.ObserveCacheLookup(hit)
	if hit {
		s.logger.Debug("cache hit", zap.String("url", url))
		return cached, nil
	}

	text, err := s.fetchText(ctx, url)
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	questions, err := s.generator.Generate(text)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	body, err := json.Marshal(classifyResponse{Questions: questions})
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	if err := s.cache.Set(ctx, url, body); err != nil {
		s.logger.Error("cache write failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCache, err)
	}

	metrics.AddQuestionsGenerated(len(questions))
	s.persist(ctx, url, text, questions)
	return body, nil
}

// fetchText fetches the page, promoting to the headless browser when the
// static fetch comes back thin. A page that yields no text at all counts as
// a failed retrieval.
func (s *Service) fetchText(ctx context.Context, url string) (string, error) {
	start := time.Now()
	res, err := s.fetcher.Fetch(ctx, url)
	metrics.ObserveFetch("static", err, time.Since(start))
	if err == nil && (s.headless == nil || s.detector == nil || !s.detector.ShouldPromote(res)) {
		return requireText(res.Text)
	}
	if s.headless == nil {
		if err != nil {
			return "", err
		}
		return requireText(res.Text)
	}

	metrics.ObserveHeadlessPromotion()
	s.logger.Info("promoting fetch to headless browser", zap.String("url", url))
	start = time.Now()
	hres, herr := s.headless.Fetch(ctx, url)
	metrics.ObserveFetch("headless", herr, time.Since(start))
	if herr != nil {
		if err != nil {
			return "", fmt.Errorf("static fetch: %v; headless fetch: %w", err, herr)
		}
		// Keep the static result when only the rendered attempt failed.
		return requireText(res.Text)
	}
	if strings.TrimSpace(hres.Text) == "" {
		// Fall back to whatever the static pass extracted.
		return requireText(res.Text)
	}
	return hres.Text, nil
}

func requireText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text content extracted")
	}
	return text, nil
}

// persist runs the best-effort side effects. Failures are logged and never
// surfaced to the caller.
func (s *Service) persist(ctx context.Context, url string, text string, questions question.Set) {
	if s.store != nil {
		if err := s.store.StoreQuestions(ctx, url, questions); err != nil {
			s.logger.Error("store questions failed", zap.String("url", url), zap.Error(err))
		}
	}
	if s.archive != nil {
		if uri, err := s.archive.SaveText(ctx, url, text); err != nil {
			s.logger.Error("archive snapshot failed", zap.String("url", url), zap.Error(err))
		} else {
			s.logger.Debug("archived snapshot", zap.String("uri", uri))
		}
	}
	if s.publisher != nil {
		event := publish.NewEvent(url, len(questions))
		if _, err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("publish event failed", zap.String("url", url), zap.Error(err))
		}
	}
}
