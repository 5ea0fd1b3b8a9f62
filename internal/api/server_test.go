package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/engagekit/question-engine/internal/archive"
	"github.com/engagekit/question-engine/internal/cache"
	"github.com/engagekit/question-engine/internal/config"
	"github.com/engagekit/question-engine/internal/fetch"
	"github.com/engagekit/question-engine/internal/publish"
	"github.com/engagekit/question-engine/internal/question"
	"github.com/engagekit/question-engine/internal/store"
)

type stubFetcher struct {
	result fetch.Result
	err    error
}

func (f *stubFetcher) Fetch(context.Context, string) (fetch.Result, error) {
	return f.result, f.err
}

type stubTagger struct {
	sentences []string
	entities  []question.Entity
}

func (t *stubTagger) Tag(string) ([]string, []question.Entity, error) {
	return t.sentences, t.entities, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingCache) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func (failingCache) Flush(context.Context) error { return errors.New("connection refused") }
func (failingCache) Ping(context.Context) error  { return errors.New("connection refused") }

type testHarness struct {
	server    *Server
	cache     *cache.MemoryCache
	store     *store.MemoryStore
	archive   *archive.Memory
	publisher *publish.MemoryPublisher
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: 8080, TimeoutSeconds: 10},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Fetch:  config.FetchConfig{TimeoutSeconds: 5},
	}
}

func newHarness(t *testing.T, fetcher fetch.Fetcher, c cache.Cache) *testHarness {
	t.Helper()

	h := &testHarness{
		store:     store.NewMemory(),
		archive:   archive.NewMemory(),
		publisher: publish.NewMemory(),
	}
	if c == nil {
		h.cache = cache.NewMemory()
		c = h.cache
	}
	tagger := &stubTagger{
		sentences: []string{"Acme Corp announced a new quantum computing platform today."},
		entities:  []question.Entity{{Text: "Acme Corp", Label: "ORG"}},
	}
	generator := question.NewGenerator(tagger, question.NewSeededRand(42))
	service := NewService(fetcher, nil, nil, generator, c, h.store, h.archive, h.publisher, nil)
	h.server = NewServer(service, testConfig(), nil)
	return h
}

func postClassify(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestClassifyMissingURL(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, nil)

	for _, body := range []string{`{}`, `{"url":""}`, `not json`} {
		rec := postClassify(t, h.server.Handler(), body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "No URL provided")
	}
}

func TestClassifyFetchFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{err: errors.New("connection timed out")}, nil)

	rec := postClassify(t, h.server.Handler(), `{"url":"http://example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Failed to retrieve content from URL")
}

func TestClassifyHappyPath(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{result: fetch.Result{
		StatusCode: 200,
		Text:       "Acme Corp announced a new quantum computing platform today.",
	}}
	h := newHarness(t, fetcher, nil)

	rec := postClassify(t, h.server.Handler(), `{"url":"example.com/article"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Questions []question.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Questions)
	for _, q := range resp.Questions {
		require.GreaterOrEqual(t, q.ID, 1000)
		require.Less(t, q.ID, 9999)
		require.NotEmpty(t, q.Options)
	}

	// URL without a scheme is normalized before the pipeline runs.
	normalized := "http://example.com/article"
	require.NotEmpty(t, h.store.Questions(normalized))
	_, archived := h.archive.Text(normalized)
	require.True(t, archived)
	events := h.publisher.Events()
	require.Len(t, events, 1)
	require.Equal(t, normalized, events[0].URL)
	require.Equal(t, len(resp.Questions), events[0].QuestionCount)

	cached, hit, err := h.cache.Get(context.Background(), normalized)
	require.NoError(t, err)
	require.True(t, hit)
	require.JSONEq(t, rec.Body.String(), string(cached))
}

func TestClassifyCacheHitReturnsVerbatim(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{err: errors.New("should not be called")}, nil)

	cachedBody := `{"questions":[{"questionId":4321,"question":"Do you agree?","options":["Yes","No"]}]}`
	require.NoError(t, h.cache.Set(context.Background(), "http://example.com", []byte(cachedBody)))

	rec := postClassify(t, h.server.Handler(), `{"url":"http://example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cachedBody, rec.Body.String())
	require.Empty(t, h.publisher.Events())
}

func TestClassifyCacheFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, failingCache{})

	rec := postClassify(t, h.server.Handler(), `{"url":"http://example.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Cache service failure")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")
}

func TestReadyzReportsCacheFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, failingCache{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/classify", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &stubFetcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	tagger := &stubTagger{sentences: []string{"Some article text here."}}
	generator := question.NewGenerator(tagger, question.NewSeededRand(3))
	service := NewService(&stubFetcher{}, nil, nil, generator, cache.NewMemory(), nil, nil, nil, nil)
	server := NewServer(service, testConfig(), logger)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	reqID := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, reqID)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, reqID, entries[0].ContextMap()["request_id"])
}

func TestAPIKeyMiddleware(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{result: fetch.Result{StatusCode: 200, Text: "Some article text here."}}
	tagger := &stubTagger{sentences: []string{"Some article text here."}}
	generator := question.NewGenerator(tagger, question.NewSeededRand(7))
	service := NewService(fetcher, nil, nil, generator, cache.NewMemory(), nil, nil, nil, nil)

	cfg := testConfig()
	cfg.Auth = config.AuthConfig{Enabled: true, APIKey: "sekrit"}
	server := NewServer(service, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString(`{"url":"http://example.com"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString(`{"url":"http://example.com"}`))
	req.Header.Set("X-API-Key", "sekrit")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
