package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/infrastructure/observability"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// memCache is a map-backed cache provider with per-test hit control.
type memCache struct {
	entries map[string][]byte
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.entries[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("cache miss")
	}
	return value, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func TestCacheMiddleware(t *testing.T) {
	courtsBody := `{"courts":[],"count":0}`
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(courtsBody))
	})

	t.Run("miss then hit on a cacheable route", func(t *testing.T) {
		cache := newMemCache()
		m := middleware.NewCacheMiddleware(cache, nil)
		handler := m.Middleware(backend)

		// First request misses and stores the response
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
		assert.Equal(t, 1, cache.sets)

		// Second request is served from cache
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
		assert.Equal(t, courtsBody, w.Body.String())
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("query string is part of the key", func(t *testing.T) {
		cache := newMemCache()
		m := middleware.NewCacheMiddleware(cache, nil)
		handler := m.Middleware(backend)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts?page=1", nil))
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts?page=2", nil))
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

		assert.Equal(t, 2, cache.sets)
	})

	t.Run("uncacheable routes pass through", func(t *testing.T) {
		cache := newMemCache()
		m := middleware.NewCacheMiddleware(cache, nil)
		handler := m.Middleware(backend)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/bookings", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Cache"))
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("non-GET requests are never cached", func(t *testing.T) {
		cache := newMemCache()
		m := middleware.NewCacheMiddleware(cache, nil)
		handler := m.Middleware(backend)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/courts", nil))

		assert.Empty(t, w.Header().Get("X-Cache"))
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("records hit and miss counters when metrics are wired", func(t *testing.T) {
		cache := newMemCache()
		metrics, err := observability.InitMetrics()
		assert.NoError(t, err)

		m := middleware.NewCacheMiddleware(cache, metrics)
		handler := m.Middleware(backend)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts", nil))
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts", nil))
		assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	})

	t.Run("error responses are not stored", func(t *testing.T) {
		cache := newMemCache()
		m := middleware.NewCacheMiddleware(cache, nil)
		failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		})
		handler := m.Middleware(failing)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/courts", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 0, cache.sets)
	})
}
