package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/providers"
	"github.com/scmc/club-backend/internal/domain/repositories"
)

// CachedCourtAdapter wraps CourtAdapter with caching. Court listings are
// the read-heavy hot path of the public site; mutations invalidate the
// list keys so stale pages never outlive a change by more than the TTL.
type CachedCourtAdapter struct {
	adapter repositories.CourtRepository
	cache   providers.CacheProvider
}

// NewCachedCourtAdapter creates a new cached court adapter
func NewCachedCourtAdapter(adapter repositories.CourtRepository, cache providers.CacheProvider) repositories.CourtRepository {
	return &CachedCourtAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	courtByIDTTL     = 300 // 5 minutes for single court
	courtListTTL     = 180 // 3 minutes for paginated lists
	courtFeaturedTTL = 300 // 5 minutes for the featured strip
)

func courtCacheKey(id string) string {
	return fmt.Sprintf("court:%s", id)
}

func courtListCacheKey(page, size int) string {
	return fmt.Sprintf("courts:list:%d:%d", page, size)
}

const courtFeaturedCacheKey = "courts:featured"

type cachedCourtPage struct {
	Courts []*entities.Court `json:"courts"`
	Total  int64             `json:"total"`
}

// Create creates a court and invalidates the list caches
func (a *CachedCourtAdapter) Create(ctx context.Context, court *entities.Court) error {
	if err := a.adapter.Create(ctx, court); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	return nil
}

// GetByID retrieves a court by ID with caching
func (a *CachedCourtAdapter) GetByID(ctx context.Context, id string) (*entities.Court, error) {
	cacheKey := courtCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var court entities.Court
		if err := json.Unmarshal(cached, &court); err == nil {
			return &court, nil
		}
		log.Printf("Failed to unmarshal cached court %s: %v", id, err)
	}

	// Cache miss - fetch from database
	court, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(court); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, courtByIDTTL); err != nil {
				log.Printf("Failed to cache court %s: %v", id, err)
			}
		}
	}()

	return court, nil
}

// List retrieves a page of courts with caching
func (a *CachedCourtAdapter) List(ctx context.Context, page, size int) ([]*entities.Court, int64, error) {
	cacheKey := courtListCacheKey(page, size)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var result cachedCourtPage
		if err := json.Unmarshal(cached, &result); err == nil {
			return result.Courts, result.Total, nil
		}
	}

	courts, total, err := a.adapter.List(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(cachedCourtPage{Courts: courts, Total: total}); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, courtListTTL); err != nil {
				log.Printf("Failed to cache court page %s: %v", cacheKey, err)
			}
		}
	}()

	return courts, total, nil
}

// ListFeatured retrieves featured courts with caching
func (a *CachedCourtAdapter) ListFeatured(ctx context.Context) ([]*entities.Court, error) {
	if cached, err := a.cache.Get(ctx, courtFeaturedCacheKey); err == nil {
		var courts []*entities.Court
		if err := json.Unmarshal(cached, &courts); err == nil {
			return courts, nil
		}
	}

	courts, err := a.adapter.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(courts); err == nil {
			if err := a.cache.Set(bgCtx, courtFeaturedCacheKey, data, courtFeaturedTTL); err != nil {
				log.Printf("Failed to cache featured courts: %v", err)
			}
		}
	}()

	return courts, nil
}

// Update updates a court and invalidates its caches
func (a *CachedCourtAdapter) Update(ctx context.Context, court *entities.Court) error {
	if err := a.adapter.Update(ctx, court); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, courtCacheKey(court.ID)); err != nil {
		log.Printf("Failed to invalidate court cache %s: %v", court.ID, err)
	}
	a.invalidateLists(ctx)
	return nil
}

// Delete deletes a court and invalidates its caches
func (a *CachedCourtAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, courtCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate court cache %s: %v", id, err)
	}
	a.invalidateLists(ctx)
	return nil
}

// Count returns the total number of courts (uncached, admin stats only)
func (a *CachedCourtAdapter) Count(ctx context.Context) (int64, error) {
	return a.adapter.Count(ctx)
}

// invalidateLists drops the featured key. Paginated list keys carry
// their own short TTL; enumerating every page/size combination for
// deletion is not worth it.
func (a *CachedCourtAdapter) invalidateLists(ctx context.Context) {
	if err := a.cache.Delete(ctx, courtFeaturedCacheKey); err != nil {
		log.Printf("Failed to invalidate featured courts cache: %v", err)
	}
}
