package usecase

import (
	"course-match/internal/cache"
	"course-match/internal/domain/course"
)

// CacheAdminUsecase is a thin pass-through over the result cache for the
// administrative surface.
type CacheAdminUsecase interface {
	Stats() cache.Stats
	TopItems(limit int) []cache.TopItem
	Clear()
	CleanupExpired() int
}

type CacheAdmin struct {
	results *cache.Dynamic[course.AvailabilityResult]
}

func NewCacheAdminUsecase(results *cache.Dynamic[course.AvailabilityResult]) *CacheAdmin {
	return &CacheAdmin{results: results}
}

func (u *CacheAdmin) Stats() cache.Stats {
	return u.results.Stats()
}

func (u *CacheAdmin) TopItems(limit int) []cache.TopItem {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return u.results.TopItems(limit)
}

func (u *CacheAdmin) Clear() {
	u.results.Clear()
}

func (u *CacheAdmin) CleanupExpired() int {
	return u.results.CleanupExpired()
}

var _ CacheAdminUsecase = (*CacheAdmin)(nil)
