// Package cache puts a Redis read-through cache in front of a bookmark store.
package cache

import (
	"context"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

// CachedStore serves reads from Redis when it can and invalidates on writes.
// Redis failures are logged and the call falls through to the wrapped store,
// so the cache never turns a working request into an error.
type CachedStore struct {
	next  store.BookmarkStoreIface
	cache *BookmarkCache
	log   logger.Logger
}

var _ store.BookmarkStoreIface = (*CachedStore)(nil)

// NewCachedStore wraps next with cache.
func NewCachedStore(next store.BookmarkStoreIface, cache *BookmarkCache, log logger.Logger) *CachedStore {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedStore{next: next, cache: cache, log: log}
}

func (s *CachedStore) ListAll(ctx context.Context) ([]*store.Bookmark, error) {
	list, err := s.cache.GetList(ctx)
	switch {
	case err != nil:
		s.cacheError("get list", err)
	case list != nil:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return list, nil
	default:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	gen, genErr := s.cache.ListGeneration(ctx)
	if genErr != nil {
		s.cacheError("list generation", genErr)
	}

	list, err = s.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.cache.SetList(ctx, gen, list); err != nil {
			s.cacheError("set list", err)
		}
	}
	return list, nil
}

func (s *CachedStore) GetByID(ctx context.Context, id int64) (*store.Bookmark, error) {
	b, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		s.cacheError("get", err)
	case b != nil:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return b, nil
	default:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	// The generation is read before the row, so a write that lands in
	// between makes the fill below a no-op.
	gen, genErr := s.cache.Generation(ctx, id)
	if genErr != nil {
		s.cacheError("generation", genErr)
	}

	// ErrNotFound is passed through and never cached.
	b, err = s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.cache.Set(ctx, gen, b); err != nil {
			s.cacheError("set", err)
		}
	}
	return b, nil
}

func (s *CachedStore) Create(ctx context.Context, nb store.NewBookmark) (*store.Bookmark, error) {
	b, err := s.next.Create(ctx, nb)
	if err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateList(ctx); err != nil {
		s.cacheError("invalidate list", err)
	}
	return b, nil
}

func (s *CachedStore) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.next.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return n, nil
}

func (s *CachedStore) Update(ctx context.Context, id int64, u store.BookmarkUpdate) (int64, error) {
	n, err := s.next.Update(ctx, id, u)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return n, nil
}

func (s *CachedStore) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.cacheError("invalidate", err)
	}
}

func (s *CachedStore) cacheError(op string, err error) {
	metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	s.log.Warn("bookmark cache unavailable", logger.String("op", op), logger.Error(err))
}
