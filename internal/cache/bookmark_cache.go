package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joestump/bookmarks-api/internal/store"
)

const (
	keyList     = "bookmarks:list"
	keyBookmark = "bookmarks:id:"
	keyGen      = "bookmarks:gen:"
	keyListGen  = keyGen + "list"
)

// BookmarkCache keeps the bookmark list and single bookmarks in Redis as JSON.
//
// Every cached value has a generation counter next to it. Invalidation bumps the
// counter, and a fill only lands if the counter still holds the value read
// before the backing store was queried. A read that races a write therefore
// cannot put the pre-write row back after the write cleared it.
type BookmarkCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBookmarkCache returns a new BookmarkCache.
func NewBookmarkCache(rdb *redis.Client, ttl time.Duration) *BookmarkCache {
	return &BookmarkCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list, or nil on a miss.
func (c *BookmarkCache) GetList(ctx context.Context) ([]*store.Bookmark, error) {
	var list []*store.Bookmark
	ok, err := c.get(ctx, keyList, &list)
	if !ok || err != nil {
		return nil, err
	}
	if list == nil {
		list = []*store.Bookmark{}
	}
	return list, nil
}

// ListGeneration returns the current list generation. Pass it to SetList.
func (c *BookmarkCache) ListGeneration(ctx context.Context) (int64, error) {
	return c.generation(ctx, c.rdb, keyListGen)
}

// SetList stores the list unless the list was invalidated after gen was read.
func (c *BookmarkCache) SetList(ctx context.Context, gen int64, list []*store.Bookmark) error {
	return c.setIfCurrent(ctx, keyListGen, gen, keyList, list)
}

// Get returns the cached bookmark, or nil on a miss.
func (c *BookmarkCache) Get(ctx context.Context, id int64) (*store.Bookmark, error) {
	var b store.Bookmark
	ok, err := c.get(ctx, bookmarkKey(id), &b)
	if !ok || err != nil {
		return nil, err
	}
	return &b, nil
}

// Generation returns the current generation of one bookmark. Pass it to Set.
func (c *BookmarkCache) Generation(ctx context.Context, id int64) (int64, error) {
	return c.generation(ctx, c.rdb, bookmarkGenKey(id))
}

// Set stores one bookmark unless it was invalidated after gen was read.
func (c *BookmarkCache) Set(ctx context.Context, gen int64, b *store.Bookmark) error {
	return c.setIfCurrent(ctx, bookmarkGenKey(b.ID), gen, bookmarkKey(b.ID), b)
}

// InvalidateList drops the cached list and bumps its generation.
func (c *BookmarkCache) InvalidateList(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, keyListGen)
		p.Del(ctx, keyList)
		return nil
	})
	return err
}

// Invalidate drops the cached bookmark and the cached list and bumps both
// generations.
func (c *BookmarkCache) Invalidate(ctx context.Context, id int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, bookmarkGenKey(id))
		p.Incr(ctx, keyListGen)
		p.Del(ctx, keyList, bookmarkKey(id))
		return nil
	})
	return err
}

func (c *BookmarkCache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation reads a counter; a missing counter is generation 0.
func (c *BookmarkCache) generation(ctx context.Context, cmd stringGetter, key string) (int64, error) {
	n, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// setIfCurrent writes key under WATCH on genKey, so an Incr landing between the
// check and the write aborts the transaction.
func (c *BookmarkCache) setIfCurrent(ctx context.Context, genKey string, gen int64, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.generation(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func bookmarkKey(id int64) string {
	return keyBookmark + strconv.FormatInt(id, 10)
}

func bookmarkGenKey(id int64) string {
	return keyGen + "id:" + strconv.FormatInt(id, 10)
}
