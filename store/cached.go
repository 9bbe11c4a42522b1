package store

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

var ErrNotIterable = errors.New("store is not iterable")

type cacheEntry struct {
	value  []byte
	exists bool
}

// CachedStore keeps recently read state entries, including known absent keys,
// in front of a slower store. Writes go through to the inner store first.
type CachedStore struct {
	cache *lru.Cache[string, cacheEntry]
	inner wasmtypes.KvStore
}

func NewCachedStore(inner wasmtypes.KvStore, size int) (*CachedStore, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, errors.Wrap(err, "new cached store")
	}
	return &CachedStore{cache: cache, inner: inner}, nil
}

func (c *CachedStore) Get(key []byte) ([]byte, error) {
	if entry, ok := c.cache.Get(string(key)); ok {
		if !entry.exists {
			return nil, nil
		}
		return append([]byte{}, entry.value...), nil
	}

	value, err := c.inner.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), cacheEntry{
		value:  append([]byte{}, value...),
		exists: value != nil,
	})
	return value, nil
}

func (c *CachedStore) Exists(key []byte) (bool, error) {
	if entry, ok := c.cache.Get(string(key)); ok {
		return entry.exists, nil
	}
	return c.inner.Exists(key)
}

func (c *CachedStore) Set(key []byte, value []byte) error {
	if err := c.inner.Set(key, value); err != nil {
		c.cache.Remove(string(key))
		return err
	}
	c.cache.Add(string(key), cacheEntry{
		value:  append([]byte{}, value...),
		exists: true,
	})
	return nil
}

func (c *CachedStore) Delete(key []byte) error {
	if err := c.inner.Delete(key); err != nil {
		c.cache.Remove(string(key))
		return err
	}
	c.cache.Add(string(key), cacheEntry{})
	return nil
}

// NewBatch returns a batch on the inner store that refreshes the cache once
// it commits.
func (c *CachedStore) NewBatch() Batch {
	return &cachedBatch{store: c, batch: newBatch(c.inner)}
}

func (c *CachedStore) Iterate(prefix []byte, fn IterateFunc) error {
	iterable, ok := c.inner.(Iterable)
	if !ok {
		return ErrNotIterable
	}
	return iterable.Iterate(prefix, fn)
}

// Len returns the number of cached entries.
func (c *CachedStore) Len() int {
	return c.cache.Len()
}

func (c *CachedStore) Purge() {
	c.cache.Purge()
}

type cachedBatch struct {
	store *CachedStore
	batch Batch
	keys  []string
}

func (b *cachedBatch) Set(key []byte, value []byte) error {
	b.keys = append(b.keys, string(key))
	return b.batch.Set(key, value)
}

func (b *cachedBatch) Delete(key []byte) error {
	b.keys = append(b.keys, string(key))
	return b.batch.Delete(key)
}

func (b *cachedBatch) Commit() error {
	// the next read goes to the inner store whatever the outcome
	for _, key := range b.keys {
		b.store.cache.Remove(key)
	}
	return b.batch.Commit()
}

func (b *cachedBatch) Abort() error {
	return b.batch.Abort()
}

var _ Batcher = (*CachedStore)(nil)
var _ Iterable = (*CachedStore)(nil)
