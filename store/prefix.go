package store

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// PrefixStore partitions a store by prepending a fixed prefix to every key.
type PrefixStore struct {
	inner  wasmtypes.KvStore
	prefix []byte
}

func NewPrefixStore(inner wasmtypes.KvStore, prefix []byte) *PrefixStore {
	return &PrefixStore{inner: inner, prefix: append([]byte{}, prefix...)}
}

func (p *PrefixStore) key(key []byte) []byte {
	buf := make([]byte, 0, len(p.prefix)+len(key))
	buf = append(buf, p.prefix...)
	return append(buf, key...)
}

func (p *PrefixStore) Get(key []byte) ([]byte, error) {
	return p.inner.Get(p.key(key))
}

func (p *PrefixStore) Exists(key []byte) (bool, error) {
	return p.inner.Exists(p.key(key))
}

func (p *PrefixStore) Set(key []byte, value []byte) error {
	return p.inner.Set(p.key(key), value)
}

func (p *PrefixStore) Delete(key []byte) error {
	return p.inner.Delete(p.key(key))
}

// Iterate reports keys with the partition prefix stripped.
func (p *PrefixStore) Iterate(prefix []byte, fn IterateFunc) error {
	iterable, ok := p.inner.(Iterable)
	if !ok {
		return ErrNotIterable
	}
	return iterable.Iterate(p.key(prefix), func(key, value []byte) error {
		return fn(key[len(p.prefix):], value)
	})
}
