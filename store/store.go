package store

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// Batch collects writes that become visible together on Commit.
type Batch interface {
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	Commit() error
	Abort() error
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	NewBatch() Batch
}

// IterateFunc receives every key/value pair below a prefix in ascending key
// order. Returning an error stops the iteration.
type IterateFunc func(key []byte, value []byte) error

// Iterable is implemented by stores that can enumerate their keys.
type Iterable interface {
	Iterate(prefix []byte, fn IterateFunc) error
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix, or nil when no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

var _ wasmtypes.KvStore = (*PebbleStore)(nil)
var _ wasmtypes.KvStore = (*CachedStore)(nil)
var _ wasmtypes.KvStore = (*Overlay)(nil)
var _ wasmtypes.KvStore = (*PrefixStore)(nil)
