package store

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

type overlayWrite struct {
	value   []byte
	deleted bool
}

// Overlay buffers the writes of a single invocation on top of a base store.
// Commit applies them to the base in ascending key order, Discard drops them.
// An Overlay is not safe for concurrent use.
type Overlay struct {
	base   wasmtypes.KvStore
	writes map[string]overlayWrite
}

func NewOverlay(base wasmtypes.KvStore) *Overlay {
	return &Overlay{base: base, writes: map[string]overlayWrite{}}
}

func (o *Overlay) Get(key []byte) ([]byte, error) {
	if w, ok := o.writes[string(key)]; ok {
		if w.deleted {
			return nil, nil
		}
		return append([]byte{}, w.value...), nil
	}
	return o.base.Get(key)
}

func (o *Overlay) Exists(key []byte) (bool, error) {
	if w, ok := o.writes[string(key)]; ok {
		return !w.deleted, nil
	}
	return o.base.Exists(key)
}

func (o *Overlay) Set(key []byte, value []byte) error {
	o.writes[string(key)] = overlayWrite{value: append([]byte{}, value...)}
	return nil
}

func (o *Overlay) Delete(key []byte) error {
	o.writes[string(key)] = overlayWrite{deleted: true}
	return nil
}

// Dirty returns the number of keys with pending writes.
func (o *Overlay) Dirty() int {
	return len(o.writes)
}

func (o *Overlay) Commit() error {
	batch := newBatch(o.base)
	for _, key := range slices.Sorted(maps.Keys(o.writes)) {
		w := o.writes[key]
		var err error
		if w.deleted {
			err = batch.Delete([]byte(key))
		} else {
			err = batch.Set([]byte(key), w.value)
		}
		if err != nil {
			batch.Abort()
			return errors.Wrap(err, "commit")
		}
	}

	if err := batch.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	o.Discard()
	return nil
}

func (o *Overlay) Discard() {
	clear(o.writes)
}
