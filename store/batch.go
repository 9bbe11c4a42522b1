package store

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// newBatch returns an atomic batch when the store supports one and a
// sequential fallback otherwise.
func newBatch(s wasmtypes.KvStore) Batch {
	if batcher, ok := s.(Batcher); ok {
		return batcher.NewBatch()
	}
	return &directBatch{store: s}
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// directBatch replays its operations in order on Commit. A failure halfway
// leaves the earlier writes applied.
type directBatch struct {
	store wasmtypes.KvStore
	ops   []batchOp
}

func (b *directBatch) Set(key []byte, value []byte) error {
	b.ops = append(b.ops, batchOp{key: key, value: value})
	return nil
}

func (b *directBatch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
	return nil
}

func (b *directBatch) Commit() error {
	for _, op := range b.ops {
		var err error
		if op.delete {
			err = b.store.Delete(op.key)
		} else {
			err = b.store.Set(op.key, op.value)
		}
		if err != nil {
			return errors.Wrap(err, "commit")
		}
	}
	b.ops = nil
	return nil
}

func (b *directBatch) Abort() error {
	b.ops = nil
	return nil
}
