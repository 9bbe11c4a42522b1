package store

import (
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/config"
)

// PebbleStore is the persistent state store backing a local host.
type PebbleStore struct {
	config *config.DBConfig
	db     *pebble.DB
	logger *zap.Logger
}

func NewPebbleStore(
	logger *zap.Logger,
	cfg *config.DBConfig,
) (*PebbleStore, error) {
	opts := &pebble.Options{}
	if cfg.InMemoryDONOTUSE {
		opts.FS = vfs.NewMem()
	} else if _, err := os.Stat(cfg.Path); err == nil {
		logger.Info("store found", zap.String("path", cfg.Path))
	} else if os.IsNotExist(err) {
		logger.Warn("store not found, creating", zap.String("path", cfg.Path))
	} else {
		return nil, errors.Wrap(err, "new pebble store")
	}

	db, err := pebble.Open(cfg.Path, opts)
	if err != nil {
		return nil, errors.Wrap(err, "new pebble store")
	}

	return &PebbleStore{config: cfg, db: db, logger: logger}, nil
}

func (p *PebbleStore) Get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get")
	}
	defer closer.Close()

	return append([]byte{}, value...), nil
}

func (p *PebbleStore) Exists(key []byte) (bool, error) {
	_, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "exists")
	}
	return true, closer.Close()
}

func (p *PebbleStore) Set(key, value []byte) error {
	return errors.Wrap(p.db.Set(key, value, pebble.Sync), "set")
}

func (p *PebbleStore) Delete(key []byte) error {
	return errors.Wrap(p.db.Delete(key, pebble.Sync), "delete")
}

func (p *PebbleStore) NewBatch() Batch {
	return &PebbleBatch{b: p.db.NewBatch()}
}

// Iterate walks every key with the given prefix in ascending order.
func (p *PebbleStore) Iterate(prefix []byte, fn IterateFunc) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return errors.Wrap(err, "iterate")
	}

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(
			append([]byte{}, iter.Key()...),
			append([]byte{}, iter.Value()...),
		); err != nil {
			iter.Close()
			return err
		}
	}

	return errors.Wrap(iter.Close(), "iterate")
}

func (p *PebbleStore) Close() error {
	return p.db.Close()
}

type PebbleBatch struct {
	b *pebble.Batch
}

func (t *PebbleBatch) Set(key []byte, value []byte) error {
	return t.b.Set(key, value, pebble.Sync)
}

func (t *PebbleBatch) Delete(key []byte) error {
	return t.b.Delete(key, pebble.Sync)
}

func (t *PebbleBatch) Commit() error {
	if err := t.b.Commit(pebble.Sync); err != nil {
		t.b.Close()
		return errors.Wrap(err, "commit")
	}
	return errors.Wrap(t.b.Close(), "commit")
}

func (t *PebbleBatch) Abort() error {
	return t.b.Close()
}

var _ Batch = (*PebbleBatch)(nil)
var _ Batcher = (*PebbleStore)(nil)
var _ Iterable = (*PebbleStore)(nil)
