package sandbox

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

var (
	_ wasmtypes.KvStore = ScState{}
	_ wasmtypes.KvStore = ScImmutableState{}
)

// ScState is the mutable contract state, reached through the host.
type ScState struct {
	host Host
}

func (s ScState) Delete(key []byte) error {
	return errors.Wrap(s.host.StateDelete(key), "state delete")
}

func (s ScState) Exists(key []byte) (bool, error) {
	exists, err := s.host.StateExists(key)
	return exists, errors.Wrap(err, "state exists")
}

func (s ScState) Get(key []byte) ([]byte, error) {
	value, err := s.host.StateGet(key)
	return value, errors.Wrap(err, "state get")
}

func (s ScState) Immutable() ScImmutableState {
	return ScImmutableState{host: s.host}
}

func (s ScState) Set(key []byte, value []byte) error {
	return errors.Wrap(s.host.StateSet(key, value), "state set")
}

// ScImmutableState is the contract state as seen from a view. Any mutation
// attempt fails with ErrViewMutation.
type ScImmutableState struct {
	host Host
}

func (s ScImmutableState) Delete(key []byte) error {
	return errors.Wrapf(ErrViewMutation, "delete %x", key)
}

func (s ScImmutableState) Exists(key []byte) (bool, error) {
	exists, err := s.host.StateExists(key)
	return exists, errors.Wrap(err, "state exists")
}

func (s ScImmutableState) Get(key []byte) ([]byte, error) {
	value, err := s.host.StateGet(key)
	return value, errors.Wrap(err, "state get")
}

func (s ScImmutableState) Set(key []byte, value []byte) error {
	return errors.Wrapf(ErrViewMutation, "set %x", key)
}
