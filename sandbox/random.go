package sandbox

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

const rngWindow = wasmtypes.ScUint64Length

// rng is the deterministic generator of a single invocation. It starts
// from the request entropy and rehashes its pool every time the 32 bytes
// are used up.
type rng struct {
	entropy []byte
	offset  int
}

// Random returns a deterministic value in [0, max). A zero max is a
// contract bug and fails with ErrZeroRandomMax.
func (s ScSandboxFunc) Random(max uint64) (uint64, error) {
	if max == 0 {
		return 0, ErrZeroRandomMax
	}

	r := s.rng
	if len(r.entropy) == 0 {
		entropy, err := s.Entropy()
		if err != nil {
			return 0, errors.Wrap(err, "random")
		}
		r.entropy = entropy.Bytes()
		r.offset = 0
	}
	if r.offset+rngWindow > len(r.entropy) {
		next, err := s.Utility().HashBlake2b(r.entropy)
		if err != nil {
			return 0, errors.Wrap(err, "random")
		}
		r.entropy = next.Bytes()
		r.offset = 0
	}

	value, err := wasmtypes.Uint64FromBytes(r.entropy[r.offset : r.offset+rngWindow])
	if err != nil {
		return 0, errors.Wrap(err, "random")
	}
	r.offset += rngWindow
	return value % max, nil
}
