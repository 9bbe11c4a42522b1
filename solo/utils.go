package solo

import (
	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// HashName derives the hname of a contract or function name: the first four
// bytes of its blake2b-256 digest, little endian. 0 and 0xffffffff are
// reserved and map to 1.
func HashName(name string) wasmtypes.ScHname {
	digest := blake2b.Sum256([]byte(name))
	hname, _ := wasmtypes.HnameFromBytes(digest[:wasmtypes.ScHnameLength])
	if hname == 0 || hname == ^wasmtypes.ScHname(0) {
		return 1
	}
	return hname
}

func hashBlake2b(buf []byte) wasmtypes.ScHash {
	digest := blake2b.Sum256(buf)
	return wasmtypes.HashFromRaw(digest[:])
}

func hashSha3(buf []byte) wasmtypes.ScHash {
	digest := sha3.Sum256(buf)
	return wasmtypes.HashFromRaw(digest[:])
}

// ed25519Address is the L1 address controlled by pubKey.
func ed25519Address(pubKey []byte) (wasmtypes.ScAddress, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return wasmtypes.ScAddress{}, errors.Wrapf(
			ErrInvalidPubKey,
			"ed25519 key of %d bytes",
			len(pubKey),
		)
	}
	digest := blake2b.Sum256(pubKey)
	return wasmtypes.AddressFromBytes(
		append([]byte{wasmtypes.ScAddressEd25519}, digest[:]...),
	)
}

func ed25519Valid(data, pubKey, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), data, sig)
}
