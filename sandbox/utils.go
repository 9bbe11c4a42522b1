package sandbox

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// ScSandboxUtils exposes the host's encoding, signature and hashing helpers.
type ScSandboxUtils struct {
	host Host
}

func (u ScSandboxUtils) call(funcNr int32, params []byte) ([]byte, error) {
	return ScSandbox{host: u.host}.call(funcNr, params)
}

func (u ScSandboxUtils) Bech32Decode(bech32 string) (wasmtypes.ScAddress, error) {
	res, err := u.call(FnUtilsBech32Decode, wasmtypes.StringToBytes(bech32))
	if err != nil {
		return wasmtypes.ScAddress{}, err
	}
	return wasmtypes.AddressFromBytes(res)
}

func (u ScSandboxUtils) Bech32Encode(addr wasmtypes.ScAddress) (string, error) {
	res, err := u.call(FnUtilsBech32Encode, wasmtypes.AddressToBytes(addr))
	if err != nil {
		return "", err
	}
	return wasmtypes.StringFromBytes(res)
}

func (u ScSandboxUtils) BlsAddressFromPubKey(
	pubKey []byte,
) (wasmtypes.ScAddress, error) {
	res, err := u.call(FnUtilsBlsAddress, pubKey)
	if err != nil {
		return wasmtypes.ScAddress{}, err
	}
	return wasmtypes.AddressFromBytes(res)
}

// BlsAggregateSignatures combines matching lists of public keys and
// signatures into one public key and one signature.
func (u ScSandboxUtils) BlsAggregateSignatures(
	pubKeys [][]byte,
	sigs [][]byte,
) ([]byte, []byte, error) {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.Uint32Encode(enc, uint32(len(pubKeys)))
	for _, pubKey := range pubKeys {
		enc.Bytes(pubKey)
	}
	wasmtypes.Uint32Encode(enc, uint32(len(sigs)))
	for _, sig := range sigs {
		enc.Bytes(sig)
	}
	res, err := u.call(FnUtilsBlsAggregate, enc.Buf())
	if err != nil {
		return nil, nil, err
	}

	dec := wasmtypes.NewWasmDecoder(res)
	pubKey := dec.Bytes()
	sig := dec.Bytes()
	if err := dec.Close(); err != nil {
		return nil, nil, errors.Wrap(err, "bls aggregate result")
	}
	return pubKey, sig, nil
}

func (u ScSandboxUtils) BlsValidSignature(data, pubKey, sig []byte) (bool, error) {
	return u.validSignature(FnUtilsBlsValid, data, pubKey, sig)
}

func (u ScSandboxUtils) Ed25519AddressFromPubKey(
	pubKey []byte,
) (wasmtypes.ScAddress, error) {
	res, err := u.call(FnUtilsEd25519Address, pubKey)
	if err != nil {
		return wasmtypes.ScAddress{}, err
	}
	return wasmtypes.AddressFromBytes(res)
}

func (u ScSandboxUtils) Ed25519ValidSignature(
	data []byte,
	pubKey []byte,
	sig []byte,
) (bool, error) {
	return u.validSignature(FnUtilsEd25519Valid, data, pubKey, sig)
}

func (u ScSandboxUtils) validSignature(
	funcNr int32,
	data []byte,
	pubKey []byte,
	sig []byte,
) (bool, error) {
	enc := wasmtypes.NewWasmEncoder()
	enc.Bytes(data).Bytes(pubKey).Bytes(sig)
	res, err := u.call(funcNr, enc.Buf())
	if err != nil {
		return false, err
	}
	return wasmtypes.BoolFromBytes(res)
}

func (u ScSandboxUtils) HashBlake2b(value []byte) (wasmtypes.ScHash, error) {
	res, err := u.call(FnUtilsHashBlake2b, value)
	if err != nil {
		return wasmtypes.ScHash{}, err
	}
	return wasmtypes.HashFromBytes(res)
}

// HashName returns the hname of a contract or function name.
func (u ScSandboxUtils) HashName(name string) (wasmtypes.ScHname, error) {
	res, err := u.call(FnUtilsHashName, wasmtypes.StringToBytes(name))
	if err != nil {
		return 0, err
	}
	return wasmtypes.HnameFromBytes(res)
}

func (u ScSandboxUtils) HashSha3(value []byte) (wasmtypes.ScHash, error) {
	res, err := u.call(FnUtilsHashSha3, value)
	if err != nil {
		return wasmtypes.ScHash{}, err
	}
	return wasmtypes.HashFromBytes(res)
}
