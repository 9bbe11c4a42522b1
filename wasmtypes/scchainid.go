package wasmtypes

import "github.com/pkg/errors"

const ScChainIDLength = 32

// ScChainID is the id of the alias output that anchors a chain.
type ScChainID struct {
	id [ScChainIDLength]byte
}

// Address returns the alias address that backs the chain.
func (o ScChainID) Address() ScAddress {
	buf := make([]byte, 0, ScAddressLength)
	buf = append(buf, ScAddressAlias)
	return addressFromRaw(append(buf, o.id[:]...))
}

func (o ScChainID) Bytes() []byte {
	return ChainIDToBytes(o)
}

func (o ScChainID) String() string {
	return ChainIDToString(o)
}

// ChainIDFromAddress requires an alias address.
func ChainIDFromAddress(addr ScAddress) (ScChainID, error) {
	if addr.Kind() != ScAddressAlias {
		return ScChainID{}, errors.Wrap(
			ErrInvalidAddressType,
			"chain id from address",
		)
	}
	return chainIDFromRaw(addr.id[1:]), nil
}

func ChainIDDecode(dec *WasmDecoder) ScChainID {
	return chainIDFromRaw(dec.FixedBytes(ScChainIDLength))
}

func ChainIDEncode(enc *WasmEncoder, value ScChainID) {
	enc.FixedBytes(value.id[:], ScChainIDLength)
}

func ChainIDFromBytes(buf []byte) (ScChainID, error) {
	if len(buf) == 0 {
		return ScChainID{}, nil
	}
	if len(buf) != ScChainIDLength {
		return ScChainID{}, lengthError("ChainID")
	}
	return chainIDFromRaw(buf), nil
}

func ChainIDToBytes(value ScChainID) []byte {
	return append([]byte{}, value.id[:]...)
}

func ChainIDFromString(value string) (ScChainID, error) {
	addr, _, err := AddressFromBech32(value)
	if err != nil {
		return ScChainID{}, stringError("ChainID", err)
	}
	chainID, err := ChainIDFromAddress(addr)
	if err != nil {
		return ScChainID{}, stringError("ChainID", err)
	}
	return chainID, nil
}

func ChainIDToString(value ScChainID) string {
	return value.Address().String()
}

func chainIDFromRaw(buf []byte) ScChainID {
	o := ScChainID{}
	copy(o.id[:], buf)
	return o
}
