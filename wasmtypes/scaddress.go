package wasmtypes

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"
)

const (
	ScAddressAlias    byte = 8
	ScAddressEd25519  byte = 0
	ScAddressNFT      byte = 16
	ScAddressEth      byte = 32
	ScAddressLength        = 33
	ScAddressEthLength     = 21

	// DefaultBech32Prefix is the human readable part used when an address is
	// rendered without an explicit network prefix.
	DefaultBech32Prefix = "smr"
)

// ScAddress is an L1 address (Ed25519, Alias or NFT backed) or an Ethereum
// address. The leading type byte decides both the length and the string form.
type ScAddress struct {
	id [ScAddressLength]byte
}

func (o ScAddress) AsAgentID() ScAgentID {
	return NewScAgentIDFromAddress(o)
}

func (o ScAddress) Bytes() []byte {
	return AddressToBytes(o)
}

func (o ScAddress) IsEthereum() bool {
	return o.id[0] == ScAddressEth
}

func (o ScAddress) Kind() byte {
	return o.id[0]
}

func (o ScAddress) String() string {
	return AddressToString(o)
}

func addressLength(kind byte) (int, error) {
	switch kind {
	case ScAddressAlias, ScAddressEd25519, ScAddressNFT:
		return ScAddressLength, nil
	case ScAddressEth:
		return ScAddressEthLength, nil
	}
	return 0, ErrInvalidAddressType
}

func AddressDecode(dec *WasmDecoder) ScAddress {
	length, err := addressLength(dec.Peek())
	if dec.Err() != nil {
		return ScAddress{}
	}
	if err != nil {
		dec.Fail(err)
		return ScAddress{}
	}
	buf := dec.FixedBytes(uint32(length))
	if dec.Err() != nil {
		return ScAddress{}
	}
	return addressFromRaw(buf)
}

func AddressEncode(enc *WasmEncoder, value ScAddress) {
	buf := AddressToBytes(value)
	enc.FixedBytes(buf, uint32(len(buf)))
}

func AddressFromBytes(buf []byte) (ScAddress, error) {
	if len(buf) == 0 {
		return ScAddress{}, nil
	}
	length, err := addressLength(buf[0])
	if err != nil {
		return ScAddress{}, err
	}
	if len(buf) != length {
		return ScAddress{}, lengthError("Address")
	}
	return addressFromRaw(buf), nil
}

func AddressToBytes(value ScAddress) []byte {
	if value.IsEthereum() {
		return append([]byte{}, value.id[:ScAddressEthLength]...)
	}
	return append([]byte{}, value.id[:]...)
}

// AddressFromString parses either a 0x prefixed Ethereum address or a bech32
// L1 address with any network prefix.
func AddressFromString(value string) (ScAddress, error) {
	if has0xPrefix(value) {
		buf, err := HexDecode(value)
		if err != nil {
			return ScAddress{}, stringError("Address", err)
		}
		if len(buf) != ScAddressEthLength-1 {
			return ScAddress{}, stringError("Address", lengthError("Address"))
		}
		return addressFromRaw(append([]byte{ScAddressEth}, buf...)), nil
	}

	addr, _, err := AddressFromBech32(value)
	if err != nil {
		return ScAddress{}, stringError("Address", err)
	}
	return addr, nil
}

func AddressToString(value ScAddress) string {
	if value.IsEthereum() {
		return HexEncode(value.id[1:ScAddressEthLength])
	}
	return AddressToBech32(value, DefaultBech32Prefix)
}

// AddressFromBech32 decodes an L1 address and returns the human readable part
// it was encoded with.
func AddressFromBech32(value string) (ScAddress, string, error) {
	hrp, buf, err := bech32.DecodeToBase256(value)
	if err != nil {
		return ScAddress{}, "", errors.Wrap(err, "address from bech32")
	}
	if len(buf) == 0 || buf[0] == ScAddressEth {
		return ScAddress{}, "", errors.Wrap(
			ErrInvalidAddressType,
			"address from bech32",
		)
	}
	addr, err := AddressFromBytes(buf)
	if err != nil {
		return ScAddress{}, "", errors.Wrap(err, "address from bech32")
	}
	return addr, hrp, nil
}

// AddressToBech32 renders an L1 address with the given human readable part.
// Ethereum addresses have no bech32 form and fall back to their hex form.
func AddressToBech32(value ScAddress, hrp string) string {
	if value.IsEthereum() {
		return HexEncode(value.id[1:ScAddressEthLength])
	}
	s, err := bech32.EncodeFromBase256(hrp, value.id[:])
	if err != nil {
		// only an invalid hrp can get here
		return HexEncode(value.id[:])
	}
	return s
}

func addressFromRaw(buf []byte) ScAddress {
	o := ScAddress{}
	copy(o.id[:], buf)
	return o
}
