package wasmtypes

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	ScAgentIDNil      byte = 0
	ScAgentIDAddress  byte = 1
	ScAgentIDContract byte = 2
	ScAgentIDEthereum byte = 3

	nilAgentIDString = "-"
)

// ScAgentID is a principal that can own assets. It is a tagged union over the
// nil agent, an L1 address, a contract on a chain and an Ethereum address.
// The zero value is the nil agent.
type ScAgentID struct {
	kind    byte
	address ScAddress
	hname   ScHname
}

// NewScAgentID returns the agent id of contract hname on chainID.
func NewScAgentID(chainID ScChainID, hname ScHname) ScAgentID {
	return ScAgentID{
		kind:    ScAgentIDContract,
		address: chainID.Address(),
		hname:   hname,
	}
}

func NewScAgentIDFromAddress(address ScAddress) ScAgentID {
	if address.IsEthereum() {
		return ScAgentID{kind: ScAgentIDEthereum, address: address}
	}
	return ScAgentID{kind: ScAgentIDAddress, address: address}
}

func (o ScAgentID) Address() ScAddress {
	return o.address
}

func (o ScAgentID) Bytes() []byte {
	return AgentIDToBytes(o)
}

// ChainID returns the chain of a contract agent.
func (o ScAgentID) ChainID() (ScChainID, error) {
	if o.kind != ScAgentIDContract {
		return ScChainID{}, errors.Wrap(ErrInvalidAgentIDType, "chain id")
	}
	return ChainIDFromAddress(o.address)
}

func (o ScAgentID) Hname() ScHname {
	return o.hname
}

// IsAddress reports whether the agent is backed by an L1 or Ethereum address.
func (o ScAgentID) IsAddress() bool {
	return o.kind == ScAgentIDAddress || o.kind == ScAgentIDEthereum
}

func (o ScAgentID) IsNil() bool {
	return o.kind == ScAgentIDNil
}

func (o ScAgentID) Kind() byte {
	return o.kind
}

func (o ScAgentID) String() string {
	return AgentIDToString(o)
}

func AgentIDDecode(dec *WasmDecoder) ScAgentID {
	kind := dec.Byte()
	if dec.Err() != nil {
		return ScAgentID{}
	}
	switch kind {
	case ScAgentIDNil:
		return ScAgentID{}
	case ScAgentIDAddress:
		addr := AddressDecode(dec)
		if dec.Err() == nil && addr.IsEthereum() {
			dec.Fail(errors.Wrap(ErrInvalidAddressType, "agent id decode"))
		}
		return ScAgentID{kind: kind, address: addr}
	case ScAgentIDContract:
		chainID := ChainIDDecode(dec)
		hname := HnameDecode(dec)
		return NewScAgentID(chainID, hname)
	case ScAgentIDEthereum:
		addr := AddressDecode(dec)
		if dec.Err() == nil && !addr.IsEthereum() {
			dec.Fail(errors.Wrap(ErrInvalidAddressType, "agent id decode"))
		}
		return ScAgentID{kind: kind, address: addr}
	}
	dec.Fail(ErrInvalidAgentIDType)
	return ScAgentID{}
}

func AgentIDEncode(enc *WasmEncoder, value ScAgentID) {
	enc.Byte(value.kind)
	switch value.kind {
	case ScAgentIDAddress, ScAgentIDEthereum:
		AddressEncode(enc, value.address)
	case ScAgentIDContract:
		enc.FixedBytes(value.address.id[1:], ScChainIDLength)
		HnameEncode(enc, value.hname)
	}
}

func AgentIDFromBytes(buf []byte) (ScAgentID, error) {
	if len(buf) == 0 {
		return ScAgentID{}, nil
	}
	dec := NewWasmDecoder(buf)
	o := AgentIDDecode(dec)
	if err := dec.Close(); err != nil {
		if errors.Is(err, ErrInsufficientBytes) || errors.Is(err, ErrExtraBytes) {
			return ScAgentID{}, lengthError("AgentID")
		}
		return ScAgentID{}, errors.Wrap(err, "agent id from bytes")
	}
	return o, nil
}

func AgentIDToBytes(value ScAgentID) []byte {
	enc := NewWasmEncoder()
	AgentIDEncode(enc, value)
	return enc.Buf()
}

func AgentIDFromString(value string) (ScAgentID, error) {
	if value == nilAgentIDString {
		return ScAgentID{}, nil
	}

	hnameStr, chainStr, isContract := strings.Cut(value, "@")
	if !isContract {
		addr, err := AddressFromString(value)
		if err != nil {
			return ScAgentID{}, stringError("AgentID", err)
		}
		return NewScAgentIDFromAddress(addr), nil
	}

	hname, err := HnameFromString(hnameStr)
	if err != nil {
		return ScAgentID{}, stringError("AgentID", err)
	}
	chainID, err := ChainIDFromString(chainStr)
	if err != nil {
		return ScAgentID{}, stringError("AgentID", err)
	}
	return NewScAgentID(chainID, hname), nil
}

func AgentIDToString(value ScAgentID) string {
	switch value.kind {
	case ScAgentIDAddress, ScAgentIDEthereum:
		return value.address.String()
	case ScAgentIDContract:
		return value.hname.String() + "@" + value.address.String()
	}
	return nilAgentIDString
}
