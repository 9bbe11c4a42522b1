// Package wasmrequests holds the request structures a contract hands to the
// host for calls, deployments, posts and transfers. Every structure uses the
// streaming codec.
package wasmrequests

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

type CallRequest struct {
	Contract  wasmtypes.ScHname
	Function  wasmtypes.ScHname
	Params    []byte
	Allowance []byte
}

func NewCallRequestFromBytes(buf []byte) (*CallRequest, error) {
	dec := wasmtypes.NewWasmDecoder(buf)
	data := &CallRequest{}
	data.Contract = wasmtypes.HnameDecode(dec)
	data.Function = wasmtypes.HnameDecode(dec)
	data.Params = wasmtypes.BytesDecode(dec)
	data.Allowance = wasmtypes.BytesDecode(dec)
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "call request from bytes")
	}
	return data, nil
}

func (o *CallRequest) Bytes() []byte {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.HnameEncode(enc, o.Contract)
	wasmtypes.HnameEncode(enc, o.Function)
	wasmtypes.BytesEncode(enc, o.Params)
	wasmtypes.BytesEncode(enc, o.Allowance)
	return enc.Buf()
}

type DeployRequest struct {
	ProgHash    wasmtypes.ScHash
	Name        string
	Description string
	Params      []byte
}

func NewDeployRequestFromBytes(buf []byte) (*DeployRequest, error) {
	dec := wasmtypes.NewWasmDecoder(buf)
	data := &DeployRequest{}
	data.ProgHash = wasmtypes.HashDecode(dec)
	data.Name = wasmtypes.StringDecode(dec)
	data.Description = wasmtypes.StringDecode(dec)
	data.Params = wasmtypes.BytesDecode(dec)
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "deploy request from bytes")
	}
	return data, nil
}

// Bytes fails only when Name or Description exceed the string length limit.
func (o *DeployRequest) Bytes() ([]byte, error) {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.HashEncode(enc, o.ProgHash)
	wasmtypes.StringEncode(enc, o.Name)
	wasmtypes.StringEncode(enc, o.Description)
	wasmtypes.BytesEncode(enc, o.Params)
	if err := enc.Err(); err != nil {
		return nil, errors.Wrap(err, "deploy request bytes")
	}
	return enc.Buf(), nil
}

type PostRequest struct {
	ChainID   wasmtypes.ScChainID
	Contract  wasmtypes.ScHname
	Function  wasmtypes.ScHname
	Params    []byte
	Allowance []byte
	Transfer  []byte
	// seconds
	Delay uint32
}

func NewPostRequestFromBytes(buf []byte) (*PostRequest, error) {
	dec := wasmtypes.NewWasmDecoder(buf)
	data := &PostRequest{}
	data.ChainID = wasmtypes.ChainIDDecode(dec)
	data.Contract = wasmtypes.HnameDecode(dec)
	data.Function = wasmtypes.HnameDecode(dec)
	data.Params = wasmtypes.BytesDecode(dec)
	data.Allowance = wasmtypes.BytesDecode(dec)
	data.Transfer = wasmtypes.BytesDecode(dec)
	data.Delay = wasmtypes.Uint32Decode(dec)
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "post request from bytes")
	}
	return data, nil
}

func (o *PostRequest) Bytes() []byte {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.ChainIDEncode(enc, o.ChainID)
	wasmtypes.HnameEncode(enc, o.Contract)
	wasmtypes.HnameEncode(enc, o.Function)
	wasmtypes.BytesEncode(enc, o.Params)
	wasmtypes.BytesEncode(enc, o.Allowance)
	wasmtypes.BytesEncode(enc, o.Transfer)
	wasmtypes.Uint32Encode(enc, o.Delay)
	return enc.Buf()
}

type SendRequest struct {
	Address  wasmtypes.ScAddress
	Transfer []byte
}

func NewSendRequestFromBytes(buf []byte) (*SendRequest, error) {
	dec := wasmtypes.NewWasmDecoder(buf)
	data := &SendRequest{}
	data.Address = wasmtypes.AddressDecode(dec)
	data.Transfer = wasmtypes.BytesDecode(dec)
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "send request from bytes")
	}
	return data, nil
}

func (o *SendRequest) Bytes() []byte {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.AddressEncode(enc, o.Address)
	wasmtypes.BytesEncode(enc, o.Transfer)
	return enc.Buf()
}

type TransferRequest struct {
	AgentID  wasmtypes.ScAgentID
	Create   bool
	Transfer []byte
}

func NewTransferRequestFromBytes(buf []byte) (*TransferRequest, error) {
	dec := wasmtypes.NewWasmDecoder(buf)
	data := &TransferRequest{}
	data.AgentID = wasmtypes.AgentIDDecode(dec)
	data.Create = wasmtypes.BoolDecode(dec)
	data.Transfer = wasmtypes.BytesDecode(dec)
	if err := dec.Close(); err != nil {
		return nil, errors.Wrap(err, "transfer request from bytes")
	}
	return data, nil
}

func (o *TransferRequest) Bytes() []byte {
	enc := wasmtypes.NewWasmEncoder()
	wasmtypes.AgentIDEncode(enc, o.AgentID)
	wasmtypes.BoolEncode(enc, o.Create)
	wasmtypes.BytesEncode(enc, o.Transfer)
	return enc.Buf()
}
