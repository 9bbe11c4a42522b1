package wasmrequests_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

func TestCallRequestLayout(t *testing.T) {
	req := &wasmrequests.CallRequest{
		Contract:  0x01020304,
		Function:  0x0a0b0c0d,
		Params:    []byte{0xaa},
		Allowance: []byte{0x00},
	}

	buf := req.Bytes()
	assert.Equal(t, []byte{
		0x04, 0x03, 0x02, 0x01,
		0x0d, 0x0c, 0x0b, 0x0a,
		0x01, 0xaa,
		0x01, 0x00,
	}, buf)

	decoded, err := wasmrequests.NewCallRequestFromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)

	_, err = wasmrequests.NewCallRequestFromBytes(append(buf, 0x00))
	assert.ErrorIs(t, err, wasmtypes.ErrExtraBytes)

	_, err = wasmrequests.NewCallRequestFromBytes(buf[:9])
	assert.ErrorIs(t, err, wasmtypes.ErrInsufficientBytes)
}

func TestDeployRequest(t *testing.T) {
	req := &wasmrequests.DeployRequest{
		ProgHash:    wasmtypes.HashFromRaw(bytes.Repeat([]byte{0x11}, 32)),
		Name:        "counter",
		Description: "counts things",
		Params:      []byte{},
	}

	buf, err := req.Bytes()
	require.NoError(t, err)
	decoded, err := wasmrequests.NewDeployRequestFromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)

	req.Description = strings.Repeat("d", wasmtypes.ScStringMaxLength+1)
	_, err = req.Bytes()
	assert.ErrorIs(t, err, wasmtypes.ErrStringTooLong)
}

func TestPostRequest(t *testing.T) {
	chainID, err := wasmtypes.ChainIDFromBytes(bytes.Repeat([]byte{0x22}, 32))
	require.NoError(t, err)

	req := &wasmrequests.PostRequest{
		ChainID:   chainID,
		Contract:  1,
		Function:  2,
		Params:    []byte{0x01, 0x02},
		Allowance: []byte{0x00},
		Transfer:  []byte{0x80, 0x01},
		Delay:     300,
	}

	buf := req.Bytes()
	// delay is a trailing vlu
	assert.Equal(t, []byte{0xac, 0x02}, buf[len(buf)-2:])

	decoded, err := wasmrequests.NewPostRequestFromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}

func TestSendAndTransferRequests(t *testing.T) {
	addrBuf := append([]byte{wasmtypes.ScAddressEd25519}, bytes.Repeat([]byte{0x33}, 32)...)
	addr, err := wasmtypes.AddressFromBytes(addrBuf)
	require.NoError(t, err)

	send := &wasmrequests.SendRequest{Address: addr, Transfer: []byte{0x80, 0x05}}
	decodedSend, err := wasmrequests.NewSendRequestFromBytes(send.Bytes())
	require.NoError(t, err)
	assert.Equal(t, send, decodedSend)

	transfer := &wasmrequests.TransferRequest{
		AgentID:  addr.AsAgentID(),
		Create:   true,
		Transfer: []byte{0x80, 0x05},
	}
	decodedTransfer, err := wasmrequests.NewTransferRequestFromBytes(transfer.Bytes())
	require.NoError(t, err)
	assert.Equal(t, transfer, decodedTransfer)

	buf := transfer.Bytes()
	buf[1+wasmtypes.ScAddressLength] = 0x02
	_, err = wasmrequests.NewTransferRequestFromBytes(buf)
	assert.ErrorIs(t, err, wasmtypes.ErrInvalidBool)
}
