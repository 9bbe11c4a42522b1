package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/config"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/solo"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestEncodeDecode(t *testing.T) {
	out, err := run(t, "encode", "uint64", "300")
	require.NoError(t, err)
	assert.Equal(t, "0x2c01000000000000", out)

	out, err = run(t, "decode", "uint64", "0x2c01000000000000")
	require.NoError(t, err)
	assert.Equal(t, "300", out)

	out, err = run(t, "encode", "Bool", "1")
	require.NoError(t, err)
	assert.Equal(t, "0x01", out)

	out, err = run(t, "decode", "hname", "04030201")
	require.NoError(t, err)
	assert.Equal(t, "01020304", out)
}

func TestEncodeDecodeBase58(t *testing.T) {
	out, err := run(t, "encode", "--base58", "string", "hello")
	require.NoError(t, err)
	assert.Equal(t, base58.Encode([]byte("hello")), out)

	out, err = run(t, "decode", "--base58", "string", out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestCodecErrors(t *testing.T) {
	_, err := run(t, "encode", "float", "1.5")
	assert.ErrorIs(t, err, errUnknownType)

	_, err = run(t, "decode", "uint32", "0x0102")
	assert.ErrorContains(t, err, "invalid Uint32 length")

	_, err = run(t, "decode", "uint32", "xyz")
	assert.ErrorContains(t, err, "hex decode")

	_, err = run(t, "encode", "uint64")
	assert.Error(t, err)
}

func TestHname(t *testing.T) {
	out, err := run(t, "hname", "init", "increment")
	require.NoError(t, err)
	assert.Equal(
		t,
		solo.HashName("init").String()+" init\n"+
			solo.HashName("increment").String()+" increment",
		out,
	)
}

func TestAssetsDecode(t *testing.T) {
	tokenID := wasmtypes.TokenIDFromRaw(
		bytes.Repeat([]byte{0x07}, wasmtypes.ScTokenIDLength),
	)
	set := assets.NewEmptyScAssets()
	set.BaseTokens = 1_500_000
	set.NativeTokens[tokenID] = wasmtypes.NewScBigInt(25)

	out, err := run(t, "assets", "decode", "--decimals", "6", wasmtypes.HexEncode(set.Bytes()))
	require.NoError(t, err)
	assert.Equal(
		t,
		"base tokens: 1.500000\ntoken "+tokenID.String()+": 0.000025",
		out,
	)

	out, err = run(t, "assets", "decode", "0x00")
	require.NoError(t, err)
	assert.Equal(t, "base tokens: 0", out)

	_, err = run(t, "assets", "decode", "0x7f")
	assert.ErrorIs(t, err, assets.ErrInvalidAssets)
}

func TestState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.SaveConfig(dir, &config.Config{
		DB: &config.DBConfig{Path: filepath.Join(dir, "store")},
	}))

	_, err := run(t, "--config", dir, "state", "set", "--text", "counter", "0x07")
	require.NoError(t, err)
	_, err = run(t, "--config", dir, "state", "set", "0x6b01", "0xaabb")
	require.NoError(t, err)

	out, err := run(t, "--config", dir, "state", "get", "--text", "counter")
	require.NoError(t, err)
	assert.Equal(t, "0x07", out)

	out, err = run(t, "--config", dir, "state", "dump")
	require.NoError(t, err)
	assert.Equal(t, "0x636f756e746572 0x07\n0x6b01 0xaabb", out)

	out, err = run(t, "--config", dir, "state", "dump", "--text", "k")
	require.NoError(t, err)
	assert.Equal(t, "0x6b01 0xaabb", out)

	_, err = run(t, "--config", dir, "state", "delete", "0x6b01")
	require.NoError(t, err)
	_, err = run(t, "--config", dir, "state", "get", "0x6b01")
	assert.ErrorContains(t, err, "not found")
}
