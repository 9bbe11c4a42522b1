package assets_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

func tokenID(b byte) wasmtypes.ScTokenID {
	return wasmtypes.TokenIDFromRaw(bytes.Repeat([]byte{b}, wasmtypes.ScTokenIDLength))
}

func nftID(b byte) wasmtypes.ScNftID {
	return wasmtypes.NftIDFromRaw(bytes.Repeat([]byte{b}, wasmtypes.ScNftIDLength))
}

func TestEmptyAssetsEncoding(t *testing.T) {
	assert.Equal(t, []byte{0x00}, (&assets.ScAssets{}).Bytes())
	assert.Equal(t, []byte{0x00}, assets.NewEmptyScAssets().Bytes())

	var nilAssets *assets.ScAssets
	assert.Equal(t, []byte{0x00}, nilAssets.Bytes())
	assert.True(t, nilAssets.IsEmpty())

	for _, buf := range [][]byte{nil, {0x00}} {
		a, err := assets.NewScAssets(buf)
		require.NoError(t, err)
		assert.True(t, a.IsEmpty())
	}
}

func TestAssetsZeroAmountsNormalized(t *testing.T) {
	a := &assets.ScAssets{
		BaseTokens: 1000,
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
			tokenID(0xaa): wasmtypes.NewScBigInt(5),
			tokenID(0xbb): wasmtypes.NewScBigInt(0),
		},
	}

	decoded, err := assets.NewScAssets(a.Bytes())
	require.NoError(t, err)
	assert.False(t, decoded.IsEmpty())
	assert.Equal(t, uint64(1000), decoded.BaseTokens)
	assert.Equal(t, map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
		tokenID(0xaa): wasmtypes.NewScBigInt(5),
	}, decoded.NativeTokens)
	assert.Empty(t, decoded.Nfts)

	onlyZero := &assets.ScAssets{
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
			tokenID(0x01): {},
		},
	}
	assert.True(t, onlyZero.IsEmpty())
	assert.Equal(t, []byte{0x00}, onlyZero.Bytes())
}

func TestAssetsEncodingLayout(t *testing.T) {
	a := &assets.ScAssets{
		BaseTokens: 300,
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
			tokenID(0x02): wasmtypes.NewScBigInt(1),
		},
		Nfts: map[wasmtypes.ScNftID]struct{}{nftID(0x03): {}},
	}

	expected := []byte{0xe0, 0xac, 0x02, 0x01}
	expected = append(expected, tokenID(0x02).Bytes()...)
	expected = append(expected, 0x01, 0x01)
	expected = append(expected, 0x01)
	expected = append(expected, nftID(0x03).Bytes()...)
	assert.Equal(t, expected, a.Bytes())

	onlyNft := &assets.ScAssets{Nfts: map[wasmtypes.ScNftID]struct{}{nftID(0x03): {}}}
	assert.Equal(t, byte(0x20), onlyNft.Bytes()[0])
}

func TestAssetsSortedOrder(t *testing.T) {
	first := assets.NewEmptyScAssets()
	second := assets.NewEmptyScAssets()
	ids := []byte{0x30, 0x10, 0x20}
	for i, b := range ids {
		first.NativeTokens[tokenID(b)] = wasmtypes.NewScBigInt(uint64(b))
		first.Nfts[nftID(b)] = struct{}{}
		rb := ids[len(ids)-1-i]
		second.NativeTokens[tokenID(rb)] = wasmtypes.NewScBigInt(uint64(rb))
		second.Nfts[nftID(rb)] = struct{}{}
	}

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, []wasmtypes.ScTokenID{
		tokenID(0x10), tokenID(0x20), tokenID(0x30),
	}, first.TokenIDs())
	assert.Equal(t, []wasmtypes.ScNftID{
		nftID(0x10), nftID(0x20), nftID(0x30),
	}, first.NftIDs())

	decoded, err := assets.NewScAssets(first.Bytes())
	require.NoError(t, err)
	assert.Equal(t, first.TokenIDs(), decoded.TokenIDs())
	assert.Len(t, decoded.Nfts, 3)
}

func TestAssetsStrictDecode(t *testing.T) {
	token := tokenID(0x05).Bytes()
	tests := []struct {
		name string
		buf  []byte
	}{
		{"unknown flag", []byte{0x01}},
		{"zero base tokens", []byte{0x80, 0x00}},
		{"truncated base tokens", []byte{0x80, 0x80}},
		{"empty token section", []byte{0x40, 0x00}},
		{"empty nft section", []byte{0x20, 0x00}},
		{"zero token amount", append(append([]byte{0x40, 0x01}, token...), 0x00)},
		{"trailing bytes", []byte{0x80, 0x01, 0x00}},
		{"missing nft", []byte{0x20, 0x01}},
		{
			"unsorted token ids",
			bytes.Join([][]byte{
				{0x40, 0x02},
				tokenID(0x06).Bytes(), {0x01, 0x01},
				tokenID(0x05).Bytes(), {0x01, 0x01},
			}, nil),
		},
		{
			"duplicate nft ids",
			bytes.Join([][]byte{
				{0x20, 0x02}, nftID(0x01).Bytes(), nftID(0x01).Bytes(),
			}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assets.NewScAssets(tt.buf)
			assert.ErrorIs(t, err, assets.ErrInvalidAssets)
		})
	}
}

func TestAssetsAddAndSpend(t *testing.T) {
	a := assets.NewEmptyScAssets()
	require.NoError(t, a.Add(&assets.ScAssets{
		BaseTokens: 10,
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
			tokenID(1): wasmtypes.NewScBigInt(7),
		},
		Nfts: map[wasmtypes.ScNftID]struct{}{nftID(1): {}},
	}))
	require.NoError(t, a.Add(
		assets.NewScTransferTokens(tokenID(1), wasmtypes.NewScBigInt(3)).Assets(),
	))

	assert.Equal(t, uint64(10), a.BaseTokens)
	assert.Equal(t, "10", a.NativeTokens[tokenID(1)].String())

	tooMuch := assets.NewScTransferBaseTokens(11).Assets()
	assert.ErrorIs(t, a.Spend(tooMuch), assets.ErrInsufficientFunds)
	assert.Equal(t, uint64(10), a.BaseTokens, "failed spend leaves balance")

	missingNft := assets.NewScTransferNft(nftID(2)).Assets()
	assert.ErrorIs(t, a.Spend(missingNft), assets.ErrInsufficientFunds)

	spend := assets.NewScTransferTokens(tokenID(1), wasmtypes.NewScBigInt(10))
	spend.SetBaseTokens(4)
	spend.AddNft(nftID(1))
	require.NoError(t, a.Spend(spend.Assets()))
	assert.Equal(t, uint64(6), a.BaseTokens)
	assert.Empty(t, a.NativeTokens)
	assert.Empty(t, a.Nfts)
}

func TestAssetsAddOverflow(t *testing.T) {
	a := &assets.ScAssets{BaseTokens: math.MaxUint64}
	err := a.Add(assets.NewScTransferBaseTokens(2).Assets())
	assert.ErrorIs(t, err, wasmtypes.ErrIntegerOverflow)
	assert.Equal(t, uint64(math.MaxUint64), a.BaseTokens)

	require.NoError(t, a.Add(assets.NewEmptyScAssets()))
	assert.Equal(t, uint64(math.MaxUint64), a.BaseTokens)
}

func TestAssetsDecodeKeepsCause(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		cause error
	}{
		{"truncated base tokens", []byte{0x80, 0x80}, wasmtypes.ErrInsufficientBytes},
		{"non-canonical base tokens", []byte{0x80, 0x81, 0x00}, wasmtypes.ErrNonCanonical},
		{"trailing bytes", []byte{0x80, 0x01, 0x00}, wasmtypes.ErrExtraBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assets.NewScAssets(tt.buf)
			assert.ErrorIs(t, err, assets.ErrInvalidAssets)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestBalancesAndTransfer(t *testing.T) {
	src := &assets.ScAssets{
		BaseTokens: 42,
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{
			tokenID(9): wasmtypes.NewScBigInt(100),
		},
		Nfts: map[wasmtypes.ScNftID]struct{}{nftID(9): {}},
	}

	balances, err := assets.NewScBalances(src.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), balances.BaseTokens())
	assert.Equal(t, "100", balances.Balance(tokenID(9)).String())
	assert.True(t, balances.Balance(tokenID(8)).IsZero())
	assert.True(t, balances.HasNft(nftID(9)))
	assert.Equal(t, src.Bytes(), balances.Bytes())

	transfer := assets.NewScTransferFromBalances(balances)
	assert.Equal(t, src.Bytes(), transfer.Bytes())

	// the copy is independent of the view
	transfer.SetBaseTokens(1)
	assert.Equal(t, uint64(42), balances.BaseTokens())

	zero := assets.NewScTransfer()
	zero.Set(tokenID(1), wasmtypes.NewScBigInt(0))
	assert.True(t, zero.IsEmpty())
	assert.Equal(t, []byte{0x00}, zero.Bytes())

	var nilTransfer *assets.ScTransfer
	assert.True(t, nilTransfer.IsEmpty())
	assert.Equal(t, []byte{0x00}, nilTransfer.Bytes())

	assert.True(t, assets.ScBalances{}.IsEmpty())
	assert.Equal(t, []byte{0x00}, assets.ScBalances{}.Bytes())
}
