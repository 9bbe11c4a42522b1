package assets

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// ScBalances is a read-only view of an asset set as returned by the host.
type ScBalances struct {
	assets *ScAssets
}

func NewScBalances(buf []byte) (ScBalances, error) {
	a, err := NewScAssets(buf)
	if err != nil {
		return ScBalances{}, err
	}
	return ScBalances{assets: a}, nil
}

func (b ScBalances) Balance(tokenID wasmtypes.ScTokenID) wasmtypes.ScBigInt {
	if b.assets == nil {
		return wasmtypes.ScBigInt{}
	}
	return b.assets.NativeTokens[tokenID]
}

func (b ScBalances) BaseTokens() uint64 {
	if b.assets == nil {
		return 0
	}
	return b.assets.BaseTokens
}

func (b ScBalances) Bytes() []byte {
	return b.assets.Bytes()
}

func (b ScBalances) HasNft(nftID wasmtypes.ScNftID) bool {
	if b.assets == nil {
		return false
	}
	_, ok := b.assets.Nfts[nftID]
	return ok
}

func (b ScBalances) IsEmpty() bool {
	return b.assets.IsEmpty()
}

func (b ScBalances) NftIDs() []wasmtypes.ScNftID {
	return b.assets.NftIDs()
}

func (b ScBalances) String() string {
	return b.assets.String()
}

func (b ScBalances) TokenIDs() []wasmtypes.ScTokenID {
	return b.assets.TokenIDs()
}
