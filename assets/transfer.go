package assets

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// ScTransfer describes tokens and NFTs to move. It shares the ScAssets
// encoding but is built by the caller for a single request.
type ScTransfer struct {
	assets *ScAssets
}

func NewScTransfer() *ScTransfer {
	return &ScTransfer{assets: NewEmptyScAssets()}
}

func NewScTransferBaseTokens(amount uint64) *ScTransfer {
	t := NewScTransfer()
	t.assets.BaseTokens = amount
	return t
}

func NewScTransferTokens(
	tokenID wasmtypes.ScTokenID,
	amount wasmtypes.ScBigInt,
) *ScTransfer {
	t := NewScTransfer()
	t.Set(tokenID, amount)
	return t
}

func NewScTransferNft(nftID wasmtypes.ScNftID) *ScTransfer {
	t := NewScTransfer()
	t.AddNft(nftID)
	return t
}

// NewScTransferFromBalances copies every balance, for example to pass the
// full allowance on.
func NewScTransferFromBalances(balances ScBalances) *ScTransfer {
	return &ScTransfer{assets: balances.assets.Clone()}
}

func (t *ScTransfer) AddNft(nftID wasmtypes.ScNftID) {
	t.assets.Nfts[nftID] = struct{}{}
}

// Assets returns a copy of the transfer contents.
func (t *ScTransfer) Assets() *ScAssets {
	if t == nil {
		return NewEmptyScAssets()
	}
	return t.assets.Clone()
}

func (t *ScTransfer) Bytes() []byte {
	if t == nil {
		return []byte{0x00}
	}
	return t.assets.Bytes()
}

func (t *ScTransfer) IsEmpty() bool {
	return t == nil || t.assets.IsEmpty()
}

// Set records amount for tokenID. A zero amount is kept in the transfer but
// never encoded.
func (t *ScTransfer) Set(tokenID wasmtypes.ScTokenID, amount wasmtypes.ScBigInt) {
	t.assets.NativeTokens[tokenID] = amount
}

func (t *ScTransfer) SetBaseTokens(amount uint64) {
	t.assets.BaseTokens = amount
}
