package assets

import (
	"bytes"
	"fmt"
	"maps"
	"math/bits"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

var (
	ErrInvalidAssets     = errors.New("invalid assets")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// decodeError is a malformed assets buffer. It matches ErrInvalidAssets and
// keeps the decoder error as its cause.
type decodeError struct {
	cause error
}

func (e *decodeError) Error() string {
	return ErrInvalidAssets.Error() + ": " + e.cause.Error()
}

func (e *decodeError) Is(target error) bool {
	return target == ErrInvalidAssets
}

func (e *decodeError) Unwrap() error {
	return e.cause
}

func (e *decodeError) Cause() error {
	return e.cause
}

const (
	hasBaseTokens   byte = 0x80
	hasNativeTokens byte = 0x40
	hasNFTs         byte = 0x20

	knownFlags = hasBaseTokens | hasNativeTokens | hasNFTs
)

// ScAssets is a set of base tokens, native token amounts and NFTs. Its byte
// form is canonical: ids are sorted and zero amounts are left out, so equal
// asset sets always encode to equal bytes.
type ScAssets struct {
	BaseTokens   uint64
	NativeTokens map[wasmtypes.ScTokenID]wasmtypes.ScBigInt
	Nfts         map[wasmtypes.ScNftID]struct{}
}

func NewEmptyScAssets() *ScAssets {
	return &ScAssets{
		NativeTokens: map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{},
		Nfts:         map[wasmtypes.ScNftID]struct{}{},
	}
}

// NewScAssets decodes buf. An empty buffer holds no assets. Any buffer that
// is not the canonical encoding of its contents is rejected.
func NewScAssets(buf []byte) (*ScAssets, error) {
	a := NewEmptyScAssets()
	if len(buf) == 0 {
		return a, nil
	}

	dec := wasmtypes.NewWasmDecoder(buf)
	flags := dec.Byte()
	if flags&^knownFlags != 0 {
		return nil, errors.Wrapf(ErrInvalidAssets, "unknown flags %02x", flags)
	}

	if flags&hasBaseTokens != 0 {
		a.BaseTokens = dec.VluDecode(64)
		if dec.Err() == nil && a.BaseTokens == 0 {
			return nil, errors.Wrap(ErrInvalidAssets, "zero base tokens")
		}
	}

	if flags&hasNativeTokens != 0 {
		if err := a.decodeTokens(dec); err != nil {
			return nil, err
		}
	}

	if flags&hasNFTs != 0 {
		if err := a.decodeNfts(dec); err != nil {
			return nil, err
		}
	}

	if err := dec.Close(); err != nil {
		return nil, &decodeError{cause: err}
	}
	return a, nil
}

func (a *ScAssets) decodeTokens(dec *wasmtypes.WasmDecoder) error {
	size := dec.VluDecode(32)
	if dec.Err() == nil && size == 0 {
		return errors.Wrap(ErrInvalidAssets, "empty token section")
	}

	var prev []byte
	for i := uint64(0); i < size && dec.Err() == nil; i++ {
		tokenID := wasmtypes.TokenIDDecode(dec)
		amount := wasmtypes.BigIntDecode(dec)
		if dec.Err() != nil {
			break
		}
		if amount.IsZero() {
			return errors.Wrap(ErrInvalidAssets, "zero token amount")
		}
		cur := tokenID.Bytes()
		if prev != nil && bytes.Compare(prev, cur) >= 0 {
			return errors.Wrap(ErrInvalidAssets, "unsorted token ids")
		}
		prev = cur
		a.NativeTokens[tokenID] = amount
	}
	return nil
}

func (a *ScAssets) decodeNfts(dec *wasmtypes.WasmDecoder) error {
	size := dec.VluDecode(32)
	if dec.Err() == nil && size == 0 {
		return errors.Wrap(ErrInvalidAssets, "empty nft section")
	}

	var prev []byte
	for i := uint64(0); i < size && dec.Err() == nil; i++ {
		nftID := wasmtypes.NftIDDecode(dec)
		if dec.Err() != nil {
			break
		}
		cur := nftID.Bytes()
		if prev != nil && bytes.Compare(prev, cur) >= 0 {
			return errors.Wrap(ErrInvalidAssets, "unsorted nft ids")
		}
		prev = cur
		a.Nfts[nftID] = struct{}{}
	}
	return nil
}

// Add merges b into a. A base token sum that does not fit in 64 bits fails
// with wasmtypes.ErrIntegerOverflow and leaves a unchanged.
func (a *ScAssets) Add(b *ScAssets) error {
	a.ensureMaps()
	if b == nil {
		return nil
	}
	sum, carry := bits.Add64(a.BaseTokens, b.BaseTokens, 0)
	if carry != 0 {
		return errors.Wrap(wasmtypes.ErrIntegerOverflow, "add base tokens")
	}
	a.BaseTokens = sum
	for tokenID, amount := range b.NativeTokens {
		a.NativeTokens[tokenID] = a.NativeTokens[tokenID].Add(amount)
	}
	for nftID := range b.Nfts {
		a.Nfts[nftID] = struct{}{}
	}
	return nil
}

func (a *ScAssets) Balances() ScBalances {
	return ScBalances{assets: a}
}

func (a *ScAssets) Bytes() []byte {
	if a == nil {
		return []byte{0x00}
	}

	tokenIDs := a.TokenIDs()
	nftIDs := a.NftIDs()

	var flags byte
	if a.BaseTokens != 0 {
		flags |= hasBaseTokens
	}
	if len(tokenIDs) != 0 {
		flags |= hasNativeTokens
	}
	if len(nftIDs) != 0 {
		flags |= hasNFTs
	}

	enc := wasmtypes.NewWasmEncoder()
	enc.Byte(flags)
	if flags&hasBaseTokens != 0 {
		enc.VluEncode(a.BaseTokens)
	}
	if flags&hasNativeTokens != 0 {
		enc.VluEncode(uint64(len(tokenIDs)))
		for _, tokenID := range tokenIDs {
			wasmtypes.TokenIDEncode(enc, tokenID)
			wasmtypes.BigIntEncode(enc, a.NativeTokens[tokenID])
		}
	}
	if flags&hasNFTs != 0 {
		enc.VluEncode(uint64(len(nftIDs)))
		for _, nftID := range nftIDs {
			wasmtypes.NftIDEncode(enc, nftID)
		}
	}
	return enc.Buf()
}

func (a *ScAssets) Clone() *ScAssets {
	c := NewEmptyScAssets()
	if a == nil {
		return c
	}
	c.BaseTokens = a.BaseTokens
	maps.Copy(c.NativeTokens, a.NativeTokens)
	maps.Copy(c.Nfts, a.Nfts)
	return c
}

// IsEmpty agrees with the encoding: zero amounts do not count.
func (a *ScAssets) IsEmpty() bool {
	if a == nil {
		return true
	}
	return a.BaseTokens == 0 && len(a.TokenIDs()) == 0 && len(a.Nfts) == 0
}

// NftIDs returns the NFT ids in ascending byte order.
func (a *ScAssets) NftIDs() []wasmtypes.ScNftID {
	if a == nil {
		return nil
	}
	return slices.SortedFunc(maps.Keys(a.Nfts), compareNftIDs)
}

// Spend removes toSpend from a. When a cannot cover it, a is left untouched
// and ErrInsufficientFunds is returned.
func (a *ScAssets) Spend(toSpend *ScAssets) error {
	a.ensureMaps()
	if toSpend == nil {
		return nil
	}
	if a.BaseTokens < toSpend.BaseTokens {
		return errors.Wrap(ErrInsufficientFunds, "base tokens")
	}
	for tokenID, amount := range toSpend.NativeTokens {
		if a.NativeTokens[tokenID].Cmp(amount) < 0 {
			return errors.Wrapf(ErrInsufficientFunds, "token %s", tokenID)
		}
	}
	for nftID := range toSpend.Nfts {
		if _, ok := a.Nfts[nftID]; !ok {
			return errors.Wrapf(ErrInsufficientFunds, "nft %s", nftID)
		}
	}

	a.BaseTokens -= toSpend.BaseTokens
	for tokenID, amount := range toSpend.NativeTokens {
		// covered above
		rest, _ := a.NativeTokens[tokenID].Sub(amount)
		if rest.IsZero() {
			delete(a.NativeTokens, tokenID)
			continue
		}
		a.NativeTokens[tokenID] = rest
	}
	for nftID := range toSpend.Nfts {
		delete(a.Nfts, nftID)
	}
	return nil
}

func (a *ScAssets) String() string {
	if a.IsEmpty() {
		return "ScAssets{}"
	}
	parts := []string{fmt.Sprintf("base: %d", a.BaseTokens)}
	for _, tokenID := range a.TokenIDs() {
		parts = append(parts, fmt.Sprintf("%s: %s", tokenID, a.NativeTokens[tokenID]))
	}
	for _, nftID := range a.NftIDs() {
		parts = append(parts, "nft: "+nftID.String())
	}
	return "ScAssets{" + strings.Join(parts, ", ") + "}"
}

// TokenIDs returns the ids of all non-zero native token amounts in ascending
// byte order.
func (a *ScAssets) TokenIDs() []wasmtypes.ScTokenID {
	if a == nil {
		return nil
	}
	tokenIDs := make([]wasmtypes.ScTokenID, 0, len(a.NativeTokens))
	for tokenID, amount := range a.NativeTokens {
		if !amount.IsZero() {
			tokenIDs = append(tokenIDs, tokenID)
		}
	}
	slices.SortFunc(tokenIDs, compareTokenIDs)
	return tokenIDs
}

func (a *ScAssets) ensureMaps() {
	if a.NativeTokens == nil {
		a.NativeTokens = map[wasmtypes.ScTokenID]wasmtypes.ScBigInt{}
	}
	if a.Nfts == nil {
		a.Nfts = map[wasmtypes.ScNftID]struct{}{}
	}
}

func compareNftIDs(a, b wasmtypes.ScNftID) int {
	return bytes.Compare(a.Bytes(), b.Bytes())
}

func compareTokenIDs(a, b wasmtypes.ScTokenID) int {
	return bytes.Compare(a.Bytes(), b.Bytes())
}
