package wasmtypes

const ScNftIDLength = 32

// ScNftID identifies a single non-fungible token.
type ScNftID struct {
	id [ScNftIDLength]byte
}

func NftIDFromRaw(buf []byte) ScNftID {
	h := ScNftID{}
	copy(h.id[:], buf)
	return h
}

func (o ScNftID) Bytes() []byte {
	return NftIDToBytes(o)
}

func (o ScNftID) String() string {
	return NftIDToString(o)
}

func NftIDDecode(dec *WasmDecoder) ScNftID {
	return NftIDFromRaw(dec.FixedBytes(ScNftIDLength))
}

func NftIDEncode(enc *WasmEncoder, value ScNftID) {
	enc.FixedBytes(value.id[:], ScNftIDLength)
}

func NftIDFromBytes(buf []byte) (ScNftID, error) {
	if len(buf) == 0 {
		return ScNftID{}, nil
	}
	if len(buf) != ScNftIDLength {
		return ScNftID{}, lengthError("NftID")
	}
	return NftIDFromRaw(buf), nil
}

func NftIDToBytes(value ScNftID) []byte {
	return append([]byte{}, value.id[:]...)
}

func NftIDFromString(value string) (ScNftID, error) {
	buf, err := HexDecode(value)
	if err != nil {
		return ScNftID{}, stringError("NftID", err)
	}
	if len(buf) != ScNftIDLength {
		return ScNftID{}, stringError("NftID", lengthError("NftID"))
	}
	return NftIDFromRaw(buf), nil
}

func NftIDToString(value ScNftID) string {
	return plainHex(value.id[:])
}
