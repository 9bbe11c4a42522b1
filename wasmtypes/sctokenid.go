package wasmtypes

const ScTokenIDLength = 38

// ScTokenID identifies a native token, the foundry that minted it is encoded
// in the id itself.
type ScTokenID struct {
	id [ScTokenIDLength]byte
}

func TokenIDFromRaw(buf []byte) ScTokenID {
	h := ScTokenID{}
	copy(h.id[:], buf)
	return h
}

func (o ScTokenID) Bytes() []byte {
	return TokenIDToBytes(o)
}

func (o ScTokenID) String() string {
	return TokenIDToString(o)
}

func TokenIDDecode(dec *WasmDecoder) ScTokenID {
	return TokenIDFromRaw(dec.FixedBytes(ScTokenIDLength))
}

func TokenIDEncode(enc *WasmEncoder, value ScTokenID) {
	enc.FixedBytes(value.id[:], ScTokenIDLength)
}

func TokenIDFromBytes(buf []byte) (ScTokenID, error) {
	if len(buf) == 0 {
		return ScTokenID{}, nil
	}
	if len(buf) != ScTokenIDLength {
		return ScTokenID{}, lengthError("TokenID")
	}
	return TokenIDFromRaw(buf), nil
}

func TokenIDToBytes(value ScTokenID) []byte {
	return append([]byte{}, value.id[:]...)
}

func TokenIDFromString(value string) (ScTokenID, error) {
	buf, err := HexDecode(value)
	if err != nil {
		return ScTokenID{}, stringError("TokenID", err)
	}
	if len(buf) != ScTokenIDLength {
		return ScTokenID{}, stringError("TokenID", lengthError("TokenID"))
	}
	return TokenIDFromRaw(buf), nil
}

func TokenIDToString(value ScTokenID) string {
	return plainHex(value.id[:])
}
