package wasmtypes

const ScHashLength = 32

type ScHash struct {
	id [ScHashLength]byte
}

func HashFromRaw(buf []byte) ScHash {
	h := ScHash{}
	copy(h.id[:], buf)
	return h
}

func (o ScHash) Bytes() []byte {
	return HashToBytes(o)
}

func (o ScHash) String() string {
	return HashToString(o)
}

func HashDecode(dec *WasmDecoder) ScHash {
	return HashFromRaw(dec.FixedBytes(ScHashLength))
}

func HashEncode(enc *WasmEncoder, value ScHash) {
	enc.FixedBytes(value.id[:], ScHashLength)
}

func HashFromBytes(buf []byte) (ScHash, error) {
	if len(buf) == 0 {
		return ScHash{}, nil
	}
	if len(buf) != ScHashLength {
		return ScHash{}, lengthError("Hash")
	}
	return HashFromRaw(buf), nil
}

func HashToBytes(value ScHash) []byte {
	return append([]byte{}, value.id[:]...)
}

func HashFromString(value string) (ScHash, error) {
	buf, err := HexDecode(value)
	if err != nil {
		return ScHash{}, stringError("Hash", err)
	}
	if len(buf) != ScHashLength {
		return ScHash{}, stringError("Hash", lengthError("Hash"))
	}
	return HashFromRaw(buf), nil
}

func HashToString(value ScHash) string {
	return plainHex(value.id[:])
}
