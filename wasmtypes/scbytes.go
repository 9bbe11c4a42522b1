package wasmtypes

func BytesDecode(dec *WasmDecoder) []byte {
	return dec.Bytes()
}

func BytesEncode(enc *WasmEncoder, value []byte) {
	enc.Bytes(value)
}

// BytesFromBytes returns a copy of buf, the flat form has no length prefix.
func BytesFromBytes(buf []byte) ([]byte, error) {
	if buf == nil {
		return []byte{}, nil
	}
	return append([]byte{}, buf...), nil
}

func BytesToBytes(value []byte) []byte {
	return value
}

func BytesFromString(value string) ([]byte, error) {
	buf, err := HexDecode(value)
	if err != nil {
		return nil, stringError("Bytes", err)
	}
	return buf, nil
}

func BytesToString(value []byte) string {
	return HexEncode(value)
}
