package wasmtypes

const (
	ScBoolLength = 1
	ScBoolFalse  = 0x00
	ScBoolTrue   = 0x01
)

func BoolDecode(dec *WasmDecoder) bool {
	return boolFromByte(dec, dec.Byte())
}

func BoolEncode(enc *WasmEncoder, value bool) {
	if value {
		enc.Byte(ScBoolTrue)
		return
	}
	enc.Byte(ScBoolFalse)
}

func BoolFromBytes(buf []byte) (bool, error) {
	if len(buf) == 0 {
		return false, nil
	}
	if len(buf) != ScBoolLength {
		return false, lengthError("Bool")
	}
	switch buf[0] {
	case ScBoolFalse:
		return false, nil
	case ScBoolTrue:
		return true, nil
	}
	return false, ErrInvalidBool
}

func BoolToBytes(value bool) []byte {
	if value {
		return []byte{ScBoolTrue}
	}
	return []byte{ScBoolFalse}
}

func BoolFromString(value string) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, stringError("Bool", ErrInvalidBool)
}

func BoolToString(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

func boolFromByte(dec *WasmDecoder, b byte) bool {
	switch b {
	case ScBoolFalse:
		return false
	case ScBoolTrue:
		return true
	}
	dec.Fail(ErrInvalidBool)
	return false
}
