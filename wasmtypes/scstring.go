package wasmtypes

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ScStringMaxLength bounds the length prefix of a streamed string.
const ScStringMaxLength = 0xffff

func StringDecode(dec *WasmDecoder) string {
	length := dec.VluDecode(16)
	buf := dec.FixedBytes(uint32(length))
	if dec.Err() != nil {
		return ""
	}
	if !utf8.Valid(buf) {
		dec.Fail(errors.Wrap(ErrInvalidString, "string decode"))
		return ""
	}
	return string(buf)
}

func StringEncode(enc *WasmEncoder, value string) {
	if len(value) > ScStringMaxLength {
		enc.Fail(ErrStringTooLong)
		return
	}
	enc.VluEncode(uint64(len(value)))
	enc.FixedBytes([]byte(value), uint32(len(value)))
}

// StringFromBytes interprets the whole buffer as UTF-8 text, the host infers
// the length from the buffer boundary.
func StringFromBytes(buf []byte) (string, error) {
	if !utf8.Valid(buf) {
		return "", errors.Wrap(ErrInvalidString, "string from bytes")
	}
	return string(buf), nil
}

func StringToBytes(value string) []byte {
	return []byte(value)
}

func StringFromString(value string) (string, error) {
	return value, nil
}

func StringToString(value string) string {
	return value
}
