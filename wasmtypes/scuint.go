package wasmtypes

import (
	"encoding/binary"
	"strconv"
)

const (
	ScUint8Length  = 1
	ScUint16Length = 2
	ScUint32Length = 4
	ScUint64Length = 8
)

func Uint8Decode(dec *WasmDecoder) uint8 {
	return dec.Byte()
}

func Uint8Encode(enc *WasmEncoder, value uint8) {
	enc.Byte(value)
}

func Uint8FromBytes(buf []byte) (uint8, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScUint8Length {
		return 0, lengthError("Uint8")
	}
	return buf[0], nil
}

func Uint8ToBytes(value uint8) []byte {
	return []byte{value}
}

func Uint8FromString(value string) (uint8, error) {
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, stringError("Uint8", err)
	}
	return uint8(n), nil
}

func Uint8ToString(value uint8) string {
	return strconv.FormatUint(uint64(value), 10)
}

func Uint16Decode(dec *WasmDecoder) uint16 {
	return uint16(dec.VluDecode(16))
}

func Uint16Encode(enc *WasmEncoder, value uint16) {
	enc.VluEncode(uint64(value))
}

func Uint16FromBytes(buf []byte) (uint16, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScUint16Length {
		return 0, lengthError("Uint16")
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func Uint16ToBytes(value uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, value)
}

func Uint16FromString(value string) (uint16, error) {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, stringError("Uint16", err)
	}
	return uint16(n), nil
}

func Uint16ToString(value uint16) string {
	return strconv.FormatUint(uint64(value), 10)
}

func Uint32Decode(dec *WasmDecoder) uint32 {
	return uint32(dec.VluDecode(32))
}

func Uint32Encode(enc *WasmEncoder, value uint32) {
	enc.VluEncode(uint64(value))
}

func Uint32FromBytes(buf []byte) (uint32, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScUint32Length {
		return 0, lengthError("Uint32")
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func Uint32ToBytes(value uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, value)
}

func Uint32FromString(value string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, stringError("Uint32", err)
	}
	return uint32(n), nil
}

func Uint32ToString(value uint32) string {
	return strconv.FormatUint(uint64(value), 10)
}

func Uint64Decode(dec *WasmDecoder) uint64 {
	return dec.VluDecode(64)
}

func Uint64Encode(enc *WasmEncoder, value uint64) {
	enc.VluEncode(value)
}

func Uint64FromBytes(buf []byte) (uint64, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScUint64Length {
		return 0, lengthError("Uint64")
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func Uint64ToBytes(value uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, value)
}

func Uint64FromString(value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, stringError("Uint64", err)
	}
	return n, nil
}

func Uint64ToString(value uint64) string {
	return strconv.FormatUint(value, 10)
}
