package wasmtypes

import (
	"encoding/binary"
	"strconv"
)

const (
	ScInt8Length  = 1
	ScInt16Length = 2
	ScInt32Length = 4
	ScInt64Length = 8
)

func Int8Decode(dec *WasmDecoder) int8 {
	return int8(dec.Byte())
}

func Int8Encode(enc *WasmEncoder, value int8) {
	enc.Byte(byte(value))
}

func Int8FromBytes(buf []byte) (int8, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScInt8Length {
		return 0, lengthError("Int8")
	}
	return int8(buf[0]), nil
}

func Int8ToBytes(value int8) []byte {
	return []byte{byte(value)}
}

func Int8FromString(value string) (int8, error) {
	n, err := strconv.ParseInt(value, 10, 8)
	if err != nil {
		return 0, stringError("Int8", err)
	}
	return int8(n), nil
}

func Int8ToString(value int8) string {
	return strconv.FormatInt(int64(value), 10)
}

func Int16Decode(dec *WasmDecoder) int16 {
	return int16(dec.VliDecode(16))
}

func Int16Encode(enc *WasmEncoder, value int16) {
	enc.VliEncode(int64(value))
}

func Int16FromBytes(buf []byte) (int16, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScInt16Length {
		return 0, lengthError("Int16")
	}
	return int16(binary.LittleEndian.Uint16(buf)), nil
}

func Int16ToBytes(value int16) []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(value))
}

func Int16FromString(value string) (int16, error) {
	n, err := strconv.ParseInt(value, 10, 16)
	if err != nil {
		return 0, stringError("Int16", err)
	}
	return int16(n), nil
}

func Int16ToString(value int16) string {
	return strconv.FormatInt(int64(value), 10)
}

func Int32Decode(dec *WasmDecoder) int32 {
	return int32(dec.VliDecode(32))
}

func Int32Encode(enc *WasmEncoder, value int32) {
	enc.VliEncode(int64(value))
}

func Int32FromBytes(buf []byte) (int32, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScInt32Length {
		return 0, lengthError("Int32")
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

func Int32ToBytes(value int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(value))
}

func Int32FromString(value string) (int32, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, stringError("Int32", err)
	}
	return int32(n), nil
}

func Int32ToString(value int32) string {
	return strconv.FormatInt(int64(value), 10)
}

func Int64Decode(dec *WasmDecoder) int64 {
	return dec.VliDecode(64)
}

func Int64Encode(enc *WasmEncoder, value int64) {
	enc.VliEncode(value)
}

func Int64FromBytes(buf []byte) (int64, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScInt64Length {
		return 0, lengthError("Int64")
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

func Int64ToBytes(value int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(value))
}

func Int64FromString(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, stringError("Int64", err)
	}
	return n, nil
}

func Int64ToString(value int64) string {
	return strconv.FormatInt(value, 10)
}
