package wasmtypes

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

const ScHnameLength = 4

// ScHname is the 32-bit hash of a contract or function name. Computing it
// requires the host hash utility, see sandbox.ScSandboxUtils.HashName.
type ScHname uint32

func (o ScHname) Bytes() []byte {
	return HnameToBytes(o)
}

func (o ScHname) String() string {
	return HnameToString(o)
}

func HnameDecode(dec *WasmDecoder) ScHname {
	buf := dec.FixedBytes(ScHnameLength)
	if dec.Err() != nil {
		return 0
	}
	return ScHname(binary.LittleEndian.Uint32(buf))
}

func HnameEncode(enc *WasmEncoder, value ScHname) {
	enc.FixedBytes(HnameToBytes(value), ScHnameLength)
}

func HnameFromBytes(buf []byte) (ScHname, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) != ScHnameLength {
		return 0, lengthError("Hname")
	}
	return ScHname(binary.LittleEndian.Uint32(buf)), nil
}

func HnameToBytes(value ScHname) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(value))
}

func HnameFromString(value string) (ScHname, error) {
	if len(value) != 2*ScHnameLength {
		return 0, stringError("Hname", lengthError("Hname"))
	}
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, stringError("Hname", err)
	}
	return ScHname(n), nil
}

func HnameToString(value ScHname) string {
	return fmt.Sprintf("%08x", uint32(value))
}
