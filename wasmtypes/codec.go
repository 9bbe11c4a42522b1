package wasmtypes

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// WasmDecoder decodes separate entities from a byte buffer. The first error
// encountered is retained and every subsequent read returns a zero value, so
// callers can decode a whole structure and check Err or Close once at the end.
type WasmDecoder struct {
	buf []byte
	err error
}

func NewWasmDecoder(buf []byte) *WasmDecoder {
	d := &WasmDecoder{buf: buf}
	if len(buf) == 0 {
		d.err = ErrEmptyBuffer
	}
	return d
}

// Err returns the first error encountered while decoding.
func (d *WasmDecoder) Err() error {
	return d.err
}

// Fail records err unless an earlier error was already recorded.
func (d *WasmDecoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Remaining returns the number of bytes not yet consumed.
func (d *WasmDecoder) Remaining() int {
	return len(d.buf)
}

// Byte decodes the next byte from the byte buffer.
func (d *WasmDecoder) Byte() byte {
	if d.err != nil {
		return 0
	}
	if len(d.buf) == 0 {
		d.Fail(ErrInsufficientBytes)
		return 0
	}
	value := d.buf[0]
	d.buf = d.buf[1:]
	return value
}

// Bytes decodes the next variable sized slice of bytes from the byte buffer.
func (d *WasmDecoder) Bytes() []byte {
	length := d.VluDecode(32)
	if d.err != nil {
		return nil
	}
	return d.FixedBytes(uint32(length))
}

// Close finalizes decoding and reports an error when bytes remain in the
// buffer or when any earlier read failed.
func (d *WasmDecoder) Close() error {
	if d.err != nil {
		return d.err
	}
	if len(d.buf) != 0 {
		return ErrExtraBytes
	}
	return nil
}

// FixedBytes decodes the next fixed size slice of bytes from the byte buffer.
func (d *WasmDecoder) FixedBytes(size uint32) []byte {
	if d.err != nil {
		return nil
	}
	if uint32(len(d.buf)) < size {
		d.Fail(errors.Wrap(ErrInsufficientBytes, "fixed bytes"))
		return nil
	}
	value := make([]byte, size)
	copy(value, d.buf[:size])
	d.buf = d.buf[size:]
	return value
}

// Peek returns the next byte without consuming it.
func (d *WasmDecoder) Peek() byte {
	if d.err != nil {
		return 0
	}
	if len(d.buf) == 0 {
		d.Fail(errors.Wrap(ErrInsufficientBytes, "peek"))
		return 0
	}
	return d.buf[0]
}

// VliDecode decodes a signed LEB128 value that must fit in bits bits.
func (d *WasmDecoder) VliDecode(bits int) int64 {
	b := d.Byte()
	if d.err != nil {
		return 0
	}
	value := int64(b & 0x7f)
	s := 7
	for b&0x80 != 0 {
		if s >= bits {
			d.Fail(ErrIntegerTooLong)
			return 0
		}
		prev := b
		b = d.Byte()
		if d.err != nil {
			return 0
		}
		if b == 0x00 && prev&0x40 == 0 || b == 0x7f && prev&0x40 != 0 {
			// the previous group already carried the correct sign
			d.Fail(ErrNonCanonical)
			return 0
		}
		if s+7 > 64 {
			// only the lowest payload bit lands inside the value, the rest
			// must replicate it
			if b&0x7f != 0 && b&0x7f != 0x7f {
				d.Fail(ErrIntegerOverflow)
				return 0
			}
		}
		value |= int64(b&0x7f) << s
		s += 7
	}

	if s < 64 && b&0x40 != 0 {
		value |= -1 << s
	}

	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if value < -limit || value >= limit {
			d.Fail(ErrIntegerOverflow)
			return 0
		}
	}
	return value
}

// VluDecode decodes an unsigned LEB128 value that must fit in bits bits.
func (d *WasmDecoder) VluDecode(bits int) uint64 {
	b := d.Byte()
	if d.err != nil {
		return 0
	}
	value := uint64(b & 0x7f)
	s := 7
	for b&0x80 != 0 {
		if s >= bits {
			d.Fail(ErrIntegerTooLong)
			return 0
		}
		b = d.Byte()
		if d.err != nil {
			return 0
		}
		if b == 0x00 {
			d.Fail(ErrNonCanonical)
			return 0
		}
		if s+7 > 64 && uint64(b&0x7f)>>(64-s) != 0 {
			d.Fail(ErrIntegerOverflow)
			return 0
		}
		value |= uint64(b&0x7f) << s
		s += 7
	}

	if bits < 64 && value>>bits != 0 {
		d.Fail(ErrIntegerOverflow)
		return 0
	}
	return value
}

// WasmEncoder encodes separate entities into a byte buffer.
type WasmEncoder struct {
	buf []byte
	err error
}

func NewWasmEncoder() *WasmEncoder {
	return &WasmEncoder{buf: make([]byte, 0, 128)}
}

// Buf retrieves the encoded byte buffer.
func (e *WasmEncoder) Buf() []byte {
	return e.buf
}

// Err returns the first error encountered while encoding.
func (e *WasmEncoder) Err() error {
	return e.err
}

// Fail records err unless an earlier error was already recorded.
func (e *WasmEncoder) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Byte encodes a single byte into the byte buffer.
func (e *WasmEncoder) Byte(value byte) *WasmEncoder {
	e.buf = append(e.buf, value)
	return e
}

// Bytes encodes a variable sized slice of bytes into the byte buffer.
func (e *WasmEncoder) Bytes(value []byte) *WasmEncoder {
	length := len(value)
	e.VluEncode(uint64(length))
	return e.FixedBytes(value, uint32(length))
}

// FixedBytes encodes a fixed size slice of bytes into the byte buffer.
func (e *WasmEncoder) FixedBytes(value []byte, length uint32) *WasmEncoder {
	if uint32(len(value)) != length {
		e.Fail(errors.Wrap(ErrInvalidLength, "invalid fixed bytes length"))
		return e
	}
	e.buf = append(e.buf, value...)
	return e
}

// VliEncode encodes a signed value as minimal length SLEB128, the sign is
// bit 0x40 of the final byte. This is not the wasmlib host layout, which
// keeps the sign in bit 0x40 of the first byte, so signed values written here
// cannot be read by such a host and the other way around.
func (e *WasmEncoder) VliEncode(value int64) *WasmEncoder {
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value == 0 && b&0x40 == 0 || value == -1 && b&0x40 != 0 {
			e.buf = append(e.buf, b)
			return e
		}
		e.buf = append(e.buf, b|0x80)
	}
}

// VluEncode encodes an unsigned value as minimal length ULEB128.
func (e *WasmEncoder) VluEncode(value uint64) *WasmEncoder {
	b := byte(value & 0x7f)
	value >>= 7
	for value != 0 {
		e.buf = append(e.buf, b|0x80)
		b = byte(value & 0x7f)
		value >>= 7
	}
	e.buf = append(e.buf, b)
	return e
}

// HexDecode decodes a hex string, the 0x prefix is optional.
func HexDecode(value string) ([]byte, error) {
	if has0xPrefix(value) {
		value = value[2:]
	}
	buf, err := hex.DecodeString(value)
	return buf, errors.Wrap(err, "hex decode")
}

// HexEncode encodes bytes as 0x prefixed lowercase hex.
func HexEncode(buf []byte) string {
	return "0x" + hex.EncodeToString(buf)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func plainHex(buf []byte) string {
	return hex.EncodeToString(buf)
}
