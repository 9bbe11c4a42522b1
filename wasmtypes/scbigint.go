package wasmtypes

import (
	"math/big"
	"slices"

	"github.com/pkg/errors"
)

// ScBigInt is an arbitrary size non-negative integer used for token amounts.
// Values are immutable, every operation returns a new ScBigInt.
type ScBigInt struct {
	value *big.Int
}

func NewScBigInt(value uint64) ScBigInt {
	return ScBigInt{value: new(big.Int).SetUint64(value)}
}

// NewScBigIntFromBig copies value, which must not be negative.
func NewScBigIntFromBig(value *big.Int) (ScBigInt, error) {
	if value == nil {
		return ScBigInt{}, nil
	}
	if value.Sign() < 0 {
		return ScBigInt{}, ErrNegativeAmount
	}
	return ScBigInt{value: new(big.Int).Set(value)}, nil
}

func (o ScBigInt) Add(rhs ScBigInt) ScBigInt {
	return ScBigInt{value: new(big.Int).Add(o.Big(), rhs.Big())}
}

// Big returns a copy of the value as a big.Int.
func (o ScBigInt) Big() *big.Int {
	if o.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(o.value)
}

func (o ScBigInt) Bytes() []byte {
	return BigIntToBytes(o)
}

func (o ScBigInt) Cmp(rhs ScBigInt) int {
	return o.Big().Cmp(rhs.Big())
}

func (o ScBigInt) IsUint64() bool {
	return o.value == nil || o.value.IsUint64()
}

func (o ScBigInt) IsZero() bool {
	return o.value == nil || o.value.Sign() == 0
}

func (o ScBigInt) String() string {
	return BigIntToString(o)
}

func (o ScBigInt) Sub(rhs ScBigInt) (ScBigInt, error) {
	if o.Cmp(rhs) < 0 {
		return ScBigInt{}, ErrUnderflow
	}
	return ScBigInt{value: new(big.Int).Sub(o.Big(), rhs.Big())}, nil
}

// Uint64 returns the value when it fits, ErrIntegerOverflow otherwise.
func (o ScBigInt) Uint64() (uint64, error) {
	if !o.IsUint64() {
		return 0, ErrIntegerOverflow
	}
	if o.value == nil {
		return 0, nil
	}
	return o.value.Uint64(), nil
}

// BigIntDecode reads the little-endian magnitude that the streaming form
// carries behind a length prefix.
func BigIntDecode(dec *WasmDecoder) ScBigInt {
	buf := dec.Bytes()
	if dec.Err() != nil {
		return ScBigInt{}
	}
	if len(buf) != 0 && buf[len(buf)-1] == 0 {
		dec.Fail(errors.Wrap(ErrNonCanonical, "big int decode"))
		return ScBigInt{}
	}
	slices.Reverse(buf)
	return ScBigInt{value: new(big.Int).SetBytes(buf)}
}

func BigIntEncode(enc *WasmEncoder, value ScBigInt) {
	buf := value.Big().Bytes()
	slices.Reverse(buf)
	enc.Bytes(buf)
}

// BigIntFromBytes takes the big-endian magnitude used for state storage.
func BigIntFromBytes(buf []byte) (ScBigInt, error) {
	if len(buf) != 0 && buf[0] == 0 {
		return ScBigInt{}, errors.Wrap(ErrNonCanonical, "big int from bytes")
	}
	return ScBigInt{value: new(big.Int).SetBytes(buf)}, nil
}

func BigIntToBytes(value ScBigInt) []byte {
	return value.Big().Bytes()
}

func BigIntFromString(value string) (ScBigInt, error) {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return ScBigInt{}, stringError("BigInt", nil)
	}
	if n.Sign() < 0 {
		return ScBigInt{}, stringError("BigInt", ErrNegativeAmount)
	}
	return ScBigInt{value: n}, nil
}

func BigIntToString(value ScBigInt) string {
	return value.Big().Text(10)
}
