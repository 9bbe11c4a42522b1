package wasmtypes

import "github.com/pkg/errors"

// Shape errors.
var (
	ErrInsufficientBytes = errors.New("insufficient bytes")
	ErrExtraBytes        = errors.New("extra bytes")
	ErrEmptyBuffer       = errors.New("empty decode buffer")
	ErrIntegerTooLong    = errors.New("integer representation too long")
	ErrIntegerOverflow   = errors.New("integer overflow")
	ErrNonCanonical      = errors.New("non-canonical integer encoding")
	ErrInvalidLength     = errors.New("invalid length")
	ErrStringTooLong     = errors.New("string too long")
)

// Domain validity errors.
var (
	ErrInvalidBool        = errors.New("invalid bool value")
	ErrInvalidAddressType = errors.New("invalid address type")
	ErrInvalidAgentIDType = errors.New("invalid agent id type")
	ErrInvalidRequestID   = errors.New("invalid request id")
	ErrInvalidString      = errors.New("invalid string")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrUnderflow          = errors.New("subtraction underflow")
)

// Protocol misuse errors.
var (
	ErrInvalidIndex = errors.New("invalid index")
	ErrUseAppend    = errors.New("invalid index: use append")
)

func lengthError(typeName string) error {
	return errors.Wrap(ErrInvalidLength, "invalid "+typeName+" length")
}

func stringError(typeName string, err error) error {
	if err == nil {
		err = ErrInvalidString
	}
	return errors.Wrap(err, "invalid "+typeName+" string")
}
