package solo

import "github.com/pkg/errors"

var (
	ErrUnsupported       = errors.New("unsupported sandbox function")
	ErrUnknownFunction   = errors.New("unknown sandbox function")
	ErrUnknownContract   = errors.New("unknown contract")
	ErrUnknownEntryPoint = errors.New("unknown entry point")
	ErrUnknownProgram    = errors.New("unknown program")
	ErrContractExists    = errors.New("contract already exists")
	ErrFuncOnly          = errors.New("not available in a view")
	ErrAccountNotFound   = errors.New("target account does not exist")
	ErrInvalidPubKey     = errors.New("invalid public key")
	ErrBech32Prefix      = errors.New("unexpected bech32 prefix")
)
