package assets

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// FormatAmount renders a raw token amount with decimals fractional digits.
func FormatAmount(amount wasmtypes.ScBigInt, decimals int32) string {
	d := decimal.NewFromBigInt(amount.Big(), -decimals)
	if decimals <= 0 {
		return d.String()
	}
	return d.StringFixed(decimals)
}

// ParseAmount converts a decimal string with at most decimals fractional
// digits into a raw token amount.
func ParseAmount(value string, decimals int32) (wasmtypes.ScBigInt, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return wasmtypes.ScBigInt{}, errors.Wrap(err, "parse amount")
	}
	d = d.Shift(decimals)
	if !d.Equal(d.Truncate(0)) {
		return wasmtypes.ScBigInt{}, errors.Errorf(
			"parse amount: more than %d decimals",
			decimals,
		)
	}
	amount, err := wasmtypes.NewScBigIntFromBig(d.BigInt())
	return amount, errors.Wrap(err, "parse amount")
}
