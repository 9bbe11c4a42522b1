package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

var errUnknownType = errors.New("unknown type")

// valueCodec converts between the string form of a value and its flat bytes.
type valueCodec struct {
	encode func(value string) ([]byte, error)
	decode func(buf []byte) (string, error)
}

func newValueCodec[T any](
	codec wasmtypes.Codec[T],
	fromString func(string) (T, error),
) valueCodec {
	return valueCodec{
		encode: func(value string) ([]byte, error) {
			v, err := fromString(value)
			if err != nil {
				return nil, err
			}
			return codec.ToBytes(v), nil
		},
		decode: func(buf []byte) (string, error) {
			v, err := codec.FromBytes(buf)
			if err != nil {
				return "", err
			}
			return codec.ToString(v), nil
		},
	}
}

var valueCodecs = map[string]valueCodec{
	"address":   newValueCodec(wasmtypes.AddressCodec, wasmtypes.AddressFromString),
	"agentid":   newValueCodec(wasmtypes.AgentIDCodec, wasmtypes.AgentIDFromString),
	"bigint":    newValueCodec(wasmtypes.BigIntCodec, wasmtypes.BigIntFromString),
	"bool":      newValueCodec(wasmtypes.BoolCodec, wasmtypes.BoolFromString),
	"bytes":     newValueCodec(wasmtypes.BytesCodec, wasmtypes.BytesFromString),
	"chainid":   newValueCodec(wasmtypes.ChainIDCodec, wasmtypes.ChainIDFromString),
	"hash":      newValueCodec(wasmtypes.HashCodec, wasmtypes.HashFromString),
	"hname":     newValueCodec(wasmtypes.HnameCodec, wasmtypes.HnameFromString),
	"int8":      newValueCodec(wasmtypes.Int8Codec, wasmtypes.Int8FromString),
	"int16":     newValueCodec(wasmtypes.Int16Codec, wasmtypes.Int16FromString),
	"int32":     newValueCodec(wasmtypes.Int32Codec, wasmtypes.Int32FromString),
	"int64":     newValueCodec(wasmtypes.Int64Codec, wasmtypes.Int64FromString),
	"nftid":     newValueCodec(wasmtypes.NftIDCodec, wasmtypes.NftIDFromString),
	"requestid": newValueCodec(wasmtypes.RequestIDCodec, wasmtypes.RequestIDFromString),
	"string":    newValueCodec(wasmtypes.StringCodec, wasmtypes.StringFromString),
	"tokenid":   newValueCodec(wasmtypes.TokenIDCodec, wasmtypes.TokenIDFromString),
	"uint8":     newValueCodec(wasmtypes.Uint8Codec, wasmtypes.Uint8FromString),
	"uint16":    newValueCodec(wasmtypes.Uint16Codec, wasmtypes.Uint16FromString),
	"uint32":    newValueCodec(wasmtypes.Uint32Codec, wasmtypes.Uint32FromString),
	"uint64":    newValueCodec(wasmtypes.Uint64Codec, wasmtypes.Uint64FromString),
}

func typeNames() string {
	names := make([]string, 0, len(valueCodecs))
	for name := range valueCodecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func lookupCodec(name string) (valueCodec, error) {
	codec, ok := valueCodecs[strings.ToLower(name)]
	if !ok {
		return valueCodec{}, errors.Wrapf(errUnknownType, "%q (known: %s)", name, typeNames())
	}
	return codec, nil
}

// parseBytes reads hex, optionally 0x prefixed, or base58.
func parseBytes(value string, useBase58 bool) ([]byte, error) {
	if useBase58 {
		buf, err := base58.Decode(value)
		return buf, errors.Wrap(err, "base58 decode")
	}
	return wasmtypes.HexDecode(value)
}

func formatBytes(buf []byte, useBase58 bool) string {
	if useBase58 {
		return base58.Encode(buf)
	}
	return wasmtypes.HexEncode(buf)
}

func newEncodeCmd() *cobra.Command {
	var useBase58 bool
	cmd := &cobra.Command{
		Use:   "encode [type] [value]",
		Short: "Encode the string form of a value into its stored bytes",
		Long: `Encode the string form of a value into the bytes kept in contract state.

Example:
  wasmtool encode uint64 300
  wasmtool encode agentid smr1qq...
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := lookupCodec(args[0])
			if err != nil {
				return err
			}
			buf, err := codec.encode(args[1])
			if err != nil {
				return errors.Wrap(err, "encode")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatBytes(buf, useBase58))
			return nil
		},
	}
	cmd.Flags().BoolVar(&useBase58, "base58", false, "print base58 instead of hex")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var useBase58 bool
	cmd := &cobra.Command{
		Use:   "decode [type] [bytes]",
		Short: "Decode stored bytes into the string form of a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := lookupCodec(args[0])
			if err != nil {
				return err
			}
			buf, err := parseBytes(args[1], useBase58)
			if err != nil {
				return err
			}
			value, err := codec.decode(buf)
			if err != nil {
				return errors.Wrap(err, "decode")
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useBase58, "base58", false, "read base58 instead of hex")
	return cmd
}
