package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// stateKey reads a store key given as hex, or as plain text with --text.
func stateKey(value string, text bool) ([]byte, error) {
	if text {
		return []byte(value), nil
	}
	key, err := wasmtypes.HexDecode(value)
	return key, errors.Wrap(err, "state key")
}

func newStateCmd(opts *rootOptions) *cobra.Command {
	var text bool
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Read and edit the local host store",
		Long: `Read and edit the pebble store configured in config.yml. Keys and values
are hex, keys may be given as text with --text.`,
	}
	stateCmd.PersistentFlags().BoolVar(&text, "text", false, "keys are plain text")

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print the value stored at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := stateKey(args[0], text)
			if err != nil {
				return err
			}
			kv, _, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			value, err := kv.Get(key)
			if err != nil {
				return errors.Wrap(err, "state get")
			}
			if value == nil {
				return errors.Errorf("state get: key %x not found", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), wasmtypes.HexEncode(value))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Store a hex value at key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := stateKey(args[0], text)
			if err != nil {
				return err
			}
			value, err := wasmtypes.HexDecode(args[1])
			if err != nil {
				return errors.Wrap(err, "state value")
			}
			kv, logger, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			if err := kv.Set(key, value); err != nil {
				return errors.Wrap(err, "state set")
			}
			logger.Debug("state set", zap.Binary("key", key), zap.Int("size", len(value)))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Remove key from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := stateKey(args[0], text)
			if err != nil {
				return err
			}
			kv, _, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			return errors.Wrap(kv.Delete(key), "state delete")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [prefix]",
		Short: "Print every key and value, optionally below a key prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix []byte
			if len(args) == 1 {
				var err error
				if prefix, err = stateKey(args[0], text); err != nil {
					return err
				}
			}
			kv, _, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			out := cmd.OutOrStdout()
			err = kv.Iterate(prefix, func(key []byte, value []byte) error {
				_, err := fmt.Fprintf(
					out,
					"%s %s\n",
					wasmtypes.HexEncode(key),
					wasmtypes.HexEncode(value),
				)
				return err
			})
			return errors.Wrap(err, "state dump")
		},
	}

	stateCmd.AddCommand(getCmd, setCmd, deleteCmd, dumpCmd)
	return stateCmd
}
