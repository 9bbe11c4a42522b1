package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

func newAssetsCmd() *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Work with encoded asset sets",
	}

	var useBase58 bool
	var decimals int32
	decodeCmd := &cobra.Command{
		Use:   "decode [bytes]",
		Short: "List the base tokens, native tokens and NFTs of an asset set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := parseBytes(args[0], useBase58)
			if err != nil {
				return err
			}
			set, err := assets.NewScAssets(buf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(
				out,
				"base tokens: %s\n",
				assets.FormatAmount(wasmtypes.NewScBigInt(set.BaseTokens), decimals),
			)
			for _, tokenID := range set.TokenIDs() {
				fmt.Fprintf(
					out,
					"token %s: %s\n",
					tokenID,
					assets.FormatAmount(set.NativeTokens[tokenID], decimals),
				)
			}
			for _, nftID := range set.NftIDs() {
				fmt.Fprintf(out, "nft %s\n", nftID)
			}
			return nil
		},
	}
	decodeCmd.Flags().BoolVar(&useBase58, "base58", false, "read base58 instead of hex")
	decodeCmd.Flags().Int32Var(&decimals, "decimals", 0, "decimal places of the amounts")

	assetsCmd.AddCommand(decodeCmd)
	return assetsCmd
}
