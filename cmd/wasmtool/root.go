package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/config"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/store"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

type rootOptions struct {
	configDir string
	debug     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "wasmtool",
		Short: "Inspect wasmlib values and local host state",
		Long: `wasmtool converts wasmlib values between their string and byte forms,
decodes asset blobs, derives hnames and reads or edits the pebble store of a
local host.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(
		&opts.configDir,
		"config",
		".config",
		"directory holding config.yml",
	)
	rootCmd.PersistentFlags().BoolVar(
		&opts.debug,
		"debug",
		false,
		"enable debug logging",
	)

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newAssetsCmd(),
		newHnameCmd(),
		newStateCmd(opts),
	)
	return rootCmd
}

type kvStore interface {
	wasmtypes.KvStore
	store.Iterable
}

// openStore opens the configured pebble store, behind the read cache unless
// the cache is disabled. The returned closer releases the store and flushes
// the logger.
func (o *rootOptions) openStore() (kvStore, *zap.Logger, func(), error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, logCloser, err := cfg.CreateLogger(o.debug)
	if err != nil {
		return nil, nil, nil, err
	}
	closeLogger := func() {
		_ = logger.Sync()
		_ = logCloser.Close()
	}

	pebbleStore, err := store.NewPebbleStore(logger, cfg.DB)
	if err != nil {
		closeLogger()
		return nil, nil, nil, err
	}
	closer := func() {
		if err := pebbleStore.Close(); err != nil {
			logger.Error("closing store", zap.Error(err))
		}
		closeLogger()
	}

	if cfg.DB.CacheSize < 0 {
		return pebbleStore, logger, closer, nil
	}
	cached, err := store.NewCachedStore(pebbleStore, cfg.DB.CacheSize)
	if err != nil {
		closer()
		return nil, nil, nil, errors.Wrap(err, "open store")
	}
	return cached, logger, closer, nil
}
