package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/internal/config"
	"github.com/goliatone/go-hafriyat/internal/logging"
)

type rootOptions struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "hafriyat",
		Short: "Ayaz Hafriyat site server and tools",
		Long: `hafriyat serves the Ayaz Hafriyat company site, renders it to a file,
runs the contact form in the terminal and prints the WhatsApp link.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newContactCmd(opts),
		newSimulateCmd(opts),
		newLinkCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load reads and validates the configuration.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, _, err := logging.New(cfg.Log.Level, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return logger, nil
}
