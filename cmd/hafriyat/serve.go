package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	hafriyat "github.com/goliatone/go-hafriyat"
	"github.com/goliatone/go-hafriyat/internal/devwatch"
	"github.com/goliatone/go-hafriyat/internal/server"
	"github.com/goliatone/go-hafriyat/internal/telemetry"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Long: `Serves the rendered page, its assets, the wasm runtime from server.wasm_dir,
the /whatsapp redirect and the client error endpoint. With templates.watch
set, template and content changes are picked up without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tp, err := telemetry.Setup(ctx, telemetry.Config{
				Endpoint:    cfg.Telemetry.Endpoint,
				ServiceName: cfg.Telemetry.ServiceName,
				Insecure:    cfg.Telemetry.Insecure,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Warn("telemetry shutdown", zap.Error(err))
				}
			}()

			site, err := hafriyat.NewSite(ctx, *cfg, hafriyat.WithLogger(logger))
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Addr:              cfg.Server.Addr,
				AllowAllOrigins:   cfg.Server.AllowAllOrigins,
				WasmDir:           cfg.Server.WasmDir,
				ShutdownTimeout:   cfg.Server.ShutdownTimeout,
				ErrorWindow:       cfg.Server.ErrorWindow,
				WhatsAppRecipient: cfg.WhatsApp.Recipient,
				WhatsAppMessage:   cfg.WhatsApp.Message,
			}, site, hafriyat.RuntimeAssetsFS(), server.WithLogger(logger))
			if err != nil {
				return err
			}

			var watcher *devwatch.Watcher
			if cfg.Templates.Watch {
				watcher, err = devwatch.New(site, site.WatchDirs(), devwatch.WithLogger(logger))
				if err != nil {
					return fmt.Errorf("starting watcher: %w", err)
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(gctx) })
			if watcher != nil {
				g.Go(func() error { return watcher.Run(gctx) })
			}

			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
