package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	hafriyat "github.com/goliatone/go-hafriyat"
	"github.com/goliatone/go-hafriyat/pkg/render"
	"github.com/goliatone/go-hafriyat/pkg/renderers/tui"
)

func newContactCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Fill in the contact form in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			output := tui.OutputFormat(format)
			switch output {
			case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			terminal, err := tui.New(
				tui.WithOutputFormat(output),
				tui.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			site, err := hafriyat.NewSite(cmd.Context(), *cfg,
				hafriyat.WithLogger(logger),
				hafriyat.WithRenderer(terminal),
			)
			if err != nil {
				return err
			}

			out, err := site.Render(cmd.Context(), terminal.Name(), render.RenderOptions{})
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "İptal edildi.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	return cmd
}
