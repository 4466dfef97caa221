package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hafriyat "github.com/goliatone/go-hafriyat"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the site page to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			site, err := hafriyat.NewSite(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			page, err := site.RenderPage(cmd.Context())
			if err != nil {
				return fmt.Errorf("rendering page: %w", err)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
