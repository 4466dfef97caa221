package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hafriyat/pkg/deeplink"
)

func newLinkCmd(root *rootOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the WhatsApp chat link",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if message == "" {
				message = cfg.WhatsApp.Message
			}
			link, err := deeplink.WhatsApp(cfg.WhatsApp.Recipient, message)
			if err != nil {
				return err
			}
			if deeplink.IsPlaceholder(cfg.WhatsApp.Recipient) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: whatsapp.recipient is still the placeholder number")
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "pre-filled message (defaults to whatsapp.message)")
	return cmd
}
