package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newsletter-admin-go/pkg/models"
)

func newWebhooksCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "List, add and delete webhooks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.ListWebhooks(cmd.Context())
		},
	}

	var hook models.WebhookCreate
	add := &cobra.Command{
		Use:   "add <event> <target-url>",
		Short: "Register a webhook",
		Long:  "Register a webhook. Events: " + strings.Join(models.KnownEvents, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsKnownEvent(args[0]) {
				return fmt.Errorf("unknown event %q", args[0])
			}
			hook.Event = args[0]
			hook.TargetURL = args[1]
			return st.app.AddWebhook(cmd.Context(), hook)
		},
	}
	add.Flags().StringVarP(&hook.Name, "name", "n", "", "webhook name")
	add.Flags().StringVarP(&hook.Secret, "secret", "s", "", "signing secret")
	add.Flags().StringVar(&hook.APIVersion, "api-version", "", "payload API version")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Delete webhook %s?", args[0])) {
				cmd.Println("Aborted.")
				return nil
			}
			return st.app.DeleteWebhook(cmd.Context(), args[0])
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	cmd.AddCommand(list, add, del)
	return cmd
}
