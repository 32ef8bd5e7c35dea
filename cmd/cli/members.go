package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMembersCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List, add and delete members",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.ListMembers(cmd.Context(), page, limit)
		},
	}
	list.Flags().IntVarP(&page, "page", "p", 1, "page number")
	list.Flags().IntVarP(&limit, "limit", "l", 15, "members per page")

	var name, note string
	add := &cobra.Command{
		Use:   "add <email>",
		Short: "Add a member; they are subscribed to the default newsletters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.AddMember(cmd.Context(), args[0], name, note)
		},
	}
	add.Flags().StringVarP(&name, "name", "n", "", "member name")
	add.Flags().StringVar(&note, "note", "", "private note")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Delete member %s?", args[0])) {
				cmd.Println("Aborted.")
				return nil
			}
			return st.app.DeleteMember(cmd.Context(), args[0])
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	cmd.AddCommand(list, add, del)
	return cmd
}

// confirm asks a y/N question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
