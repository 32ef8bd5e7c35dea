package main

import (
	"github.com/spf13/cobra"
)

func newPostsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.ListPosts(cmd.Context())
		},
	}
}

func newLinksCmd(st *state) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "links <post-id>",
		Short: "Edit the links of a post",
		Long:  "Open the paginated links table of a post. With --list the links are printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return st.app.ListPostLinks(cmd.Context(), args[0])
			}
			return st.app.EditPostLinks(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the links instead of opening the editor")

	cmd.AddCommand(&cobra.Command{
		Use:   "set <post-id> <link-id> <url>",
		Short: "Point one link at a new URL",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.app.UpdatePostLink(cmd.Context(), args[0], args[1], args[2])
		},
	})
	return cmd
}
