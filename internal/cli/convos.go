package cli

import (
	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newConvosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convos",
		Short:   "Manage conversations",
		Aliases: []string{"convo", "conversations"},
	}
	cmd.AddCommand(newConvosAddCmd(app))
	cmd.AddCommand(newConvosListCmd(app))
	cmd.AddCommand(newConvosShowCmd(app))
	return cmd
}

func newConvosAddCmd(app *App) *cobra.Command {
	var body string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			c, err := st.CreateConversation(ctx, args[0], body)
			if err != nil {
				return writeErr(cmd, err)
			}
			ref := model.ItemRef{Kind: model.KindConversation, ID: c.ID}
			if err := st.TouchRecent(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Markdown transcript")
	return cmd
}

func newConvosListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			convos, err := st.ListConversations(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": convos})
		},
	}
}

func newConvosShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Show a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			c, err := st.GetConversation(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
}
