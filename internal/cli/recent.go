package cli

import (
	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newRecentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the recent sidebar section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			rows, err := st.SectionRows(ctx, model.SectionRecent)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	cmd.AddCommand(newRecentTouchCmd(app))
	return cmd
}

func newRecentTouchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <kind> <id>",
		Short: "Bump an item to the top of recent (no-op for pinned items)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := refArgs(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			if err := st.TouchRecent(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			rows, err := st.SectionRows(ctx, model.SectionRecent)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}
