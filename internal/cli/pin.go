package cli

import (
	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newPinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <kind> <id>",
		Short: "Pin an item to the top sidebar section",
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

			if err := st.Pin(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"ref":     ref,
				"section": model.SectionPinned,
			}})
		},
	}
}

func newUnpinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <kind> <id>",
		Short: "Move a pinned item back to the recent section",
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

			if err := st.Unpin(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"ref":     ref,
				"section": model.SectionRecent,
			}})
		},
	}
}
