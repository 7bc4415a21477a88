package cli

import (
	"slate-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			wid, err := st.WorkspaceID(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":         st.Dir(),
					"dbPath":      store.DBPath(st.Dir()),
					"workspaceId": wid,
				},
			})
		},
	}
}
