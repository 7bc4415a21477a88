package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var entity string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local event log (oldest-first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			if entity != "" {
				evs, err := st.EventsForEntity(ctx, entity, limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			}
			evs, err := st.Events(ctx, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	cmd.Flags().StringVar(&entity, "entity", "", "Only events for this entity id")
	return cmd
}
