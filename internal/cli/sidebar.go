package cli

import (
	"context"
	"fmt"

	"slate-cli/internal/model"
	"slate-cli/internal/store"

	"github.com/spf13/cobra"
)

func newSidebarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Inspect and reorder the sidebar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			return writeSidebar(cmd, app, ctx, st)
		},
	}
	cmd.AddCommand(newSidebarMoveCmd(app))
	return cmd
}

func newSidebarMoveCmd(app *App) *cobra.Command {
	var to int
	var section string
	cmd := &cobra.Command{
		Use:   "move <kind> <id>",
		Short: "Move a sidebar row to a new position",
		Long: `Move a sidebar row to position --to within its section,
or into the other section with --section.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := refArgs(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("to") {
				return writeErr(cmd, errUsage("--to is required"))
			}

			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			cur, idx, err := locateRow(ctx, st, ref)
			if err != nil {
				return writeErr(cmd, err)
			}

			dest := cur
			if section != "" {
				dest, err = parseSection(section)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			if dest == cur {
				err = st.ReorderWithinSection(ctx, cur, idx, to)
			} else {
				err = st.MoveItemBetweenSections(ctx, ref, cur, dest, to)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeSidebar(cmd, app, ctx, st)
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "Destination index within the section (0-based)")
	cmd.Flags().StringVar(&section, "section", "", "Destination section (pinned|recent); default: stay put")
	return cmd
}

// locateRow finds which section holds ref and at what index.
func locateRow(ctx context.Context, st *store.Store, ref model.ItemRef) (model.Section, int, error) {
	for _, sec := range []model.Section{model.SectionPinned, model.SectionRecent} {
		items, err := st.SectionItems(ctx, sec)
		if err != nil {
			return "", 0, err
		}
		for i, it := range items {
			if it == ref {
				return sec, i, nil
			}
		}
	}
	return "", 0, fmt.Errorf("%s %s is not in the sidebar", ref.Kind, ref.ID)
}

func writeSidebar(cmd *cobra.Command, app *App, ctx context.Context, st *store.Store) error {
	pinned, err := st.SectionRows(ctx, model.SectionPinned)
	if err != nil {
		return writeErr(cmd, err)
	}
	recent, err := st.SectionRows(ctx, model.SectionRecent)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"pinned": pinned,
		"recent": recent,
	}})
}
