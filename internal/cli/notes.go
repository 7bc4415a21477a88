package cli

import (
	"io"
	"os"

	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Short:   "Manage notes",
		Aliases: []string{"note"},
	}
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesRenameCmd(app))
	cmd.AddCommand(newNotesRmCmd(app))
	cmd.AddCommand(newNotesSetBodyCmd(app))
	return cmd
}

func newNotesAddCmd(app *App) *cobra.Command {
	var body string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			n, err := st.CreateNote(ctx, args[0], body)
			if err != nil {
				return writeErr(cmd, err)
			}
			// New items surface at the top of the recent section.
			ref := model.ItemRef{Kind: model.KindNote, ID: n.ID}
			if err := st.TouchRecent(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Markdown body")
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			notes, err := st.ListNotes(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": notes})
		},
	}
}

func newNotesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			n, err := st.GetNote(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
}

func newNotesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <note-id> <title>",
		Short: "Rename a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ref := model.ItemRef{Kind: model.KindNote, ID: args[0]}
			if err := st.Rename(ctx, ref, args[1]); err != nil {
				return writeErr(cmd, err)
			}
			n, err := st.GetNote(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
}

func newNotesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <note-id>",
		Short:   "Delete a note (and its sidebar row)",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ref := model.ItemRef{Kind: model.KindNote, ID: args[0]}
			if err := st.Delete(ctx, ref); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": ref}})
		},
	}
}

func newNotesSetBodyCmd(app *App) *cobra.Command {
	var body string
	var file string
	cmd := &cobra.Command{
		Use:   "set-body <note-id>",
		Short: "Replace a note's markdown body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := resolveBody(cmd, body, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			st, err := loadStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ref := model.ItemRef{Kind: model.KindNote, ID: args[0]}
			if err := st.SetBody(ctx, ref, b); err != nil {
				return writeErr(cmd, err)
			}
			n, err := st.GetNote(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Markdown body")
	cmd.Flags().StringVar(&file, "file", "", "Read the body from a file ('-' for stdin)")
	return cmd
}

// resolveBody picks the body source: --file (or stdin via '-') wins over
// --body; passing both is an error.
func resolveBody(cmd *cobra.Command, body, file string) (string, error) {
	switch {
	case body != "" && file != "":
		return "", errUsage("provide at most one of --body or --file")
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return body, nil
	}
}
