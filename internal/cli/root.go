package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"slate-cli/internal/config"
	"slate-cli/internal/format"
	"slate-cli/internal/logging"
	"slate-cli/internal/model"
	"slate-cli/internal/store"
	"slate-cli/internal/tui"

	"github.com/spf13/cobra"
)

// Version is stamped at build time; "dev" otherwise.
var Version = "dev"

type App struct {
	Dir        string
	Actor      string
	PrettyJSON bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "slate",
		Short:        "Slate (local-first) notes & conversations CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  slate

  # Scriptable commands
  slate notes add "Meeting notes"
  slate pin note note-ab3k9f2
  slate sidebar move note note-ab3k9f2 --to 0 --section pinned

  # Direct item lookup (shortcut for: slate notes show <note-id>)
  slate note-ab3k9f2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SLATE_DIR", ""), "Path to the workspace dir (default: config dir, then ~/.slate)")
	cmd.PersistentFlags().StringVar(&app.Actor, "actor", envOr("SLATE_ACTOR", ""), "Actor recorded on events (default: local)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newConvosCmd(app))
	cmd.AddCommand(newPinCmd(app))
	cmd.AddCommand(newUnpinCmd(app))
	cmd.AddCommand(newSidebarCmd(app))
	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := loadStore(context.Background(), app)
	if err != nil {
		return err
	}
	defer st.Close()
	log := logging.New(logging.Options{
		Enabled: app.cfg.Log.Enabled,
		Path:    app.cfg.Log.Path,
		Dir:     st.Dir(),
	})
	defer func() { _ = log.Sync() }()
	return tui.Run(st, app.cfg, log)
}

// loadStore resolves the workspace dir (--dir, then config/SLATE_DIR, then
// ~/.slate) and opens it, creating the database on first use.
func loadStore(ctx context.Context, app *App) (*store.Store, error) {
	dir := app.Dir
	if dir == "" {
		dir = app.cfg.Dir
	}
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	app.Dir = dir

	st, err := store.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	st.SetRecentCap(app.cfg.Sidebar.RecentCap)
	st.SetActor(app.Actor)
	return st, nil
}

func parseKind(s string) (model.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "note", "n":
		return model.KindNote, nil
	case "conversation", "convo", "conv", "c":
		return model.KindConversation, nil
	default:
		return "", errUsage("unknown kind %q (want note|conversation)", s)
	}
}

func parseSection(s string) (model.Section, error) {
	sec := model.Section(strings.ToLower(strings.TrimSpace(s)))
	if !sec.Valid() {
		return "", errUsage("unknown section %q (want pinned|recent)", s)
	}
	return sec, nil
}

func refArgs(kindArg, idArg string) (model.ItemRef, error) {
	kind, err := parseKind(kindArg)
	if err != nil {
		return model.ItemRef{}, err
	}
	id := strings.TrimSpace(idArg)
	if id == "" {
		return model.ItemRef{}, errUsage("empty item id")
	}
	return model.ItemRef{Kind: kind, ID: id}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
