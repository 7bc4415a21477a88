package main

import (
	"os"
	"strings"

	"slate-cli/internal/cli"
)

// itemShowArgs maps a pasted item id to the show command for its kind.
func itemShowArgs(s string) []string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "note-") && len(s) > len("note-"):
		return []string{"notes", "show"}
	case strings.HasPrefix(s, "conv-") && len(s) > len("conv-"):
		return []string{"convos", "show"}
	default:
		return nil
	}
}

// rewriteDirectItemLookupArgs makes `slate <item-id>` work like
// `slate notes show <note-id>` (or convos show for conv- ids).
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first (`slate --dir ... note-x`),
// so the scan looks for the first positional token, not just argv[1].
func rewriteDirectItemLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. Unrecognized flags are skipped
	// without consuming a value so an item id is never eaten by mistake.
	valueFlags := map[string]bool{
		"--dir":   true,
		"--actor": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) {
				if show := itemShowArgs(argv[i+1]); show != nil {
					out := make([]string, 0, len(argv)+2)
					out = append(out, argv[:i+1]...)
					out = append(out, show...)
					out = append(out, argv[i+1:]...)
					return out
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if show := itemShowArgs(a); show != nil {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, show...)
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectItemLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if cli.IsUsageError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
