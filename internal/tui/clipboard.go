package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardWriters lists candidate clipboard commands for this platform, in
// preference order. Terminal apps can't touch the system clipboard directly,
// so we pipe through whatever helper the host has.
func clipboardWriters() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{
			{"cmd", "/c", "clip"},
			{"powershell", "-NoProfile", "-Command", "Set-Clipboard"},
		}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

func copyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var firstErr error
	for _, argv := range clipboardWriters() {
		if _, err := exec.LookPath(argv[0]); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(s)
		if err := cmd.Run(); err != nil {
			if firstErr == nil {
				firstErr = errors.New(argv[0] + ": " + err.Error())
			}
			continue
		}
		return nil
	}
	if firstErr == nil {
		firstErr = errors.New("no clipboard command found")
	}
	return firstErr
}
