package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font. Instead we choose between
// Unicode and ASCII glyph sets for UI affordances (bullets, the section
// rule, drop markers). This helps on terminals/fonts that don't render some
// glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SLATE_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphsName(gs glyphSet) string {
	switch gs {
	case glyphSetASCII:
		return "ASCII"
	default:
		return "Unicode"
	}
}

// glyphNote marks note rows.
func glyphNote() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

// glyphConvo marks conversation rows.
func glyphConvo() string {
	if glyphs() == glyphSetASCII {
		return "o"
	}
	return "◦"
}

// glyphPin marks rows in the pinned section.
func glyphPin() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "●"
}

// glyphDropMark points at the slot a dragged row would land in.
func glyphDropMark() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
