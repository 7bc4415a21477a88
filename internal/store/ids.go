package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"slate-cli/internal/model"
)

func idPrefixForKind(kind model.Kind) string {
	if kind == model.KindConversation {
		return "conv"
	}
	return "note"
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of lowercase
// base32 (~40 bits of space): short enough to type, sparse enough that
// collisions within one workspace are not a practical concern.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}
