package store

import (
	"errors"
	"strings"
)

// Sidebar ordering uses fractional lexicographic ranks: lowercase base36
// strings compared bytewise. Inserting between two neighbors is a midpoint
// computation and touches only the moved row in the common case.

const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func rankDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	default:
		return 0, false
	}
}

func rankChar(d int) byte {
	if d < 0 {
		d = 0
	}
	if d > 35 {
		d = 35
	}
	return rankAlphabet[d]
}

// RankBetween returns a rank strictly between a and b. Either bound may be
// empty: empty a means no lower bound, empty b no upper bound.
func RankBetween(a, b string) (string, error) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a != "" && b != "" && !(a < b) {
		return "", errors.New("RankBetween requires a < b")
	}

	betweenOK := func(r string) bool {
		if strings.TrimSpace(r) == "" {
			return false
		}
		if a != "" && !(a < r) {
			return false
		}
		if b != "" && !(r < b) {
			return false
		}
		return true
	}

	const min = 0
	const max = 35

	prefix := make([]byte, 0, 8)
	for i := 0; i < 256; i++ {
		da := min
		db := max
		if i < len(a) {
			if v, ok := rankDigit(a[i]); ok {
				da = v
			} else {
				return "", errors.New("invalid rank character in a")
			}
		}
		if i < len(b) {
			if v, ok := rankDigit(b[i]); ok {
				db = v
			} else {
				return "", errors.New("invalid rank character in b")
			}
		}

		if da == db {
			prefix = append(prefix, rankChar(da))
			continue
		}

		if db-da > 1 {
			mid := da + (db-da)/2
			prefix = append(prefix, rankChar(mid))
			r := string(prefix)
			if !betweenOK(r) {
				// Happens when the upper bound extends the lower by the minimal
				// digit (e.g. "y" < "y0"): nothing sorts strictly between them.
				return "", errors.New("no space between ranks")
			}
			return r, nil
		}

		// Adjacent digits: extend a. Any extension of a still sorts before b
		// because b already differs at this position.
		r := a + "0"
		if !betweenOK(r) {
			return "", errors.New("no space between ranks")
		}
		return r, nil
	}
	return "", errors.New("unable to compute rank between")
}

func RankAfter(a string) (string, error)  { return RankBetween(a, "") }
func RankBefore(b string) (string, error) { return RankBetween("", b) }
func RankInitial() (string, error)        { return RankBetween("", "") }

// RankBetweenUnique returns a rank between lower and upper that is not
// present in existing. Collisions tighten the lower bound and retry, so the
// surrounding rows keep their ranks.
func RankBetweenUnique(existing map[string]bool, lower, upper string) (string, error) {
	if existing == nil {
		existing = map[string]bool{}
	}
	lower = strings.ToLower(strings.TrimSpace(lower))
	upper = strings.ToLower(strings.TrimSpace(upper))

	curLower := lower
	for i := 0; i < 256; i++ {
		r, err := RankBetween(curLower, upper)
		if err != nil {
			return "", err
		}
		rn := strings.ToLower(strings.TrimSpace(r))
		if rn == "" {
			return "", errors.New("generated empty rank")
		}
		if !existing[rn] {
			return rn, nil
		}
		curLower = rn
	}
	return "", errors.New("unable to find unique rank")
}
