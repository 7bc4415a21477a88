package cli

import (
	"errors"
	"fmt"
)

// usageError marks argument misuse. main exits 2 for these so scripts can
// tell a bad invocation from a runtime failure.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err came from argument parsing.
func IsUsageError(err error) bool {
	var ue usageError
	return errors.As(err, &ue)
}
