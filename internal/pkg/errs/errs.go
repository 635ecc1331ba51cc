package errs

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// New creates an error that carries a stack trace.
func New(msg string) error {
	return crdb.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdb.Wrap(err, msg)
}

// Mark attaches a sentinel so errors.Is(err, markErr) holds while the
// original cause stays in the chain.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return crdb.Mark(err, markErr)
}

// ExtractStackLines renders the first maxLines of the verbose error output,
// enough for a log entry without dumping the whole chain.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
