package gapmatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// InputError marks a malformed pattern or pattern-file line. Callers log it
// and skip the offending input; it never aborts a batch.
type InputError struct {
	Line   int
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error at line %d: %s", e.Line, e.Reason)
}

// MissingKey reports that a requested collection or index resource was not
// present. It is not an error condition by itself: callers that expect a
// possibly-absent key return it alongside a zero result, not a panic.
type MissingKey struct {
	Key string
}

func (e *MissingKey) Error() string {
	return fmt.Sprintf("missing key: %s", e.Key)
}

// BoundsAnomaly marks a candidate position that fell outside the text and
// was silently discarded by the caller. It exists so tests can assert the
// discard happened; production code only needs to check for it with
// errors.As and drop the candidate.
type BoundsAnomaly struct {
	Position uint64
	TextSize uint64
}

func (e *BoundsAnomaly) Error() string {
	return fmt.Sprintf("position %d exceeds text size %d", e.Position, e.TextSize)
}

// FatalIO wraps an unrecoverable I/O or serialization failure. Unlike the
// other three error kinds, a FatalIO terminates the operation in progress;
// callers should not attempt to continue past one.
func FatalIO(op string, err error) error {
	return errors.Wrapf(err, "fatal I/O during %s", op)
}
