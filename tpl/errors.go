package tpl

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Kind classifies a template Error.
type Kind int

const (
	// KindNoPlaceholders means the template has no @name@ token at all.
	KindNoPlaceholders Kind = iota + 1
	// KindMissingPlaceholders means one or more Required names are absent.
	KindMissingPlaceholders
	// KindMissingValues means Substitute was not given a value for every
	// placeholder.
	KindMissingValues
	// KindNotFound means the template file does not exist.
	KindNotFound
	// KindRead means the template file could not be read or decoded.
	KindRead
)

func (k Kind) String() string {
	switch k {
	case KindNoPlaceholders:
		return "no_placeholders"
	case KindMissingPlaceholders:
		return "missing_placeholders"
	case KindMissingValues:
		return "missing_values"
	case KindNotFound:
		return "not_found"
	case KindRead:
		return "read"
	default:
		return "unknown"
	}
}

// Error is returned by every operation of this package.
type Error struct {
	Kind Kind
	// Names holds the offending placeholder names, sorted.
	Names []string
	// Path is set for KindNotFound and KindRead.
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoPlaceholders:
		return "template contains no valid placeholders"
	case KindMissingPlaceholders:
		return fmt.Sprintf("template missing required placeholders: %s", strings.Join(e.Names, ", "))
	case KindMissingValues:
		return fmt.Sprintf("missing values for placeholders: %s", strings.Join(e.Names, ", "))
	case KindNotFound:
		return fmt.Sprintf("template file not found: %s", e.Path)
	case KindRead:
		return fmt.Sprintf("error reading template file: %v", e.Err)
	default:
		return "template error"
	}
}

// Unwrap exposes the underlying cause. NotFound errors unwrap to
// fs.ErrNotExist when no other cause is recorded.
func (e *Error) Unwrap() error {
	if e.Err == nil && e.Kind == KindNotFound {
		return fs.ErrNotExist
	}
	return e.Err
}

// IsKind reports whether err is a template Error of kind k.
func IsKind(err error, k Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == k
}
