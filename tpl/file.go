package tpl

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseFile reads the template at path and validates it with New.
// The file must be a regular UTF-8 text file; line endings are
// normalised to "\n".
func ParseFile(path string) (*Template, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, &Error{Kind: KindNotFound, Path: path}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindRead, Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return nil, &Error{Kind: KindRead, Path: path, Err: errors.New("invalid UTF-8 content")}
	}

	return New(newlines.Replace(string(b)))
}
