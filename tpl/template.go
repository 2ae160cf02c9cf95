// Package tpl provides email template parsing and substitution for
// mailprep. Templates are plain text carrying @name@ placeholders,
// typically laid out as RFC2822-style headers, a blank line and a body.
package tpl

import (
	"regexp"
	"sort"
	"strings"
)

// Required lists the placeholders every template must contain.
var Required = []string{"hostname", "topic", "body"}

var placeholderRE = regexp.MustCompile(`@([\p{L}\p{N}_]+)@`)

// Template is a parsed, immutable @name@ template.
type Template struct {
	text  string
	names []string
}

// New parses text and validates that it carries every Required
// placeholder.
func New(text string) (*Template, error) {
	names := scan(text)
	if len(names) == 0 {
		return nil, &Error{Kind: KindNoPlaceholders}
	}

	if missing := difference(Required, names); len(missing) > 0 {
		return nil, &Error{Kind: KindMissingPlaceholders, Names: missing}
	}

	return &Template{text: text, names: names}, nil
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}

// Placeholders returns the distinct placeholder names in sorted order.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Substitute replaces every @key@ token with values[key].
//
// values must cover every placeholder of the template; extra keys are
// ignored. Replacement is a single literal pass, so placeholder-shaped
// text inside a value is inserted verbatim.
func (t *Template) Substitute(values map[string]string) (string, error) {
	provided := make([]string, 0, len(values))
	for k := range values {
		provided = append(provided, k)
	}
	sort.Strings(provided)

	if missing := difference(t.names, provided); len(missing) > 0 {
		return "", &Error{Kind: KindMissingValues, Names: missing}
	}

	pairs := make([]string, 0, 2*len(provided))
	for _, k := range provided {
		pairs = append(pairs, "@"+k+"@", values[k])
	}

	return strings.NewReplacer(pairs...).Replace(t.text), nil
}

// scan returns the sorted distinct placeholder names found in s.
func scan(s string) []string {
	seen := make(map[string]struct{})
	for _, m := range placeholderRE.FindAllStringSubmatch(s, -1) {
		seen[m[1]] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// difference returns the sorted members of want absent from have.
func difference(want, have []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}

	var missing []string
	for _, w := range want {
		if _, ok := set[w]; !ok {
			missing = append(missing, w)
		}
	}
	sort.Strings(missing)
	return missing
}
