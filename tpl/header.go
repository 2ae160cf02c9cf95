package tpl

import (
	"bufio"
	"net/textproto"
	"strings"
)

// ParseHeader reads the RFC2822-style header block at the top of a
// rendered message, up to the first blank line. "Sub:" is accepted as
// an alias for "Subject:". Lines without a colon are skipped.
func ParseHeader(message string) textproto.MIMEHeader {
	tp := textproto.NewReader(bufio.NewReader(strings.NewReader(message)))
	hdr := make(textproto.MIMEHeader)

	for {
		line, err := tp.ReadLine()
		if err != nil || line == "" {
			break
		}

		k, v, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" {
			continue
		}

		if strings.EqualFold(k, "Sub") {
			k = "Subject"
		}
		hdr.Set(k, v)
	}

	return hdr
}
