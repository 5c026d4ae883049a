// Package report implements the textual serial line protocol for presence
// verdicts: "HUMAN,<ppm>\n" or "NO HUMAN,<ppm>\n". The host-side dashboard
// consumes exactly these lines, so the format is fixed.
package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Verdict tokens. The comma is part of the token; the ppm integer follows
// with no separator.
const (
	TokenHuman   = "HUMAN,"
	TokenNoHuman = "NO HUMAN,"
)

// Reading is one parsed report line.
type Reading struct {
	Present bool
	PPM     int
}

// Format renders a report line, including the trailing newline.
func Format(present bool, ppm int) []byte {
	token := TokenNoHuman
	if present {
		token = TokenHuman
	}
	return []byte(token + strconv.Itoa(ppm) + "\n")
}

// Parse decodes a single report line. The line may carry a trailing
// newline or carriage return; anything else malformed is an error.
func Parse(line string) (Reading, error) {
	line = strings.TrimRight(line, "\r\n")

	var r Reading
	var rest string
	switch {
	case strings.HasPrefix(line, TokenHuman):
		r.Present = true
		rest = line[len(TokenHuman):]
	case strings.HasPrefix(line, TokenNoHuman):
		rest = line[len(TokenNoHuman):]
	default:
		return Reading{}, fmt.Errorf("report: unrecognized line %q", line)
	}

	ppm, err := strconv.Atoi(rest)
	if err != nil {
		return Reading{}, fmt.Errorf("report: bad ppm in %q: %w", line, err)
	}
	r.PPM = ppm
	return r, nil
}
