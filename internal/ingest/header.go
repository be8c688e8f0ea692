package ingest

import (
	"bufio"
	"errors"
	"strings"
)

// ErrHeaderNotFound means the sentinel column name never appeared inside the
// scan window. Callers fall back to a whole-buffer parse instead of failing.
var ErrHeaderNotFound = errors.New("header row not found")

// headerScanLimit caps how many leading lines are inspected. Export banners
// sit in the first handful of lines; anything past this window is data.
const headerScanLimit = 100

// maxLineBytes sizes the scanner buffer for reports with very wide rows.
const maxLineBytes = 1 << 20

// HeaderLocation identifies where tabular data starts and how it is split.
type HeaderLocation struct {
	Row       int
	Delimiter rune
}

// LocateHeader scans decoded report text for the first line containing the
// sentinel column name. The matched line picks the delimiter: tab when it
// holds more tabs than commas, comma otherwise. Earlier banner or metadata
// lines are the caller's to discard.
func LocateHeader(text, sentinel string) (HeaderLocation, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for i := 0; i < headerScanLimit && sc.Scan(); i++ {
		line := sc.Text()
		if !strings.Contains(line, sentinel) {
			continue
		}
		delim := ','
		if strings.Count(line, "\t") > strings.Count(line, ",") {
			delim = '\t'
		}
		return HeaderLocation{Row: i, Delimiter: delim}, nil
	}
	return HeaderLocation{}, ErrHeaderNotFound
}

// inferDelimiter applies the tab-versus-comma count to the first non-blank
// line, for parses that never located a sentinel header.
func inferDelimiter(text string) rune {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, "\t") > strings.Count(line, ",") {
			return '\t'
		}
		return ','
	}
	return ','
}
