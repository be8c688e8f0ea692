package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable means the buffer held no parseable rows at all.
var ErrEmptyTable = errors.New("no rows to parse")

// Loader turns raw report uploads into Tables. The load protocol: decode
// lossily under the detected encoding, locate the sentinel header and parse
// from that row; if the sentinel never shows up, parse the whole buffer with
// an inferred delimiter; if structured parsing fails, fall back to plain
// line splitting. Only when every strategy fails does Load return an error.
type Loader struct {
	sentinel    string
	sampleBytes int
	detector    *Detector
	cache       *ParseCache
}

// NewLoader builds a Loader scanning for the given sentinel column name.
// sampleBytes <= 0 selects DefaultSampleBytes. cache may be nil.
func NewLoader(sentinel string, sampleBytes int, cache *ParseCache) *Loader {
	if sampleBytes <= 0 {
		sampleBytes = DefaultSampleBytes
	}
	return &Loader{
		sentinel:    sentinel,
		sampleBytes: sampleBytes,
		detector:    NewDetector(),
		cache:       cache,
	}
}

// LoadResult carries a parsed upload plus the non-fatal advisories raised
// along the way. Cache hits replay the advisories of the original parse.
type LoadResult struct {
	Table     *Table
	Encoding  string
	Warnings  []string
	FromCache bool
}

func (r *LoadResult) clone() *LoadResult {
	out := &LoadResult{
		Table:     r.Table.Clone(),
		Encoding:  r.Encoding,
		FromCache: r.FromCache,
	}
	out.Warnings = append(out.Warnings, r.Warnings...)
	return out
}

// Load parses an upload, memoizing by exact byte content. The returned
// result is the caller's to mutate; cached state stays isolated.
func (l *Loader) Load(raw []byte) (*LoadResult, error) {
	if l.cache != nil {
		if res, ok := l.cache.Get(raw); ok {
			return res, nil
		}
	}

	res, err := l.parse(raw)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Put(raw, res)
	}
	return res, nil
}

func (l *Loader) parse(raw []byte) (*LoadResult, error) {
	sample := raw
	if len(sample) > l.sampleBytes {
		sample = sample[:l.sampleBytes]
	}
	enc := l.detector.Detect(sample)
	text := decodeText(raw, enc)
	res := &LoadResult{Encoding: enc}

	var firstErr error
	if loc, err := LocateHeader(text, l.sentinel); err == nil {
		t, perr := parseDelimited(dropLines(text, loc.Row), loc.Delimiter)
		if perr == nil {
			res.Table = t
			return res, nil
		}
		firstErr = perr
	} else {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no header row containing %q in the first %d lines; parsing from the top", l.sentinel, headerScanLimit))
		t, perr := parseDelimited(text, inferDelimiter(text))
		if perr == nil {
			res.Table = t
			return res, nil
		}
		firstErr = perr
	}

	res.Warnings = append(res.Warnings, fmt.Sprintf("structured parse failed: %v", firstErr))
	t, perr := parsePermissive(text, inferDelimiter(text))
	if perr != nil {
		return nil, fmt.Errorf("upload not parseable: %w", firstErr)
	}
	res.Table = t
	return res, nil
}

// parseDelimited reads text as delimited records. The first record is the
// header; every following record must match its width, so ragged exports
// push the loader down to the permissive engine.
func parseDelimited(text string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	t := NewTable(records[0])
	for _, rec := range records[1:] {
		t.AppendStringRow(rec)
	}
	return t, nil
}

// parsePermissive is the last-resort engine: split lines on the delimiter
// with no quoting rules, pad or truncate rows to the header width. It only
// fails on a buffer with no content lines.
func parsePermissive(text string, delim rune) (*Table, error) {
	var t *Table
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, string(delim))
		if t == nil {
			t = NewTable(cells)
			continue
		}
		t.AppendStringRow(cells)
	}
	if t == nil {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// dropLines discards the first n lines of text.
func dropLines(text string, n int) string {
	for ; n > 0; n-- {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	return text
}
