// Package tabio implements the line classification, field coercion, and
// attribute parsing shared by the tab-delimited genomic interval formats
// (BED, GFF3).  Format-specific packages (encoding/bed, encoding/gff) build
// records out of the typed values produced here.
package tabio

import "strings"

// LineClass categorizes one raw input line.
type LineClass int

const (
	// Data is a tab-delimited record line.
	Data LineClass = iota
	// Comment is a line starting with '#'.
	Comment
	// BrowserHeader is a UCSC "browser ..." display line.
	BrowserHeader
	// TrackHeader is a UCSC "track ..." metadata line.
	TrackHeader
	// Blank is an empty or whitespace-only line.
	Blank
)

func (c LineClass) String() string {
	switch c {
	case Data:
		return "data"
	case Comment:
		return "comment"
	case BrowserHeader:
		return "browser"
	case TrackHeader:
		return "track"
	case Blank:
		return "blank"
	}
	return "unknown"
}

// Classify categorizes a raw line.  The rules are checked in order: '#'
// prefix, "browser" prefix, "track" prefix, blank, data.  Classify never
// tokenizes; use SplitFields on Data lines.
func Classify(line string) LineClass {
	if strings.HasPrefix(line, "#") {
		return Comment
	}
	if strings.HasPrefix(line, "browser") {
		return BrowserHeader
	}
	if strings.HasPrefix(line, "track") {
		return TrackHeader
	}
	if strings.TrimSpace(line) == "" {
		return Blank
	}
	return Data
}

// SplitFields splits a data line on literal tabs.  Empty fields are
// preserved, including trailing ones: BED and GFF mark absent values with
// '.'-padding, never by eliding the delimiter, so an empty field is itself
// meaningful input (usually a defect) and must survive tokenization.
func SplitFields(line string) []string {
	return strings.Split(line, "\t")
}

// TokenizeTabs appends the tab-separated fields of line to fields, returning
// the extended slice.  It is the []byte analogue of SplitFields for
// scanner-driven loops that want to avoid a string copy per line; the
// returned subslices alias line.
func TokenizeTabs(fields [][]byte, line []byte) [][]byte {
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	return append(fields, line[start:])
}
