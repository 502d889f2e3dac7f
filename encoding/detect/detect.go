// Package detect guesses the format of tab-delimited genomic interval text
// from a sample of leading lines.  Hosts use it to pick a loader before
// committing to a full parse, falling back to a generic tabular view when
// nothing matches.
package detect

import (
	"strings"

	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/grailbio/featfmt/encoding/gff"
	"github.com/grailbio/featfmt/encoding/tabio"
)

// Format tags a detected file format.
type Format int

const (
	Unknown Format = iota
	BED
	GFF
)

func (f Format) String() string {
	switch f {
	case BED:
		return "bed"
	case GFF:
		return "gff"
	}
	return "unknown"
}

// Result is a detection verdict.  Confidence ranges from 0 (no idea) to 10
// (pragma-certain).
type Result struct {
	Format     Format
	Confidence int
}

// Detect inspects sample lines, typically the first few dozen of a file,
// and returns the most likely format.  Only the first data line is judged;
// header lines refine the verdict but never settle it alone, except for the
// unambiguous ##gff-version pragma.
func Detect(sample []string) Result {
	sawTrack := false
	for _, line := range sample {
		switch tabio.Classify(line) {
		case tabio.Comment:
			if strings.HasPrefix(line, "##gff-version") {
				return Result{Format: GFF, Confidence: 10}
			}
			continue
		case tabio.TrackHeader, tabio.BrowserHeader:
			sawTrack = true
			continue
		case tabio.Blank:
			continue
		}
		return judgeData(tabio.SplitFields(line), sawTrack)
	}
	if sawTrack {
		// Track lines without any data to confirm still suggest BED.
		return Result{Format: BED, Confidence: 5}
	}
	return Result{}
}

func judgeData(fields []string, sawTrack bool) Result {
	if len(fields) >= gff.NumFields {
		if isInt(fields[3]) && isInt(fields[4]) && isStrand(fields[6]) {
			return Result{Format: GFF, Confidence: 9}
		}
	}
	if len(fields) >= bed.MinFields && isInt(fields[1]) && isInt(fields[2]) {
		confidence := 7
		if sawTrack {
			confidence = 9
		} else if !isInt(fields[0]) {
			// A non-numeric chrom column distinguishes BED from arbitrary
			// numeric TSV data.
			confidence = 8
		}
		return Result{Format: BED, Confidence: confidence}
	}
	return Result{}
}

func isInt(s string) bool {
	_, ok := tabio.CoerceInt(s)
	return ok
}

func isStrand(s string) bool {
	switch s {
	case "+", "-", ".", "?":
		return true
	}
	return false
}
