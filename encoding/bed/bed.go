// Package bed implements parsing, validation, and writing of BED (Browser
// Extensible Data) files.  See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1.  Briefly, a BED file
// holds one genomic interval per tab-delimited line, with three required
// columns (chrom, chromStart, chromEnd) and up to nine optional trailing
// columns; optional leading "track"/"browser"/"#" lines carry display
// metadata.  Coordinates are 0-based half-open.
//
// Parsing is defect-tolerant: malformed lines are skipped (or degraded,
// for the block columns) and reported on a diagnostics list, never aborting
// the load.
package bed

import (
	"fmt"
	"strconv"
	"strings"
)

// BED column counts.  A record carries between MinFields and MaxFields
// columns; NFields records how many were present in the source.
const (
	MinFields = 3
	MaxFields = 12
)

// Column indices within a BED line.
const (
	colChrom = iota
	colStart
	colEnd
	colName
	colScore
	colStrand
	colThickStart
	colThickEnd
	colItemRGB
	colBlockCount
	colBlockSizes
	colBlockStarts
)

// RGB is an itemRgb color with each channel clamped to [0, 255].
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Record is a single validated BED interval.  Start is 0-based inclusive and
// End exclusive; End > Start holds for every record emitted by this package.
// Optional columns hold their documented defaults when absent; NFields tells
// how many columns were actually present, which also controls how many
// columns the writer emits.
//
// Records are immutable once emitted: operations that derive new intervals
// (merge, conversion) return fresh Records rather than mutating these.
type Record struct {
	Chrom string
	Start int
	End   int
	// Name is "." when absent (configurable via ReadOpts.DefaultName).
	Name string
	// Score is clamped to [0, 1000].
	Score float64
	// Strand is "+", "-", or ".".
	Strand string
	// ThickStart and ThickEnd are clamped into [Start, End] and default to
	// Start and End when absent or malformed.
	ThickStart int
	ThickEnd   int
	ItemRGB    RGB
	// BlockCount and the two lists are all-or-nothing: a record whose block
	// columns disagree with each other or with [Start, End) keeps its
	// coordinates but drops every block (BlockCount == 0).
	BlockCount  int
	BlockSizes  []int
	BlockStarts []int
	// NFields is the number of BED columns present in the source line,
	// in [MinFields, MaxFields].
	NFields int
}

// Len returns the interval length in bases.
func (r *Record) Len() int { return r.End - r.Start }

// Overlaps reports whether r and other share at least one base.
func (r *Record) Overlaps(other *Record) bool {
	return r.Chrom == other.Chrom && r.Start < other.End && other.Start < r.End
}

// String renders the record as a tab-delimited BED row, emitting NFields
// columns.
func (r *Record) String() string {
	var sb strings.Builder
	r.appendRow(&sb)
	return sb.String()
}

func (r *Record) appendRow(sb *strings.Builder) {
	sb.WriteString(r.Chrom)
	sb.WriteByte('\t')
	sb.WriteString(strconv.Itoa(r.Start))
	sb.WriteByte('\t')
	sb.WriteString(strconv.Itoa(r.End))
	n := r.NFields
	if n < MinFields {
		n = MinFields
	}
	if n > colName {
		sb.WriteByte('\t')
		sb.WriteString(r.Name)
	}
	if n > colScore {
		sb.WriteByte('\t')
		sb.WriteString(formatScore(r.Score))
	}
	if n > colStrand {
		sb.WriteByte('\t')
		sb.WriteString(r.Strand)
	}
	if n > colThickStart {
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(r.ThickStart))
	}
	if n > colThickEnd {
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(r.ThickEnd))
	}
	if n > colItemRGB {
		sb.WriteByte('\t')
		sb.WriteString(r.ItemRGB.String())
	}
	if n > colBlockCount {
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(r.BlockCount))
	}
	if n > colBlockSizes {
		sb.WriteByte('\t')
		sb.WriteString(formatIntList(r.BlockSizes))
	}
	if n > colBlockStarts {
		sb.WriteByte('\t')
		sb.WriteString(formatIntList(r.BlockStarts))
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func formatIntList(list []int) string {
	if len(list) == 0 {
		return "."
	}
	var sb strings.Builder
	for i, v := range list {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
