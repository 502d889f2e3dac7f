// Package gff implements parsing and writing of GFF3 (Generic Feature
// Format, version 3) files.  See
// https://github.com/The-Sequence-Ontology/Specifications/blob/master/gff3.md.
// A GFF3 file holds one feature per tab-delimited line with exactly nine
// columns; '.' marks an absent value.  Coordinates are 1-based inclusive,
// unlike BED's 0-based half-open intervals.
//
// GFF3 is treated as less strict than BED: an out-of-set strand or phase
// token is reported as a defect but the record is still emitted with the
// token as given.  The attributes column is parsed lazily, on first access.
package gff

import (
	"strconv"
	"strings"

	"github.com/grailbio/featfmt/encoding/tabio"
)

// NumFields is the number of logical GFF3 columns.
const NumFields = 9

// VersionPragma is the header line every written GFF3 file starts with.
const VersionPragma = "##gff-version 3"

// Record is a single GFF3 feature.  Start and End are 1-based inclusive and
// valid only when the corresponding Has flag is set: GFF has an "absent
// coordinate" concept ('.') that BED lacks.
type Record struct {
	SeqID  string
	Source string
	Type   string
	Start  int
	End    int
	// HasStart and HasEnd distinguish a real coordinate from a '.' column.
	HasStart bool
	HasEnd   bool
	// Score is unbounded; GFF scores are not clamped.
	Score    float64
	HasScore bool
	// Strand is one of "+", "-", ".", "?", or the raw token when the input
	// was out of set (reported as a defect at parse time).
	Strand string
	// Phase is "0", "1", "2", or ".", or the raw token when out of set.
	Phase string

	attrText string
	attrs    *tabio.Attrs
}

// Attrs returns the record's attributes as an ordered key/value map,
// parsing the attributes column on first access.  Values are never
// unquoted.  Malformed segments become keys with empty values.
func (r *Record) Attrs() *tabio.Attrs {
	if r.attrs == nil {
		if r.attrText == "" || r.attrText == "." {
			r.attrs = tabio.NewAttrs()
		} else {
			r.attrs = tabio.ParsePairs(r.attrText, ';', '=', false, nil, 0)
		}
	}
	return r.attrs
}

// SetAttrs replaces the record's attributes.  The attributes column is
// re-rendered from the map on write.
func (r *Record) SetAttrs(a *tabio.Attrs) {
	r.attrs = a
	r.attrText = ""
}

// AttrText returns the raw attributes column, or "." when the record has no
// attributes.
func (r *Record) AttrText() string {
	if r.attrText != "" {
		return r.attrText
	}
	if r.attrs != nil && r.attrs.Len() > 0 {
		return r.attrs.Encode(';', '=')
	}
	return "."
}

// String renders the record as a tab-delimited GFF3 row.
func (r *Record) String() string {
	var sb strings.Builder
	r.appendRow(&sb)
	return sb.String()
}

func (r *Record) appendRow(sb *strings.Builder) {
	writeCol := func(s string) {
		if s == "" {
			s = "."
		}
		sb.WriteString(s)
	}
	writeCol(r.SeqID)
	sb.WriteByte('\t')
	writeCol(r.Source)
	sb.WriteByte('\t')
	writeCol(r.Type)
	sb.WriteByte('\t')
	if r.HasStart {
		sb.WriteString(strconv.Itoa(r.Start))
	} else {
		sb.WriteByte('.')
	}
	sb.WriteByte('\t')
	if r.HasEnd {
		sb.WriteString(strconv.Itoa(r.End))
	} else {
		sb.WriteByte('.')
	}
	sb.WriteByte('\t')
	if r.HasScore {
		sb.WriteString(strconv.FormatFloat(r.Score, 'f', -1, 64))
	} else {
		sb.WriteByte('.')
	}
	sb.WriteByte('\t')
	writeCol(r.Strand)
	sb.WriteByte('\t')
	writeCol(r.Phase)
	sb.WriteByte('\t')
	writeCol(r.AttrText())
}
