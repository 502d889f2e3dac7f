package tabio

import "fmt"

// DefectKind identifies a class of malformed input.
type DefectKind int

const (
	// TooFewFields marks a data line with fewer fields than the format's
	// minimum (3 for BED, 9 for GFF).
	TooFewFields DefectKind = iota + 1
	// EmptySequenceName marks a record whose first column is empty or
	// whitespace-only.
	EmptySequenceName
	// NonNumericCoordinate marks a coordinate column that failed integer
	// coercion.
	NonNumericCoordinate
	// InvalidCoordinateOrder marks a record with end <= start.
	InvalidCoordinateOrder
	// InvalidBlockStructure marks a BED record whose block columns disagree
	// with each other or escape [start, end).  The record is still emitted,
	// with all blocks dropped.
	InvalidBlockStructure
	// UnrecognizedEnum marks a strand or phase token outside the format's
	// documented set.
	UnrecognizedEnum
	// MalformedAttribute marks an attribute segment with no key/value
	// separator.  The segment is kept as a key with an empty value.
	MalformedAttribute
	// ConversionMissingRequiredAttribute marks a record that cannot be
	// converted because a required column or attribute is absent.
	ConversionMissingRequiredAttribute
)

func (k DefectKind) String() string {
	switch k {
	case TooFewFields:
		return "too few fields"
	case EmptySequenceName:
		return "empty sequence name"
	case NonNumericCoordinate:
		return "non-numeric coordinate"
	case InvalidCoordinateOrder:
		return "invalid coordinate order"
	case InvalidBlockStructure:
		return "invalid block structure"
	case UnrecognizedEnum:
		return "unrecognized enum token"
	case MalformedAttribute:
		return "malformed attribute"
	case ConversionMissingRequiredAttribute:
		return "missing required attribute"
	}
	return fmt.Sprintf("defect(%d)", int(k))
}

// maxDefectContent bounds how much of the offending line is retained in a
// Defect, so diagnostics stay readable for very wide rows.
const maxDefectContent = 80

// Defect describes one malformed line (or record, for conversion defects).
// Defects are diagnostics, not errors: the offending line is skipped or
// degraded per the format's policy, and the load continues.
type Defect struct {
	// Line is the 1-based line number in the source, or the 1-based record
	// ordinal for defects raised after parsing.
	Line int
	Kind DefectKind
	// Field names the offending column when known.
	Field string
	// Content holds the offending line, truncated to maxDefectContent bytes.
	Content string
}

func (d Defect) String() string {
	if d.Field != "" {
		return fmt.Sprintf("line %d: %s (%s): %q", d.Line, d.Kind, d.Field, d.Content)
	}
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Kind, d.Content)
}

// DefectList accumulates per-line defects during a load.  The zero value is
// ready to use.
type DefectList struct {
	defects []Defect
}

// Add appends a defect, truncating content as needed.
func (l *DefectList) Add(line int, kind DefectKind, field, content string) {
	if len(content) > maxDefectContent {
		content = content[:maxDefectContent]
	}
	l.defects = append(l.defects, Defect{Line: line, Kind: kind, Field: field, Content: content})
}

// Defects returns the accumulated defects in input order.
func (l *DefectList) Defects() []Defect { return l.defects }

// Len returns the number of accumulated defects.
func (l *DefectList) Len() int { return len(l.defects) }
