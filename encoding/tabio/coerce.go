package tabio

import (
	"strconv"
	"strings"
)

// Kind is the semantic type of a column.
type Kind int

const (
	// RawString passes the field through untouched.
	RawString Kind = iota
	// Integer coerces with strconv.Atoi.
	Integer
	// Float coerces with strconv.ParseFloat.
	Float
	// Enum restricts the field to a fixed token set.
	Enum
)

// Column describes one field of a tab-delimited schema.  A table of Columns
// replaces per-column bespoke accessors: the parser walks the table and feeds
// each raw field through Coerce.
type Column struct {
	Name  string
	Index int
	Kind  Kind
	// Tokens is the accepted set for Enum columns.
	Tokens []string
	// Default, when non-empty, substitutes for an unrecognized Enum token
	// without raising a defect (BED strand).  When empty, an unrecognized
	// token raises UnrecognizedEnum and the raw token is kept (GFF strand,
	// GFF phase).
	Default string
}

// Value is the typed result of coercing one field.
type Value struct {
	Kind  Kind
	Int   int
	Float float64
	Str   string
}

// Coerce converts raw text according to the column's kind.  The returned
// DefectKind is zero on success.  Enum handling follows Column.Default; see
// its doc comment.
func (c Column) Coerce(raw string) (Value, DefectKind) {
	switch c.Kind {
	case Integer:
		n, ok := CoerceInt(raw)
		if !ok {
			return Value{Kind: Integer}, NonNumericCoordinate
		}
		return Value{Kind: Integer, Int: n}, 0
	case Float:
		f, ok := CoerceFloat(raw)
		if !ok {
			return Value{Kind: Float}, NonNumericCoordinate
		}
		return Value{Kind: Float, Float: f}, 0
	case Enum:
		for _, tok := range c.Tokens {
			if raw == tok {
				return Value{Kind: Enum, Str: raw}, 0
			}
		}
		if c.Default != "" {
			return Value{Kind: Enum, Str: c.Default}, 0
		}
		return Value{Kind: Enum, Str: raw}, UnrecognizedEnum
	}
	return Value{Kind: RawString, Str: raw}, 0
}

// CoerceInt converts raw text to an integer, reporting failure instead of
// returning an error so hot parse loops stay allocation-free.
func CoerceInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CoerceFloat converts raw text to a float64.
func CoerceFloat(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CoerceRGB parses an itemRgb field in either "r,g,b" or "#rrggbb" form.
// Channel values are returned as parsed, without clamping; the record
// builder applies the [0, 255] clamp.  On any parse failure the neutral
// (0, 0, 0) is returned with ok=false so the caller can degrade rather than
// reject the record.
func CoerceRGB(raw string) (r, g, b int, ok bool) {
	if strings.HasPrefix(raw, "#") {
		hex := raw[1:]
		if len(hex) != 6 {
			return 0, 0, 0, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		return int(n >> 16), int(n >> 8 & 0xff), int(n & 0xff), true
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var ch [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, false
		}
		ch[i] = n
	}
	return ch[0], ch[1], ch[2], true
}

// CoerceIntList parses a comma-separated integer list (BED blockSizes,
// blockStarts).  A trailing comma is tolerated, as UCSC tools emit one.
func CoerceIntList(raw string) ([]int, bool) {
	raw = strings.TrimSuffix(raw, ",")
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat limits v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
