package gff

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/grailbio/featfmt/encoding/tabio"
)

// ErrNoRecords is returned by Read when the source yielded zero valid
// records; the returned Set still carries pragmas and defects.
var ErrNoRecords = errors.New("gff: no valid records")

// ReadOpts defines behavior of this package's GFF-loading functions.
type ReadOpts struct {
	// SkipValidation pads short lines with '.' columns and emits records
	// that fail the coordinate invariants.  Defects are still collected.
	SkipValidation bool
}

// Set is the result of one load.
type Set struct {
	Records []Record
	// Pragmas holds "##..." directive lines in input order, including any
	// gff-version pragma.  Plain "#" comments are not retained.
	Pragmas []string
	Defects tabio.DefectList
}

var (
	strandCol = tabio.Column{Name: "strand", Index: 6, Kind: tabio.Enum,
		Tokens: []string{"+", "-", ".", "?"}}
	phaseCol = tabio.Column{Name: "phase", Index: 7, Kind: tabio.Enum,
		Tokens: []string{"0", "1", "2", "."}}
)

// Read parses GFF3 text into a Set.  Per-line defects never abort the load;
// see the package comment for the strictness policy.
func Read(r io.Reader, opts ReadOpts) (*Set, error) {
	set := &Set{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		line := scanner.Text()
		switch tabio.Classify(line) {
		case tabio.Blank:
			continue
		case tabio.Comment:
			if strings.HasPrefix(line, "##") {
				set.Pragmas = append(set.Pragmas, line)
			}
			continue
		}
		// "track"/"browser" lines are not part of GFF3; treat them as data
		// so they surface as TooFewFields defects instead of vanishing.
		parseData(set, opts, lineIdx, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(set.Records) == 0 {
		return set, ErrNoRecords
	}
	return set, nil
}

func parseData(set *Set, opts ReadOpts, lineIdx int, line string) {
	defects := &set.Defects
	fields := tabio.SplitFields(line)
	if len(fields) < NumFields {
		defects.Add(lineIdx, tabio.TooFewFields, "", line)
		if !opts.SkipValidation {
			return
		}
		// Missing trailing columns are padded with '.', never with "".
		for len(fields) < NumFields {
			fields = append(fields, ".")
		}
	}

	rec := Record{
		SeqID:    fields[0],
		Source:   fields[1],
		Type:     fields[2],
		attrText: fields[8],
	}
	if strings.TrimSpace(rec.SeqID) == "" {
		defects.Add(lineIdx, tabio.EmptySequenceName, "seqid", line)
		return
	}
	start, hasStart, ok := parseCoord(fields[3])
	if !ok {
		defects.Add(lineIdx, tabio.NonNumericCoordinate, "start", line)
		return
	}
	end, hasEnd, ok := parseCoord(fields[4])
	if !ok {
		defects.Add(lineIdx, tabio.NonNumericCoordinate, "end", line)
		return
	}
	rec.Start, rec.HasStart = start, hasStart
	rec.End, rec.HasEnd = end, hasEnd
	// 1-based inclusive coordinates: start >= 1 and end >= start, checked
	// only when both are present ('.' is a legal absent coordinate).
	if (rec.HasStart && rec.Start < 1) || (rec.HasStart && rec.HasEnd && rec.End < rec.Start) {
		defects.Add(lineIdx, tabio.InvalidCoordinateOrder, "", line)
		if !opts.SkipValidation {
			return
		}
	}
	if fields[5] != "." {
		if score, numOK := tabio.CoerceFloat(fields[5]); numOK {
			rec.Score = score // unbounded, never clamped
			rec.HasScore = true
		} else {
			defects.Add(lineIdx, tabio.NonNumericCoordinate, "score", line)
		}
	}
	v, kind := strandCol.Coerce(fields[6])
	rec.Strand = v.Str
	if kind != 0 {
		// Reported but retained; GFF enum defects do not block emission.
		defects.Add(lineIdx, kind, strandCol.Name, line)
	}
	v, kind = phaseCol.Coerce(fields[7])
	rec.Phase = v.Str
	if kind != 0 {
		defects.Add(lineIdx, kind, phaseCol.Name, line)
	}
	set.Records = append(set.Records, rec)
}

func parseCoord(raw string) (int, bool, bool) {
	if raw == "." {
		return 0, false, true
	}
	n, ok := tabio.CoerceInt(raw)
	if !ok {
		return 0, false, false
	}
	return n, true, true
}
