package bed

import (
	"bufio"
	"errors"
	"io"
	"strings"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/featfmt/encoding/tabio"
)

// ErrNoRecords is returned by Read when the source yielded zero valid
// records.  The returned Set is still populated with any header lines and
// defects, so callers can inspect why and fall back to a generic tabular
// view.
var ErrNoRecords = errors.New("bed: no valid records")

// ReadOpts defines behavior of this package's BED-loading functions.
type ReadOpts struct {
	// SkipValidation emits records even when start/end fail the coordinate
	// order invariant.  Defects are still collected.
	SkipValidation bool
	// DefaultName substitutes for an absent name column.
	DefaultName string
	// DefaultScore substitutes for an absent or non-numeric score column.
	// It is parsed as a float; unparseable values fall back to 0.
	DefaultScore string
	// DefaultStrand substitutes for an absent or unrecognized strand column.
	DefaultStrand string
}

// DefaultOpts holds the documented BED defaults.
var DefaultOpts = ReadOpts{
	DefaultName:   ".",
	DefaultScore:  "0",
	DefaultStrand: ".",
}

// Set is the result of one load: the validated record stream, retained
// header metadata, and per-line diagnostics.
type Set struct {
	Records []Record
	Header  []HeaderLine
	Defects tabio.DefectList
}

// bedSchema is the declarative column table for the typed BED columns.
// Column 0 (chrom) and the list columns (blockSizes, blockStarts) have
// bespoke handling in parseData.
var bedSchema = [MaxFields]tabio.Column{
	colChrom:      {Name: "chrom", Index: colChrom, Kind: tabio.RawString},
	colStart:      {Name: "chromStart", Index: colStart, Kind: tabio.Integer},
	colEnd:        {Name: "chromEnd", Index: colEnd, Kind: tabio.Integer},
	colName:       {Name: "name", Index: colName, Kind: tabio.RawString},
	colScore:      {Name: "score", Index: colScore, Kind: tabio.Float},
	colStrand:     {Name: "strand", Index: colStrand, Kind: tabio.Enum, Tokens: []string{"+", "-", "."}},
	colThickStart: {Name: "thickStart", Index: colThickStart, Kind: tabio.Integer},
	colThickEnd:   {Name: "thickEnd", Index: colThickEnd, Kind: tabio.Integer},
	colItemRGB:    {Name: "itemRgb", Index: colItemRGB, Kind: tabio.RawString},
	colBlockCount: {Name: "blockCount", Index: colBlockCount, Kind: tabio.Integer},
	colBlockSizes: {Name: "blockSizes", Index: colBlockSizes, Kind: tabio.RawString},
	colBlockStarts: {Name: "blockStarts", Index: colBlockStarts,
		Kind: tabio.RawString},
}

type parser struct {
	opts         ReadOpts
	defaultScore float64
	strandCol    tabio.Column
	set          *Set
}

// Read parses BED text into a Set.  Per-line defects never abort the load;
// only a read failure on the underlying source returns a non-nil error,
// except that a structurally sound source with zero valid records returns
// the Set alongside ErrNoRecords.
func Read(r io.Reader, opts ReadOpts) (*Set, error) {
	opts = fillOpts(opts)
	p := &parser{opts: opts, set: &Set{}}
	p.defaultScore, _ = tabio.CoerceFloat(opts.DefaultScore)
	p.strandCol = bedSchema[colStrand]
	p.strandCol.Default = opts.DefaultStrand

	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	var fields [][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		line := scanner.Bytes()
		switch class := tabio.Classify(gunsafe.BytesToString(line)); class {
		case tabio.Blank:
			continue
		case tabio.Comment, tabio.TrackHeader, tabio.BrowserHeader:
			p.set.Header = append(p.set.Header, HeaderLine{Raw: string(line), Class: class})
			continue
		}
		fields = tabio.TokenizeTabs(fields[:0], line)
		p.parseData(lineIdx, line, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.set.Records) == 0 {
		return p.set, ErrNoRecords
	}
	return p.set, nil
}

func fillOpts(opts ReadOpts) ReadOpts {
	if opts.DefaultName == "" {
		opts.DefaultName = DefaultOpts.DefaultName
	}
	if opts.DefaultScore == "" {
		opts.DefaultScore = DefaultOpts.DefaultScore
	}
	if opts.DefaultStrand == "" {
		opts.DefaultStrand = DefaultOpts.DefaultStrand
	}
	return opts
}

// parseData runs one data line through the record state machine.  A record
// is appended only after every validation step passes; a rejected line
// leaves no partial record behind.
func (p *parser) parseData(lineIdx int, line []byte, fields [][]byte) {
	defects := &p.set.Defects
	if len(fields) < MinFields {
		defects.Add(lineIdx, tabio.TooFewFields, "", string(line))
		return
	}
	chrom := string(fields[colChrom])
	if strings.TrimSpace(chrom) == "" {
		defects.Add(lineIdx, tabio.EmptySequenceName, bedSchema[colChrom].Name, string(line))
		return
	}
	start, ok := tabio.CoerceInt(gunsafe.BytesToString(fields[colStart]))
	if !ok {
		defects.Add(lineIdx, tabio.NonNumericCoordinate, bedSchema[colStart].Name, string(line))
		return
	}
	end, ok := tabio.CoerceInt(gunsafe.BytesToString(fields[colEnd]))
	if !ok {
		defects.Add(lineIdx, tabio.NonNumericCoordinate, bedSchema[colEnd].Name, string(line))
		return
	}
	if start < 0 || end <= start {
		// Never auto-swap or clamp a malformed interval.
		defects.Add(lineIdx, tabio.InvalidCoordinateOrder, "", string(line))
		if !p.opts.SkipValidation {
			return
		}
	}

	nFields := len(fields)
	if nFields > MaxFields {
		nFields = MaxFields
	}
	rec := Record{
		Chrom:      chrom,
		Start:      start,
		End:        end,
		Name:       p.opts.DefaultName,
		Score:      p.defaultScore,
		Strand:     p.opts.DefaultStrand,
		ThickStart: start,
		ThickEnd:   end,
		NFields:    nFields,
	}
	if nFields > colName {
		if name := string(fields[colName]); name != "" {
			rec.Name = name
		}
	}
	if nFields > colScore {
		if score, ok := tabio.CoerceFloat(gunsafe.BytesToString(fields[colScore])); ok {
			rec.Score = score
		}
	}
	rec.Score = tabio.ClampFloat(rec.Score, 0, 1000)
	if nFields > colStrand {
		v, _ := p.strandCol.Coerce(gunsafe.BytesToString(fields[colStrand]))
		rec.Strand = v.Str
	}
	if nFields > colThickStart {
		// Malformed thick coordinates default to start/end rather than
		// rejecting the record.
		if ts, ok := tabio.CoerceInt(gunsafe.BytesToString(fields[colThickStart])); ok {
			rec.ThickStart = ts
		}
		if nFields > colThickEnd {
			if te, ok := tabio.CoerceInt(gunsafe.BytesToString(fields[colThickEnd])); ok {
				rec.ThickEnd = te
			}
		}
		rec.ThickStart = tabio.Clamp(rec.ThickStart, rec.Start, rec.End)
		rec.ThickEnd = tabio.Clamp(rec.ThickEnd, rec.Start, rec.End)
	}
	if nFields > colItemRGB {
		// Unparseable colors degrade to the neutral 0,0,0.
		r, g, b, _ := tabio.CoerceRGB(gunsafe.BytesToString(fields[colItemRGB]))
		rec.ItemRGB = RGB{
			R: uint8(tabio.Clamp(r, 0, 255)),
			G: uint8(tabio.Clamp(g, 0, 255)),
			B: uint8(tabio.Clamp(b, 0, 255)),
		}
	}
	if nFields > colBlockCount {
		if !p.parseBlocks(&rec, fields, nFields) {
			// A partial-block record is never emitted: coordinates stay
			// usable, all blocks are dropped.
			rec.BlockCount = 0
			rec.BlockSizes = nil
			rec.BlockStarts = nil
			defects.Add(lineIdx, tabio.InvalidBlockStructure, "", string(line))
		}
	}
	p.set.Records = append(p.set.Records, rec)
}

// parseBlocks fills the block fields, reporting whether the block structure
// is internally consistent and contained in [rec.Start, rec.End).
func (p *parser) parseBlocks(rec *Record, fields [][]byte, nFields int) bool {
	if nFields <= colBlockStarts {
		return false // blockCount without both lists
	}
	count, ok := tabio.CoerceInt(gunsafe.BytesToString(fields[colBlockCount]))
	if !ok {
		return false
	}
	sizes, ok := tabio.CoerceIntList(gunsafe.BytesToString(fields[colBlockSizes]))
	if !ok {
		return false
	}
	starts, ok := tabio.CoerceIntList(gunsafe.BytesToString(fields[colBlockStarts]))
	if !ok {
		return false
	}
	if len(sizes) != len(starts) || len(sizes) != count {
		return false
	}
	for i := range sizes {
		if sizes[i] < 0 || starts[i] < 0 {
			return false
		}
		if rec.Start+starts[i]+sizes[i] > rec.End {
			return false
		}
	}
	rec.BlockCount = count
	rec.BlockSizes = sizes
	rec.BlockStarts = starts
	return true
}
