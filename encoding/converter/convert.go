// Package converter implements bidirectional conversion between BED and
// GFF3 record streams.
//
// The two formats disagree on coordinate base: BED intervals are 0-based
// half-open, GFF3 features 1-based inclusive, so gff.start = bed.start + 1
// while the end coordinate carries over unchanged.  BED's optional columns
// have no GFF columns of their own and travel as key=value attributes.
//
// Round-tripping BED -> GFF -> BED is not guaranteed to be the identity:
// fields with no attribute-key convention are dropped, and a record whose
// pre-existing attributes collide with the configured name/score keys will
// resolve them in the attributes' favor.
package converter

import (
	"strconv"
	"strings"

	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/grailbio/featfmt/encoding/gff"
	"github.com/grailbio/featfmt/encoding/tabio"
)

// Opts defines the conversion configuration surface.
type Opts struct {
	// FeatureType fills the GFF type column for BED-derived features.
	FeatureType string
	// Source fills the GFF source column for BED-derived features.
	Source string
	// NameAttr is the GFF attribute consulted for the BED name, before
	// falling back to the ID attribute, the type column, and ".".
	NameAttr string
	// ScoreAttr is the GFF attribute consulted for the BED score, before
	// falling back to the score column and DefaultScore.
	ScoreAttr string
	// DefaultScore is the BED score used when neither attribute nor column
	// provides one.
	DefaultScore string
}

// DefaultOpts holds the documented conversion defaults.
var DefaultOpts = Opts{
	FeatureType:  "region",
	Source:       "bed2gff",
	NameAttr:     "Name",
	ScoreAttr:    "score",
	DefaultScore: "0",
}

func fillOpts(opts Opts) Opts {
	if opts.FeatureType == "" {
		opts.FeatureType = DefaultOpts.FeatureType
	}
	if opts.Source == "" {
		opts.Source = DefaultOpts.Source
	}
	if opts.NameAttr == "" {
		opts.NameAttr = DefaultOpts.NameAttr
	}
	if opts.ScoreAttr == "" {
		opts.ScoreAttr = DefaultOpts.ScoreAttr
	}
	if opts.DefaultScore == "" {
		opts.DefaultScore = DefaultOpts.DefaultScore
	}
	return opts
}

// Attribute keys used for BED optional columns on the GFF side.  Block
// starts are stored as absolute 1-based coordinates; see GFFToBED for the
// caveat on that convention.
const (
	attrThickStart  = "thick_start"
	attrThickEnd    = "thick_end"
	attrRGB         = "rgb"
	attrBlockCount  = "block_count"
	attrBlockSizes  = "block_sizes"
	attrBlockStarts = "block_starts"
)

// BEDToGFF converts BED records to GFF3 features.  The source records are
// never mutated.  Optional BED columns are synthesized as attributes, each
// included only when present and non-default; the BED score moves to the
// GFF score column.
func BEDToGFF(recs []bed.Record, opts Opts) []gff.Record {
	opts = fillOpts(opts)
	out := make([]gff.Record, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		g := gff.Record{
			SeqID:    r.Chrom,
			Source:   opts.Source,
			Type:     opts.FeatureType,
			Start:    r.Start + 1,
			End:      r.End, // BED end is exclusive; equals GFF inclusive end after the shift
			HasStart: true,
			HasEnd:   true,
			Strand:   r.Strand,
			Phase:    ".",
		}
		if r.NFields > 4 {
			g.Score = r.Score
			g.HasScore = true
		}
		attrs := tabio.NewAttrs()
		if r.Name != "" && r.Name != "." {
			attrs.Set(opts.NameAttr, r.Name)
		}
		if r.NFields > 6 && (r.ThickStart != r.Start || r.ThickEnd != r.End) {
			attrs.Set(attrThickStart, strconv.Itoa(r.ThickStart+1)) // 1-based
			attrs.Set(attrThickEnd, strconv.Itoa(r.ThickEnd))
		}
		if r.NFields > 8 && r.ItemRGB != (bed.RGB{}) {
			attrs.Set(attrRGB, r.ItemRGB.String())
		}
		if r.BlockCount > 0 {
			attrs.Set(attrBlockCount, strconv.Itoa(r.BlockCount))
			attrs.Set(attrBlockSizes, joinInts(r.BlockSizes))
			abs := make([]int, len(r.BlockStarts))
			for j, rel := range r.BlockStarts {
				abs[j] = g.Start + rel
			}
			attrs.Set(attrBlockStarts, joinInts(abs))
		}
		if attrs.Len() > 0 {
			g.SetAttrs(attrs)
		}
		out = append(out, g)
	}
	return out
}

// GFFToBED converts GFF3 features to BED records.  The source records are
// never mutated.  Records that cannot be converted are skipped and reported
// on the returned defect list, keyed by 1-based record ordinal.
//
// Optional BED columns are reconstructed from the thick_start/thick_end/
// rgb/block_count/block_sizes/block_starts attributes, each independently
// optional.  block_starts values are assumed to hold absolute 1-based
// coordinates and are rebased to abs - start - 1; that convention is not
// standardized, so inputs produced by other tools may need rewriting first.
func GFFToBED(recs []gff.Record, opts Opts) ([]bed.Record, *tabio.DefectList) {
	opts = fillOpts(opts)
	defects := &tabio.DefectList{}
	out := make([]bed.Record, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		if r.SeqID == "" || r.SeqID == "." {
			defects.Add(i+1, tabio.ConversionMissingRequiredAttribute, "seqid", r.String())
			continue
		}
		start := 0
		if r.HasStart {
			start = r.Start - 1
		}
		end := start + 1
		if r.HasEnd {
			end = r.End
		}
		if end <= start {
			defects.Add(i+1, tabio.InvalidCoordinateOrder, "", r.String())
			continue
		}
		attrs := r.Attrs()
		b := bed.Record{
			Chrom:      r.SeqID,
			Start:      start,
			End:        end,
			Name:       resolveName(attrs, r.Type, opts),
			Score:      resolveScore(attrs, r, opts),
			Strand:     ".",
			ThickStart: start,
			ThickEnd:   end,
			NFields:    6,
		}
		if r.Strand == "+" || r.Strand == "-" {
			b.Strand = r.Strand
		}
		if v, ok := attrs.Get(attrThickStart); ok {
			if ts, numOK := tabio.CoerceInt(v); numOK {
				b.ThickStart = ts - 1 // attribute is 1-based
				b.NFields = 8
			}
		}
		if v, ok := attrs.Get(attrThickEnd); ok {
			if te, numOK := tabio.CoerceInt(v); numOK {
				b.ThickEnd = te
				b.NFields = 8
			}
		}
		if b.NFields > 6 {
			b.ThickStart = tabio.Clamp(b.ThickStart, b.Start, b.End)
			b.ThickEnd = tabio.Clamp(b.ThickEnd, b.Start, b.End)
		}
		if v, ok := attrs.Get(attrRGB); ok {
			cr, cg, cb, _ := tabio.CoerceRGB(v)
			b.ItemRGB = bed.RGB{
				R: uint8(tabio.Clamp(cr, 0, 255)),
				G: uint8(tabio.Clamp(cg, 0, 255)),
				B: uint8(tabio.Clamp(cb, 0, 255)),
			}
			b.NFields = 9
		}
		if blocks, ok := resolveBlocks(attrs, start, end); ok {
			b.BlockCount = blocks.count
			b.BlockSizes = blocks.sizes
			b.BlockStarts = blocks.starts
			b.NFields = 12
		}
		out = append(out, b)
	}
	return out, defects
}

func resolveName(attrs *tabio.Attrs, typ string, opts Opts) string {
	if v, ok := attrs.Get(opts.NameAttr); ok && v != "" {
		return v
	}
	if v, ok := attrs.Get("ID"); ok && v != "" {
		return v
	}
	if typ != "" && typ != "." {
		return typ
	}
	return "."
}

func resolveScore(attrs *tabio.Attrs, r *gff.Record, opts Opts) float64 {
	if v, ok := attrs.Get(opts.ScoreAttr); ok {
		if f, numOK := tabio.CoerceFloat(v); numOK {
			return tabio.ClampFloat(f, 0, 1000)
		}
	}
	if r.HasScore {
		return tabio.ClampFloat(r.Score, 0, 1000)
	}
	f, _ := tabio.CoerceFloat(opts.DefaultScore)
	return tabio.ClampFloat(f, 0, 1000)
}

type blockSet struct {
	count  int
	sizes  []int
	starts []int
}

func resolveBlocks(attrs *tabio.Attrs, start, end int) (blockSet, bool) {
	countText, ok := attrs.Get(attrBlockCount)
	if !ok {
		return blockSet{}, false
	}
	count, ok := tabio.CoerceInt(countText)
	if !ok {
		return blockSet{}, false
	}
	sizesText, _ := attrs.Get(attrBlockSizes)
	startsText, _ := attrs.Get(attrBlockStarts)
	sizes, ok := tabio.CoerceIntList(sizesText)
	if !ok {
		return blockSet{}, false
	}
	absStarts, ok := tabio.CoerceIntList(startsText)
	if !ok {
		return blockSet{}, false
	}
	if len(sizes) != len(absStarts) || len(sizes) != count {
		return blockSet{}, false
	}
	starts := make([]int, len(absStarts))
	for i, abs := range absStarts {
		starts[i] = abs - start - 1
		if starts[i] < 0 || start+starts[i]+sizes[i] > end {
			return blockSet{}, false
		}
	}
	return blockSet{count: count, sizes: sizes, starts: starts}, true
}

func joinInts(list []int) string {
	var sb strings.Builder
	for i, v := range list {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
