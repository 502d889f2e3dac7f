package interval

import (
	biointerval "github.com/biogo/store/interval"

	"github.com/grailbio/featfmt/encoding/bed"
)

type treeEntry struct {
	start, end int
	id         uintptr
}

func (e treeEntry) Overlap(b biointerval.IntRange) bool {
	// Half-open interval indexing.
	return e.end > b.Start && e.start < b.End
}
func (e treeEntry) ID() uintptr                  { return e.id }
func (e treeEntry) Range() biointerval.IntRange { return biointerval.IntRange{Start: e.start, End: e.end} }

// Tree indexes a record sequence by chromosome for overlap queries.  The
// records are copied at construction; later mutation of the source slice
// does not affect the index.
type Tree struct {
	recs  []bed.Record
	trees map[string]*biointerval.IntTree
}

// NewTree builds an index over recs.
func NewTree(recs []bed.Record) *Tree {
	t := &Tree{
		recs:  append([]bed.Record(nil), recs...),
		trees: make(map[string]*biointerval.IntTree),
	}
	for i := range t.recs {
		r := &t.recs[i]
		tree, ok := t.trees[r.Chrom]
		if !ok {
			tree = &biointerval.IntTree{}
			t.trees[r.Chrom] = tree
		}
		_ = tree.Insert(treeEntry{start: r.Start, end: r.End, id: uintptr(i)}, false)
	}
	return t
}

// Overlapping returns copies of all records overlapping the 0-based
// half-open query [start, end) on chrom, in positional order.
func (t *Tree) Overlapping(chrom string, start, end int) []bed.Record {
	tree := t.trees[chrom]
	if tree == nil {
		return nil
	}
	q := treeEntry{start: start, end: end, id: uintptr(len(t.recs))}
	var out []bed.Record
	tree.DoMatching(func(iv biointerval.IntInterface) bool {
		out = append(out, t.recs[iv.ID()])
		return false
	}, q)
	return out
}

// AnyOverlap reports whether any indexed record overlaps [start, end) on
// chrom, without materializing matches.
func (t *Tree) AnyOverlap(chrom string, start, end int) bool {
	tree := t.trees[chrom]
	if tree == nil {
		return false
	}
	q := treeEntry{start: start, end: end, id: uintptr(len(t.recs))}
	found := false
	tree.DoMatching(func(biointerval.IntInterface) bool {
		found = true
		return true
	}, q)
	return found
}
