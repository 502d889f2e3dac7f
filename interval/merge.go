package interval

import (
	"sort"

	"github.com/grailbio/featfmt/encoding/bed"
)

// Merge collapses overlapping or book-ended records on the same chromosome
// into single intervals.  The input is stable-sorted by (chrom, start) on a
// copy; for equal starts the first-encountered record seeds the run.  The
// merged record keeps the name, score, and strand of the first record of
// its run, so identity fields are lossy by construction.
//
// Merge is idempotent, never increases the record count, and its output
// contains no two overlapping or adjacent records with the same chromosome.
func Merge(recs []bed.Record) []bed.Record {
	if len(recs) == 0 {
		return nil
	}
	sorted := make([]bed.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Chrom != sorted[j].Chrom {
			return sorted[i].Chrom < sorted[j].Chrom
		}
		return sorted[i].Start < sorted[j].Start
	})

	out := make([]bed.Record, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.Chrom == cur.Chrom && next.Start <= cur.End {
			if next.End > cur.End {
				cur.End = next.End
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

// DistanceToNext returns, for each record, the gap in bases to the next
// record on the same chromosome in input order, or -1 when there is none.
// Overlapping neighbors yield negative gaps bounded below by -len.
func DistanceToNext(recs []bed.Record) []int {
	out := make([]int, len(recs))
	for i := range recs {
		out[i] = -1
		for j := i + 1; j < len(recs); j++ {
			if recs[j].Chrom == recs[i].Chrom {
				out[i] = recs[j].Start - recs[i].End
				break
			}
		}
	}
	return out
}

// FilterBySize returns the records whose length is in [min, max], in input
// order.  A negative max means unbounded.
func FilterBySize(recs []bed.Record, min, max int) []bed.Record {
	out := make([]bed.Record, 0, len(recs))
	for i := range recs {
		n := recs[i].Len()
		if n < min {
			continue
		}
		if max >= 0 && n > max {
			continue
		}
		out = append(out, recs[i])
	}
	return out
}
