package interval

import "github.com/grailbio/featfmt/encoding/bed"

// ChromStats summarizes the records on one chromosome.
type ChromStats struct {
	Count      int
	TotalBases int
	MinLen     int
	MaxLen     int
}

// MeanLen returns the mean record length, or 0 for an empty chromosome.
func (c ChromStats) MeanLen() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.TotalBases) / float64(c.Count)
}

// Summary aggregates region statistics for one record stream.
type Summary struct {
	Regions int
	// Bases counts record lengths without deduplicating overlap; merge the
	// stream first for a covered-base count.
	Bases   int
	Strands map[string]int
	Chroms  map[string]ChromStats
}

// Summarize computes summary statistics over recs.
func Summarize(recs []bed.Record) Summary {
	s := Summary{
		Strands: make(map[string]int),
		Chroms:  make(map[string]ChromStats),
	}
	for i := range recs {
		r := &recs[i]
		n := r.Len()
		s.Regions++
		s.Bases += n
		s.Strands[r.Strand]++
		cs, ok := s.Chroms[r.Chrom]
		if !ok {
			cs.MinLen = n
			cs.MaxLen = n
		} else {
			if n < cs.MinLen {
				cs.MinLen = n
			}
			if n > cs.MaxLen {
				cs.MaxLen = n
			}
		}
		cs.Count++
		cs.TotalBases += n
		s.Chroms[r.Chrom] = cs
	}
	return s
}
