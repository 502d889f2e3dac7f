package interval

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/grailbio/featfmt/encoding/bed"
)

// maxEnd is the open upper bound used when a region has no positional
// restriction.
const maxEnd = math.MaxInt32 - 1

// Region is a single query interval with 0-based half-open coordinates.
type Region struct {
	Chrom string
	Start int
	End   int
}

// ParseRegion parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, 2^31-2) is returned if there is no positional restriction.
func ParseRegion(region string) (Region, error) {
	if len(region) == 0 {
		return Region{}, errors.New("interval.ParseRegion: empty region string")
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		return Region{Chrom: region, Start: 0, End: maxEnd}, nil
	}
	if colonPos == 0 {
		return Region{}, errors.New("interval.ParseRegion: empty contig ID")
	}
	result := Region{Chrom: region[:colonPos]}
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		pos1, err := strconv.Atoi(rangeStr)
		if err != nil {
			return Region{}, errors.Wrap(err, "interval.ParseRegion")
		}
		if pos1 <= 0 {
			return Region{}, errors.Errorf("interval.ParseRegion: position %v out of range", rangeStr)
		}
		result.Start = pos1 - 1
		result.End = pos1
		return result, nil
	}
	start1, err := strconv.Atoi(rangeStr[:dashPos])
	if err != nil {
		return Region{}, errors.Wrap(err, "interval.ParseRegion")
	}
	if start1 <= 0 {
		return Region{}, errors.Errorf("interval.ParseRegion: position %v out of range", rangeStr[:dashPos])
	}
	end, err := strconv.Atoi(rangeStr[dashPos+1:])
	if err != nil {
		return Region{}, errors.Wrap(err, "interval.ParseRegion")
	}
	if end <= start1 || end > maxEnd {
		return Region{}, errors.Errorf("interval.ParseRegion: invalid range string %v", rangeStr)
	}
	result.Start = start1 - 1
	result.End = end
	return result, nil
}

// Select returns copies of the records overlapping the region, in input
// order.
func Select(recs []bed.Record, region Region) []bed.Record {
	var out []bed.Record
	for i := range recs {
		r := &recs[i]
		if r.Chrom == region.Chrom && r.Start < region.End && region.Start < r.End {
			out = append(out, *r)
		}
	}
	return out
}
