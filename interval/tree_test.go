package interval_test

import (
	"testing"

	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/grailbio/featfmt/interval"
	"github.com/grailbio/testutil/expect"
)

func TestTreeOverlapping(t *testing.T) {
	recs := []bed.Record{
		rec("chr1", 0, 10),
		rec("chr1", 5, 15),
		rec("chr1", 20, 30),
		rec("chr2", 0, 10),
	}
	tree := interval.NewTree(recs)

	got := spans(tree.Overlapping("chr1", 8, 9))
	expect.EQ(t, got, [][3]interface{}{{"chr1", 0, 10}, {"chr1", 5, 15}})

	// Half-open: a query starting at an end coordinate does not match.
	expect.EQ(t, len(tree.Overlapping("chr1", 15, 20)), 0)
	expect.EQ(t, len(tree.Overlapping("chr3", 0, 100)), 0)

	expect.True(t, tree.AnyOverlap("chr2", 5, 6))
	expect.False(t, tree.AnyOverlap("chr2", 10, 20))
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    interval.Region
		wantErr bool
	}{
		{"chr1:101-200", interval.Region{Chrom: "chr1", Start: 100, End: 200}, false},
		{"chr1:101", interval.Region{Chrom: "chr1", Start: 100, End: 101}, false},
		{"chr1", interval.Region{Chrom: "chr1", Start: 0, End: 1<<31 - 2}, false},
		{"", interval.Region{}, true},
		{":1-10", interval.Region{}, true},
		{"chr1:0", interval.Region{}, true},
		{"chr1:200-100", interval.Region{}, true},
		{"chr1:x-y", interval.Region{}, true},
	}
	for _, tt := range tests {
		got, err := interval.ParseRegion(tt.in)
		if tt.wantErr {
			expect.NotNil(t, err, "in=%q", tt.in)
			continue
		}
		expect.Nil(t, err, "in=%q", tt.in)
		expect.EQ(t, got, tt.want, "in=%q", tt.in)
	}
}

func TestSelect(t *testing.T) {
	recs := []bed.Record{
		rec("chr1", 0, 10),
		rec("chr1", 50, 60),
		rec("chr2", 0, 10),
	}
	got := spans(interval.Select(recs, interval.Region{Chrom: "chr1", Start: 5, End: 55}))
	expect.EQ(t, got, [][3]interface{}{{"chr1", 0, 10}, {"chr1", 50, 60}})
}
