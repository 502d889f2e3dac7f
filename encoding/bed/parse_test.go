package bed_test

import (
	"strings"
	"testing"

	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/grailbio/featfmt/encoding/tabio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, text string) *bed.Set {
	set, err := bed.Read(strings.NewReader(text), bed.ReadOpts{})
	require.NoError(t, err)
	return set
}

func TestReadMinimal(t *testing.T) {
	set := mustRead(t, "chr1\t100\t200\nchr2\t0\t50\n")
	require.Equal(t, 2, len(set.Records))
	r := set.Records[0]
	assert.Equal(t, "chr1", r.Chrom)
	assert.Equal(t, 100, r.Start)
	assert.Equal(t, 200, r.End)
	assert.Equal(t, ".", r.Name)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, ".", r.Strand)
	assert.Equal(t, 3, r.NFields)
	assert.Equal(t, 0, set.Defects.Len())
}

func TestReadFull12Columns(t *testing.T) {
	set := mustRead(t, "chr1\t100\t130\texon1\t960\t+\t105\t125\t255,0,0\t2\t10,20\t0,5\n")
	require.Equal(t, 1, len(set.Records))
	r := set.Records[0]
	assert.Equal(t, "exon1", r.Name)
	assert.Equal(t, 960.0, r.Score)
	assert.Equal(t, "+", r.Strand)
	assert.Equal(t, 105, r.ThickStart)
	assert.Equal(t, 125, r.ThickEnd)
	assert.Equal(t, bed.RGB{R: 255}, r.ItemRGB)
	assert.Equal(t, 2, r.BlockCount)
	assert.Equal(t, []int{10, 20}, r.BlockSizes)
	assert.Equal(t, []int{0, 5}, r.BlockStarts)
	assert.Equal(t, 12, r.NFields)
}

func TestRejectTooFewFields(t *testing.T) {
	set, err := bed.Read(strings.NewReader("chr1\t100\nchr1\t100\t200\n"), bed.ReadOpts{})
	require.NoError(t, err)
	require.Equal(t, 1, len(set.Records))
	require.Equal(t, 1, set.Defects.Len())
	assert.Equal(t, tabio.TooFewFields, set.Defects.Defects()[0].Kind)
	assert.Equal(t, 1, set.Defects.Defects()[0].Line)
}

func TestRejectCoordinateOrder(t *testing.T) {
	// end <= start is a hard error, never swapped or clamped.
	for _, line := range []string{"chr1\t200\t100", "chr1\t100\t100", "chr1\t-5\t100"} {
		set, err := bed.Read(strings.NewReader(line+"\nchr1\t1\t2\n"), bed.ReadOpts{})
		require.NoError(t, err, line)
		require.Equal(t, 1, len(set.Records), line)
		require.Equal(t, 1, set.Defects.Len(), line)
		assert.Equal(t, tabio.InvalidCoordinateOrder, set.Defects.Defects()[0].Kind, line)
	}
	for _, r := range mustRead(t, "chr1\t1\t2\nchr1\t5\t9\n").Records {
		assert.True(t, r.End > r.Start)
	}
}

func TestSkipValidation(t *testing.T) {
	set, err := bed.Read(strings.NewReader("chr1\t200\t100\n"), bed.ReadOpts{SkipValidation: true})
	require.NoError(t, err)
	require.Equal(t, 1, len(set.Records))
	// The defect is still recorded.
	require.Equal(t, 1, set.Defects.Len())
}

func TestRejectNonNumeric(t *testing.T) {
	set, err := bed.Read(strings.NewReader("chr1\tx\t200\n"), bed.ReadOpts{})
	assert.Equal(t, bed.ErrNoRecords, err)
	assert.Equal(t, 0, len(set.Records))
	require.Equal(t, 1, set.Defects.Len())
	assert.Equal(t, tabio.NonNumericCoordinate, set.Defects.Defects()[0].Kind)
	assert.Equal(t, "chromStart", set.Defects.Defects()[0].Field)
}

func TestRejectEmptyChrom(t *testing.T) {
	set, err := bed.Read(strings.NewReader("  \t100\t200\n"), bed.ReadOpts{})
	assert.Equal(t, bed.ErrNoRecords, err)
	require.Equal(t, 1, set.Defects.Len())
	assert.Equal(t, tabio.EmptySequenceName, set.Defects.Defects()[0].Kind)
}

func TestScoreClamp(t *testing.T) {
	set := mustRead(t, "chr1\t1\t2\tn\t-5\nchr1\t3\t4\tn\t5000\nchr1\t5\t6\tn\t500\n")
	require.Equal(t, 3, len(set.Records))
	assert.Equal(t, 0.0, set.Records[0].Score)
	assert.Equal(t, 1000.0, set.Records[1].Score)
	assert.Equal(t, 500.0, set.Records[2].Score)
}

func TestStrandDefault(t *testing.T) {
	set := mustRead(t, "chr1\t1\t2\tn\t0\t*\n")
	assert.Equal(t, ".", set.Records[0].Strand)

	set, err := bed.Read(strings.NewReader("chr1\t1\t2\tn\t0\t*\n"),
		bed.ReadOpts{DefaultStrand: "+"})
	require.NoError(t, err)
	assert.Equal(t, "+", set.Records[0].Strand)
}

func TestRGBCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want bed.RGB
	}{
		{"300,10,-5", bed.RGB{R: 255, G: 10, B: 0}},
		{"#ff0000", bed.RGB{R: 255}},
		{"0", bed.RGB{}},        // common shorthand for "no color"
		{"nonsense", bed.RGB{}}, // degrades to neutral
	}
	for _, tt := range tests {
		set := mustRead(t, "chr1\t1\t2\tn\t0\t+\t1\t2\t"+tt.raw+"\n")
		assert.Equal(t, tt.want, set.Records[0].ItemRGB, "raw=%q", tt.raw)
	}
}

func TestThickDefaults(t *testing.T) {
	// Malformed thick coordinates default to start/end, not rejection.
	set := mustRead(t, "chr1\t100\t200\tn\t0\t+\tx\ty\n")
	r := set.Records[0]
	assert.Equal(t, 100, r.ThickStart)
	assert.Equal(t, 200, r.ThickEnd)

	// Out-of-range thick coordinates clamp into [start, end].
	set = mustRead(t, "chr1\t100\t200\tn\t0\t+\t50\t500\n")
	r = set.Records[0]
	assert.Equal(t, 100, r.ThickStart)
	assert.Equal(t, 200, r.ThickEnd)
}

func TestBlockValidation(t *testing.T) {
	// Second block spans [105, 125), inside [100, 130): both retained.
	set := mustRead(t, "chr1\t100\t130\tn\t0\t+\t100\t130\t0\t2\t10,20\t0,5\n")
	r := set.Records[0]
	assert.Equal(t, 2, r.BlockCount)
	assert.Equal(t, []int{10, 20}, r.BlockSizes)
	assert.Equal(t, 0, set.Defects.Len())

	// Second block spans [105, 155), past end=130: all blocks dropped.
	set = mustRead(t, "chr1\t100\t130\tn\t0\t+\t100\t130\t0\t2\t10,50\t0,5\n")
	r = set.Records[0]
	assert.Equal(t, 0, r.BlockCount)
	assert.Nil(t, r.BlockSizes)
	assert.Nil(t, r.BlockStarts)
	require.Equal(t, 1, set.Defects.Len())
	assert.Equal(t, tabio.InvalidBlockStructure, set.Defects.Defects()[0].Kind)
}

func TestBlockCountMismatch(t *testing.T) {
	for _, tail := range []string{
		"3\t10,20\t0,5", // declared count disagrees
		"2\t10\t0,5",    // len(sizes) != len(starts)
		"2\t10,20\t0,x", // non-numeric start
	} {
		set := mustRead(t, "chr1\t100\t200\tn\t0\t+\t100\t200\t0\t"+tail+"\n")
		require.Equal(t, 1, len(set.Records), tail)
		assert.Equal(t, 0, set.Records[0].BlockCount, tail)
		require.Equal(t, 1, set.Defects.Len(), tail)
	}
}

func TestHeaderRetention(t *testing.T) {
	text := "# commentary\n" +
		"browser position chr1:1-1000\n" +
		"track name=\"My Track\" color=255,0,0\n" +
		"chr1\t100\t200\n"
	set := mustRead(t, text)
	require.Equal(t, 3, len(set.Header))
	assert.Equal(t, tabio.Comment, set.Header[0].Class)
	assert.Equal(t, tabio.BrowserHeader, set.Header[1].Class)
	require.True(t, set.Header[2].IsTrack())

	attrs := set.Header[2].Attrs()
	name, ok := attrs.Get("name")
	require.True(t, ok)
	assert.Equal(t, "My Track", name)
	color, ok := attrs.Get("color")
	require.True(t, ok)
	assert.Equal(t, "255,0,0", color)
}

func TestNoValidRecords(t *testing.T) {
	set, err := bed.Read(strings.NewReader("track name=t\n# hi\n"), bed.ReadOpts{})
	assert.Equal(t, bed.ErrNoRecords, err)
	assert.Equal(t, 2, len(set.Header))
}

func TestDefaults(t *testing.T) {
	set, err := bed.Read(strings.NewReader("chr1\t1\t2\n"),
		bed.ReadOpts{DefaultName: "unnamed", DefaultScore: "100"})
	require.NoError(t, err)
	r := set.Records[0]
	assert.Equal(t, "unnamed", r.Name)
	assert.Equal(t, 100.0, r.Score)
}
