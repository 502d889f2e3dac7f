package tabio_test

import (
	"testing"

	"github.com/grailbio/featfmt/encoding/tabio"
	"github.com/grailbio/testutil/expect"
)

func TestCoerceRGB(t *testing.T) {
	tests := []struct {
		raw     string
		r, g, b int
		ok      bool
	}{
		{"255,0,0", 255, 0, 0, true},
		{"300,10,-5", 300, 10, -5, true}, // clamping is the record builder's job
		{"#ff0000", 255, 0, 0, true},
		{"#00FF7f", 0, 255, 127, true},
		{"0", 0, 0, 0, false},
		{"1,2", 0, 0, 0, false},
		{"#ff00", 0, 0, 0, false},
		{"red", 0, 0, 0, false},
		{"1,2,x", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, ok := tabio.CoerceRGB(tt.raw)
		expect.EQ(t, ok, tt.ok, "raw=%q", tt.raw)
		expect.EQ(t, []int{r, g, b}, []int{tt.r, tt.g, tt.b}, "raw=%q", tt.raw)
	}
}

func TestCoerceIntList(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
		ok   bool
	}{
		{"10,20", []int{10, 20}, true},
		{"10,20,", []int{10, 20}, true}, // UCSC trailing comma
		{"7", []int{7}, true},
		{"", nil, true},
		{"1,x", nil, false},
	}
	for _, tt := range tests {
		got, ok := tabio.CoerceIntList(tt.raw)
		expect.EQ(t, ok, tt.ok, "raw=%q", tt.raw)
		expect.EQ(t, got, tt.want, "raw=%q", tt.raw)
	}
}

func TestColumnCoerce(t *testing.T) {
	strand := tabio.Column{Name: "strand", Index: 5, Kind: tabio.Enum,
		Tokens: []string{"+", "-", "."}, Default: "."}
	v, kind := strand.Coerce("+")
	expect.EQ(t, kind, tabio.DefectKind(0))
	expect.EQ(t, v.Str, "+")
	v, kind = strand.Coerce("bogus")
	expect.EQ(t, kind, tabio.DefectKind(0)) // degrades to default
	expect.EQ(t, v.Str, ".")

	phase := tabio.Column{Name: "phase", Index: 7, Kind: tabio.Enum,
		Tokens: []string{"0", "1", "2", "."}}
	v, kind = phase.Coerce("9")
	expect.EQ(t, kind, tabio.UnrecognizedEnum) // no silent default for phase
	expect.EQ(t, v.Str, "9")

	start := tabio.Column{Name: "chromStart", Index: 1, Kind: tabio.Integer}
	_, kind = start.Coerce("12x")
	expect.EQ(t, kind, tabio.NonNumericCoordinate)
	v, kind = start.Coerce("1234")
	expect.EQ(t, kind, tabio.DefectKind(0))
	expect.EQ(t, v.Int, 1234)
}

func TestClamp(t *testing.T) {
	expect.EQ(t, tabio.Clamp(-5, 0, 1000), 0)
	expect.EQ(t, tabio.Clamp(5000, 0, 1000), 1000)
	expect.EQ(t, tabio.Clamp(500, 0, 1000), 500)
	expect.EQ(t, tabio.ClampFloat(-0.5, 0, 1000), 0.0)
	expect.EQ(t, tabio.ClampFloat(1000.5, 0, 1000), 1000.0)
}
