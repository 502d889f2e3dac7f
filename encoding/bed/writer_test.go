package bed_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoundTrip(t *testing.T) {
	text := "track name=\"My Track\"\n" +
		"chr1\t100\t200\texon1\t960\t+\n" +
		"chr2\t0\t50\t.\t0\t-\n"
	set := mustRead(t, text)

	var buf bytes.Buffer
	require.NoError(t, bed.Write(&buf, set))
	assert.Equal(t, text, buf.String())
}

func TestWriteTruncatesToNFields(t *testing.T) {
	set := mustRead(t, "chr1\t100\t200\n")
	var buf bytes.Buffer
	require.NoError(t, bed.WriteRecords(&buf, set.Records))
	assert.Equal(t, "chr1\t100\t200\n", buf.String())
}

func TestWriteDroppedBlocks(t *testing.T) {
	// Dropped blocks serialize as count 0 with "." lists.
	set := mustRead(t, "chr1\t100\t130\tn\t0\t+\t100\t130\t0\t2\t10,50\t0,5\n")
	var buf bytes.Buffer
	require.NoError(t, bed.WriteRecords(&buf, set.Records))
	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	require.Equal(t, 12, len(fields))
	assert.Equal(t, "0", fields[9])
	assert.Equal(t, ".", fields[10])
	assert.Equal(t, ".", fields[11])
}

func TestRecordString(t *testing.T) {
	r := bed.Record{Chrom: "chr1", Start: 5, End: 10, NFields: 3}
	assert.Equal(t, "chr1\t5\t10", r.String())
}
