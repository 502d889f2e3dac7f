package bed

import (
	"bufio"
	"io"
	"strings"
)

// Write writes the set's retained header lines verbatim, in order, followed
// by one tab-delimited row per record.  Rows are newline-terminated.
func Write(w io.Writer, set *Set) error {
	bw := bufio.NewWriter(w)
	for _, h := range set.Header {
		if _, err := bw.WriteString(h.Raw); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := writeRecords(bw, set.Records); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteRecords writes records without any header metadata.
func WriteRecords(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	if err := writeRecords(bw, recs); err != nil {
		return err
	}
	return bw.Flush()
}

func writeRecords(bw *bufio.Writer, recs []Record) error {
	var sb strings.Builder
	for i := range recs {
		sb.Reset()
		recs[i].appendRow(&sb)
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return nil
}
