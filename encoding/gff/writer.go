package gff

import (
	"bufio"
	"io"
	"strings"
)

// Write writes the set as GFF3: a literal "##gff-version 3" line first, any
// other retained pragmas, then one tab-delimited row per record.
func Write(w io.Writer, set *Set) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(VersionPragma + "\n"); err != nil {
		return err
	}
	for _, p := range set.Pragmas {
		if strings.HasPrefix(p, "##gff-version") {
			continue // already emitted
		}
		if _, err := bw.WriteString(p); err != nil {
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

// WriteRecords writes records preceded by the version pragma only.
func WriteRecords(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(VersionPragma + "\n"); err != nil {
		return err
	}
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
