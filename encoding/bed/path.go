package bed

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// ReadPath is a wrapper for Read that takes a path instead of an io.Reader.
// Gzipped inputs are detected by file name and decompressed transparently.
func ReadPath(path string, opts ReadOpts) (set *Set, err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	if set, err = Read(reader, opts); err != nil {
		return
	}
	log.Printf("%s: %d record(s), %d header line(s), %d defect(s)",
		path, len(set.Records), len(set.Header), set.Defects.Len())
	return
}

// WritePath is a wrapper for Write that takes a destination path.
func WritePath(path string, set *Set) (err error) {
	ctx := vcontext.Background()
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(out.Writer(ctx), set)
}
