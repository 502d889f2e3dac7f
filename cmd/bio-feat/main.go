// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
bio-feat loads BED or GFF3 interval files, reports per-line defects as
warnings, and optionally merges overlapping intervals, filters by region or
size, prints summary statistics, and converts between the two formats.

Examples:

   bio-feat -out merged.bed -merge in.bed
   bio-feat -convert gff -gff-feature-type exon -out out.gff in.bed
   bio-feat -region chr1:1000-2000 -stats in.bed.gz
*/

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/grailbio/featfmt/encoding/bed"
	"github.com/grailbio/featfmt/encoding/converter"
	"github.com/grailbio/featfmt/encoding/detect"
	"github.com/grailbio/featfmt/encoding/gff"
	"github.com/grailbio/featfmt/encoding/tabio"
	"github.com/grailbio/featfmt/interval"
)

var (
	format         = flag.String("format", "auto", "Input format; 'bed', 'gff', or 'auto'")
	outPath        = flag.String("out", "", "Output path; records are written only when set")
	convertTo      = flag.String("convert", "", "Convert records to the given format ('bed' or 'gff') before writing")
	merge          = flag.Bool("merge", false, "Merge overlapping or book-ended intervals per chromosome (BED pipelines only; merged records keep the name/score/strand of the first record of each run)")
	region         = flag.String("region", "", "Restrict output to records overlapping the region, formatted as <contig>:<1-based first pos>-<last pos>, <contig>:<1-based pos>, or <contig>")
	stats          = flag.Bool("stats", false, "Print per-chromosome summary statistics")
	minSize        = flag.Int("min-size", 0, "Drop records shorter than this many bases")
	maxSize        = flag.Int("max-size", -1, "Drop records longer than this many bases; negative means unbounded")
	skipValidation = flag.Bool("skip-validation", false, "Emit records even when they fail coordinate validation")
	defaultName    = flag.String("default-name", bed.DefaultOpts.DefaultName, "Name substituted for an absent BED name column")
	defaultScore   = flag.String("default-score", bed.DefaultOpts.DefaultScore, "Score substituted for an absent BED score column")
	defaultStrand  = flag.String("default-strand", bed.DefaultOpts.DefaultStrand, "Strand substituted for an absent BED strand column")
	featureType    = flag.String("gff-feature-type", converter.DefaultOpts.FeatureType, "GFF type column for BED-derived features")
	gffSource      = flag.String("gff-source", converter.DefaultOpts.Source, "GFF source column for BED-derived features")
	nameAttr       = flag.String("gff-name-attr", converter.DefaultOpts.NameAttr, "GFF attribute consulted for the BED name on conversion")
	scoreAttr      = flag.String("gff-score-attr", converter.DefaultOpts.ScoreAttr, "GFF attribute consulted for the BED score on conversion")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] path\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one input path expected; got %d", flag.NArg())
	}
	inPath := flag.Arg(0)

	inFormat := *format
	if inFormat == "auto" {
		result := detect.Detect(readSample(inPath))
		if result.Format == detect.Unknown {
			log.Fatalf("%s: cannot determine format; pass -format explicitly", inPath)
		}
		log.Printf("%s: detected %s (confidence %d/10)", inPath, result.Format, result.Confidence)
		inFormat = result.Format.String()
	}

	convOpts := converter.Opts{
		FeatureType:  *featureType,
		Source:       *gffSource,
		NameAttr:     *nameAttr,
		ScoreAttr:    *scoreAttr,
		DefaultScore: *defaultScore,
	}
	switch inFormat {
	case "bed":
		runBED(inPath, convOpts)
	case "gff":
		runGFF(inPath, convOpts)
	default:
		log.Fatalf("Unknown -format %q; expected 'bed', 'gff', or 'auto'", inFormat)
	}
}

func runBED(inPath string, convOpts converter.Opts) {
	set, err := bed.ReadPath(inPath, bed.ReadOpts{
		SkipValidation: *skipValidation,
		DefaultName:    *defaultName,
		DefaultScore:   *defaultScore,
		DefaultStrand:  *defaultStrand,
	})
	if err == bed.ErrNoRecords {
		warnDefects(inPath, &set.Defects)
		log.Fatalf("%s: no valid BED records; the file may not be BED at all", inPath)
	} else if err != nil {
		log.Fatalf("%s: %v", inPath, err)
	}
	warnDefects(inPath, &set.Defects)
	set.Records = narrow(set.Records)
	if *stats {
		printStats(interval.Summarize(set.Records))
	}
	switch *convertTo {
	case "":
		if *outPath != "" {
			if err := bed.WritePath(*outPath, set); err != nil {
				log.Fatalf("%s: %v", *outPath, err)
			}
		}
	case "gff":
		writeGFF(&gff.Set{Records: converter.BEDToGFF(set.Records, convOpts)})
	case "bed":
		log.Fatalf("Input is already BED; drop -convert or pass -convert gff")
	default:
		log.Fatalf("Unknown -convert %q", *convertTo)
	}
}

func runGFF(inPath string, convOpts converter.Opts) {
	if *merge {
		log.Fatalf("-merge applies to BED pipelines; convert to BED first")
	}
	set, err := gff.ReadPath(inPath, gff.ReadOpts{SkipValidation: *skipValidation})
	if err == gff.ErrNoRecords {
		warnDefects(inPath, &set.Defects)
		log.Fatalf("%s: no valid GFF records; the file may not be GFF at all", inPath)
	} else if err != nil {
		log.Fatalf("%s: %v", inPath, err)
	}
	warnDefects(inPath, &set.Defects)
	switch *convertTo {
	case "", "gff":
		if *outPath != "" {
			if err := gff.WritePath(*outPath, set); err != nil {
				log.Fatalf("%s: %v", *outPath, err)
			}
		}
		if *convertTo == "" && (*stats || *region != "" || *minSize > 0 || *maxSize >= 0) {
			log.Fatalf("-stats, -region, and size filters apply to BED records; pass -convert bed")
		}
	case "bed":
		recs, defects := converter.GFFToBED(set.Records, convOpts)
		warnDefects(inPath, defects)
		recs = narrow(recs)
		if *stats {
			printStats(interval.Summarize(recs))
		}
		if *outPath != "" {
			if err := bed.WritePath(*outPath, &bed.Set{Records: recs}); err != nil {
				log.Fatalf("%s: %v", *outPath, err)
			}
		}
	default:
		log.Fatalf("Unknown -convert %q", *convertTo)
	}
}

// narrow applies the region, size, and merge reductions, in that order.
func narrow(recs []bed.Record) []bed.Record {
	if *region != "" {
		reg, err := interval.ParseRegion(*region)
		if err != nil {
			log.Fatalf("-region: %v", err)
		}
		recs = interval.Select(recs, reg)
	}
	if *minSize > 0 || *maxSize >= 0 {
		recs = interval.FilterBySize(recs, *minSize, *maxSize)
	}
	if *merge {
		recs = interval.Merge(recs)
	}
	return recs
}

func writeGFF(set *gff.Set) {
	if *outPath == "" {
		log.Fatalf("-convert requires -out")
	}
	if err := gff.WritePath(*outPath, set); err != nil {
		log.Fatalf("%s: %v", *outPath, err)
	}
}

func warnDefects(path string, defects *tabio.DefectList) {
	for _, d := range defects.Defects() {
		log.Error.Printf("%s: %s", path, d)
	}
}

func printStats(s interval.Summary) {
	fmt.Printf("regions\t%d\nbases\t%d\n", s.Regions, s.Bases)
	for _, strand := range []string{"+", "-", "."} {
		if n := s.Strands[strand]; n > 0 {
			fmt.Printf("strand %s\t%d\n", strand, n)
		}
	}
	chroms := make([]string, 0, len(s.Chroms))
	for chrom := range s.Chroms {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	fmt.Printf("chrom\tcount\tbases\tmin\tmax\tmean\n")
	for _, chrom := range chroms {
		cs := s.Chroms[chrom]
		fmt.Printf("%s\t%d\t%d\t%d\t%d\t%.1f\n",
			chrom, cs.Count, cs.TotalBases, cs.MinLen, cs.MaxLen, cs.MeanLen())
	}
}

// readSample returns up to the first 64 lines of the file for format
// detection.
func readSample(path string) []string {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	defer in.Close(ctx) // nolint: errcheck
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
	scanner := bufio.NewScanner(reader)
	var lines []string
	for len(lines) < 64 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
