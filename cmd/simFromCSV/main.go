package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/simReads"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"input csv with a header line and length,count rows",
	)
	outDir = flag.String(
		"o",
		".",
		"output directory",
	)
	prefix = flag.String(
		"p",
		"",
		"output file name prefix",
	)
	format = flag.String(
		"format",
		"fastq",
		"fasta or fastq",
	)
	compress = flag.String(
		"z",
		"",
		"compress output: gz or zst",
	)
	seed = flag.Int64(
		"seed",
		0,
		"random seed, 0 for the current time",
	)
)

// loadSpecs reads the spec table at path and warns about every skipped row.
func loadSpecs(path string) ([]simReads.ReadSpec, error) {
	var file = osUtil.Open(path)
	defer simpleUtil.DeferClose(file)

	specs, skipped, err := simReads.ReadSpecTable(file)
	for _, line := range skipped {
		slog.Warn("skip invalid row", "file", path, "line", line)
	}
	return specs, err
}

func main() {
	t0 := time.Now()
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i required!")
	}

	specs, err := loadSpecs(*input)
	if err != nil {
		log.Fatal(err)
	}
	if len(specs) == 0 {
		log.Fatalf("no valid length,count rows in %s", *input)
	}

	var (
		maxLen uint64
		reads  uint64
	)
	for _, s := range specs {
		reads += s.Count
		maxLen = max(maxLen, s.Size)
	}

	var cfg = simReads.Config{
		OutDir:      *outDir,
		Prefix:      *prefix,
		Format:      fastx.ParseFormat(*format),
		Compression: *compress,
		Seed:        *seed,
	}
	if cfg.Format == fastx.Unknown {
		log.Fatalf("unknown format %q", *format)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	res, err := simReads.Simulate(cfg, simReads.Expand(specs))
	if err != nil {
		log.Fatal(err)
	}
	fmtUtil.Fprintf(os.Stdout, "Total reads: %s\nMax length: %s\nOutput written to: %s\n", simReads.Comma(reads), simReads.Comma(maxLen), res.Path)
	slog.Info("Done", "time", time.Since(t0))
}
