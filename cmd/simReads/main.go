package main

import (
	"flag"
	"log"
	"os"
	"time"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/simReads"

	"github.com/fatih/color"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// flag
var (
	fasta = flag.Bool(
		"fasta",
		false,
		"write FASTA (default)",
	)
	fastq = flag.Bool(
		"fastq",
		false,
		"write FASTQ",
	)
	outDir = flag.String(
		"o",
		"",
		"output directory",
	)
	prefix = flag.String(
		"p",
		"",
		"output file name prefix",
	)
	compress = flag.String(
		"z",
		"",
		"compress output: gz or zst",
	)
	wrap = flag.Int(
		"wrap",
		0,
		"FASTA line width, 0 for one line per sequence",
	)
	shuffle = flag.Bool(
		"shuffle",
		false,
		"shuffle read order",
	)
	seed = flag.Int64(
		"seed",
		0,
		"random seed, 0 for the current time",
	)
	verbose = flag.Bool(
		"verbose",
		false,
		"show progress",
	)
)

// splitArgs separates COUNT*SIZE tokens from flags so both may appear in
// any order.
func splitArgs(args []string) (tokens, flags []string) {
	for _, arg := range args {
		if simReads.IsSpec(arg) {
			tokens = append(tokens, arg)
		} else {
			flags = append(flags, arg)
		}
	}
	return tokens, flags
}

func main() {
	var tokens, flags = splitArgs(os.Args[1:])
	simpleUtil.CheckErr(flag.CommandLine.Parse(flags))
	tokens = append(tokens, flag.Args()...)

	if *outDir == "" || len(tokens) == 0 {
		flag.PrintDefaults()
		log.Fatal("-o and COUNT*SIZE[KMG] required!")
	}
	if *fasta && *fastq {
		log.Fatal("-fasta and -fastq are exclusive")
	}

	specs, err := simReads.ParseSpecs(tokens)
	if err != nil {
		log.Fatal(err)
	}

	var cfg = simReads.Config{
		OutDir:      *outDir,
		Prefix:      *prefix,
		Format:      fastx.FASTA,
		Compression: *compress,
		Wrap:        *wrap,
		Shuffle:     *shuffle,
		Seed:        *seed,
		Verbose:     *verbose,
	}
	if *fastq {
		cfg.Format = fastx.FASTQ
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	res, err := simReads.Simulate(cfg, simReads.Expand(specs))
	if err != nil {
		log.Fatal(err)
	}

	color.Output = os.Stderr
	color.HiGreen("Reads: %s\n", simReads.Comma(res.Count))
	color.HiGreen("Total length: %s\n", simReads.Comma(res.Total))
	color.HiMagenta("N50: %s\n", simReads.Comma(res.N50))
	fmtUtil.Fprintf(os.Stdout, "Output written to: %s\n", res.Path)
}
