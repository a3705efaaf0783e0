package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/simReads"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	math2 "github.com/liserjrqlxue/goUtil/math"
	"github.com/liserjrqlxue/goUtil/stringsUtil"
)

// flag
var (
	seed = flag.Int64(
		"seed",
		42,
		"random seed",
	)
	wrap = flag.Int(
		"wrap",
		60,
		"FASTA line width",
	)
)

const usage = "min_seqs max_seqs min_len max_len tot_files fasta|fastq outdir"

type dataset struct {
	minSeqs, maxSeqs int
	minLen, maxLen   int
	files            int
	format           fastx.Format
	outDir           string
}

func parseArgs(args []string) dataset {
	if len(args) != 7 {
		flag.PrintDefaults()
		log.Fatalf("usage: simRandom [flags] %s", usage)
	}
	var d = dataset{
		minSeqs: stringsUtil.Atoi(args[0]),
		maxSeqs: stringsUtil.Atoi(args[1]),
		minLen:  stringsUtil.Atoi(args[2]),
		maxLen:  stringsUtil.Atoi(args[3]),
		files:   stringsUtil.Atoi(args[4]),
		format:  fastx.ParseFormat(args[5]),
		outDir:  args[6],
	}
	if d.files <= 0 {
		log.Fatal("tot_files must be positive")
	}
	if d.format == fastx.Unknown {
		log.Fatalf("format must be fasta or fastq, got %q", args[5])
	}
	return d
}

// generate writes d.files datasets; every draw comes from rng so a seed
// reproduces the whole run.
func generate(d dataset, rng *rand.Rand, wrap int) ([]*simReads.Result, error) {
	var results []*simReads.Result
	for i := 0; i < d.files; i++ {
		lengths, err := simReads.RandomLengths(rng, d.minSeqs, d.maxSeqs, d.minLen, d.maxLen)
		if err != nil {
			return nil, err
		}
		res, err := simReads.Simulate(simReads.Config{
			OutDir: d.outDir,
			Format: d.format,
			Wrap:   wrap,
			Seed:   rng.Int63(),
		}, lengths)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func main() {
	t0 := time.Now()
	flag.Parse()
	var d = parseArgs(flag.Args())

	results, err := generate(d, rand.New(rand.NewSource(*seed)), *wrap)
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range results {
		fmtUtil.Fprintf(
			os.Stdout,
			"%s\tN50=%d\treads=%d\tmean=%.2f\n",
			res.Path, res.N50, res.Count, math2.DivisionInt(int(res.Total), int(res.Count)),
		)
	}
	slog.Info("Done", "files", len(results), "time", time.Since(t0))
}
