package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/report"
	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// flag
var (
	output = flag.String(
		"o",
		"",
		"output csv, stdout when empty",
	)
	format = flag.String(
		"format",
		"",
		"force fasta or fastq",
	)
	png = flag.String(
		"png",
		"",
		"also plot the per-file histograms",
	)
)

// binFiles returns the per-file statistics and the histogram summed over
// every input.
func binFiles(paths []string, forced fastx.Format) ([]*seqStats.FileStats, []uint64, error) {
	var (
		results []*seqStats.FileStats
		total   = make([]uint64, len(seqStats.BinBounds))
	)
	for _, path := range paths {
		stats, err := seqStats.ProcessFile(path, seqStats.Options{Format: forced})
		if err != nil {
			return nil, nil, err
		}
		for i, n := range stats.Bins {
			total[i] += n
		}
		results = append(results, stats)
	}
	return results, total, nil
}

func main() {
	t0 := time.Now()
	flag.Parse()
	if flag.NArg() == 0 {
		flag.PrintDefaults()
		log.Fatal("input fasta/fastq required!")
	}

	results, bins, err := binFiles(flag.Args(), fastx.ParseFormat(*format))
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = os.Stdout
	if *output != "" {
		var file = osUtil.Create(*output)
		defer simpleUtil.DeferClose(file)
		out = file
	}
	var w = bufio.NewWriter(out)
	report.WriteBins(w, bins)
	simpleUtil.CheckErr(w.Flush())

	if *png != "" {
		simpleUtil.CheckErr(report.PlotLengthBins(*png, results, report.Config{PathStyle: report.PathBase}))
	}
	slog.Info("Done", "time", time.Since(t0))
}
