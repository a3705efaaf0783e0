package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"SeqStats/pkg/chunkCount"
	"SeqStats/pkg/fastx"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
)

// flag
var (
	format = flag.String(
		"format",
		"",
		"force fasta or fastq, detect from name/content when empty",
	)
	workers = flag.Int(
		"w",
		chunkCount.DefaultWorkers,
		"counting workers",
	)
	chunkSize = flag.Int(
		"c",
		chunkCount.DefaultChunkSize,
		"chunk size in bytes",
	)
	queueLen = flag.Int(
		"q",
		0,
		"chunk queue depth, 0 for 2*workers",
	)
	locked = flag.Bool(
		"locked",
		false,
		"workers read the shared stream behind a mutex instead of a producer queue",
	)
)

func main() {
	t0 := time.Now()
	flag.Parse()
	if flag.NArg() == 0 {
		flag.PrintDefaults()
		log.Fatal("input file required!")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opt = chunkCount.Options{
		ChunkSize: *chunkSize,
		Workers:   *workers,
		QueueLen:  *queueLen,
		Locked:    *locked,
	}
	var exit = 0
	for _, path := range flag.Args() {
		n, err := countFile(ctx, path, fastx.ParseFormat(*format), opt)
		if err != nil {
			slog.Error("count", "file", path, "err", err)
			exit = 1
			continue
		}
		if flag.NArg() > 1 {
			fmtUtil.Fprintf(os.Stdout, "%s\t", path)
		}
		fmtUtil.Fprintf(os.Stdout, "Total sequences: %d\n", n)
	}
	slog.Info("Done", "time", time.Since(t0))
	os.Exit(exit)
}

// countFile resolves the format of path and counts its records.
func countFile(ctx context.Context, path string, forced fastx.Format, opt chunkCount.Options) (uint64, error) {
	src, err := fastx.Open(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	f, err := fastx.Resolve(path, forced, false, src.Reader)
	if err != nil {
		return 0, err
	}
	counts, err := chunkCount.Count(ctx, src, opt)
	if err != nil {
		return 0, err
	}
	slog.Debug("counted", "file", path, "format", f, "bytes", counts.Bytes, "chunks", counts.Chunks)
	return counts.Sequences(f), nil
}
