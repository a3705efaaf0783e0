package main

import (
	"log/slog"
	"runtime"
	"strings"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/report"
	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/textUtil"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// collectInputs appends the entries of listFile, skipping blank and # lines,
// to the positional arguments.
func collectInputs(args []string, listFile string) []string {
	var inputs = append([]string{}, args...)
	if listFile == "" {
		return inputs
	}
	for _, line := range textUtil.File2Array(listFile) {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if comment.MatchString(line) {
			continue
		}
		inputs = append(inputs, line)
	}
	return inputs
}

func checkFlags(fasta, fastq, csv, json bool, offset int) error {
	if fasta && fastq {
		return errors.New("-fasta and -fastq are exclusive")
	}
	if csv && json {
		return errors.New("-csv and -json are exclusive")
	}
	if offset < 0 || offset > 126 {
		return errors.Errorf("-offset %d outside 0..126", offset)
	}
	return nil
}

func forcedFormat(fasta, fastq bool) fastx.Format {
	switch {
	case fasta:
		return fastx.FASTA
	case fastq:
		return fastx.FASTQ
	}
	return fastx.Unknown
}

func reportConfig(csv, json, nice, terse, abs, base, header bool) report.Config {
	var cfg = report.Config{Header: header, Terse: terse}
	switch {
	case json:
		cfg.Style = report.JSON
	case csv:
		cfg.Style = report.CSV
	case nice:
		cfg.Style = report.Nice
	}
	switch {
	case abs:
		cfg.PathStyle = report.PathAbs
	case base || nice:
		cfg.PathStyle = report.PathBase
	}
	return cfg
}

func poolSize(thread, n int) int {
	if thread > 0 {
		return thread
	}
	return max(1, min(n, runtime.GOMAXPROCS(0)))
}

// processAll runs every input through seqStats with at most limit files
// in flight. Slot i of the returned slices belongs to inputs[i].
func processAll(inputs []string, opt seqStats.Options, limit int) ([]*seqStats.FileStats, []error) {
	var (
		results = make([]*seqStats.FileStats, len(inputs))
		errs    = make([]error, len(inputs))
		g       errgroup.Group
	)
	g.SetLimit(limit)
	for i, path := range inputs {
		g.Go(func() error {
			results[i], errs[i] = seqStats.ProcessFile(path, opt)
			return nil
		})
	}
	g.Wait()
	return results, errs
}

// splitResults keeps successful results in input order and logs the rest.
func splitResults(inputs []string, results []*seqStats.FileStats, errs []error) (ok []*seqStats.FileStats, failed []string) {
	for i, path := range inputs {
		if errs[i] != nil {
			slog.Error("skip", "file", path, "err", errs[i])
			failed = append(failed, path)
			continue
		}
		ok = append(ok, results[i])
	}
	return ok, failed
}
