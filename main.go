package main

import (
	"bufio"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"SeqStats/pkg/notify"
	"SeqStats/pkg/report"
	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"golang.org/x/term"
)

func main() {
	var t0 = time.Now()
	flag.Parse()

	var inputs = collectInputs(flag.Args(), *list)
	if len(inputs) == 0 {
		flag.PrintDefaults()
		log.Fatal("-l or input files required!")
	}
	if err := checkFlags(*forceFasta, *forceFastq, *csvOut, *jsonOut, *offset); err != nil {
		flag.PrintDefaults()
		log.Fatal(err)
	}

	var (
		cfg = reportConfig(*csvOut, *jsonOut, *nice, *terse, *absPath, *baseName, *header)
		opt = seqStats.Options{
			Format:      forcedFormat(*forceFasta, *forceFastq),
			Sniff:       *sniff,
			Offset:      *offset,
			KeepRecords: *recordsOut != "",
		}
	)

	var results, errs = processAll(inputs, opt, poolSize(*thread, len(inputs)))
	var ok, failed = splitResults(inputs, results, errs)

	var out = bufio.NewWriter(os.Stdout)
	report.Write(out, ok, cfg, termWidth())
	simpleUtil.CheckErr(out.Flush())

	writeExtras(ok, cfg)

	var sender = notify.NewNotificationSender(*webhook)
	if err := sender.SendMarkdown(notify.BatchSummary(ok, failed, time.Since(t0))); err != nil {
		slog.Error("notify", "err", err)
	}

	slog.Info("Done", "files", len(ok), "failed", len(failed), "time", time.Since(t0))
	if len(ok) == 0 {
		os.Exit(1)
	}
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func writeExtras(results []*seqStats.FileStats, cfg report.Config) {
	if *recordsOut != "" {
		var file = osUtil.Create(*recordsOut)
		var w = bufio.NewWriter(file)
		report.WriteRecords(w, results)
		simpleUtil.CheckErr(w.Flush())
		simpleUtil.CheckErr(file.Close())
	}
	if *xlsxOut != "" {
		simpleUtil.CheckErr(report.WriteXlsx(*xlsxOut, results, cfg))
	}
	if *htmlOut != "" {
		var file = osUtil.Create(*htmlOut)
		simpleUtil.CheckErr(report.PlotNxCurve(file, results, cfg))
		simpleUtil.CheckErr(file.Close())
	}
	if *pngOut != "" {
		simpleUtil.CheckErr(report.PlotLengthBins(*pngOut, results, cfg))
	}
}
