package report

import (
	"io"

	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
)

// WriteRecords dumps readname, length and average quality for every
// kept record, files in the given order.
func WriteRecords(w io.Writer, results []*seqStats.FileStats) {
	fmtUtil.Fprintln(w, "readname\tlength\tavg_qual")
	for _, r := range results {
		for _, rec := range r.Records {
			fmtUtil.Fprintf(w, "%s\t%d\t%.2f\n", rec.Name, rec.Length, rec.AvgQual)
		}
	}
}

// WriteBins writes the read-length histogram as CSV, one row per bound.
func WriteBins(w io.Writer, bins []uint64) {
	fmtUtil.Fprintln(w, "Bin,Number of Reads")
	for i, b := range seqStats.BinBounds {
		var n uint64
		if i < len(bins) {
			n = bins[i]
		}
		fmtUtil.Fprintf(w, "%d,%d\n", b, n)
	}
}
