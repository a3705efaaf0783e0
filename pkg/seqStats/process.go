package seqStats

import (
	"io"

	"SeqStats/pkg/fastx"
)

// Options configures one file scan.
type Options struct {
	Format      fastx.Format // forced format, Unknown to detect
	Sniff       bool         // consult the content even when the extension is known
	Offset      int
	KeepRecords bool
}

// ProcessFile opens path, resolves its format and returns its statistics.
// Any error discards the partial result.
func ProcessFile(path string, opt Options) (*FileStats, error) {
	src, err := fastx.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	format, err := fastx.Resolve(path, opt.Format, opt.Sniff, src.Reader)
	if err != nil {
		return nil, err
	}
	return Process(src, path, format, opt)
}

// Process scans r as format and aggregates every record.
func Process(r io.Reader, path string, format fastx.Format, opt Options) (*FileStats, error) {
	if format == fastx.Unknown {
		format = fastx.FASTA
	}
	var (
		scanner = fastx.NewScanner(r, fastx.Options{
			Format: format,
			Offset: opt.Offset,
			Names:  opt.KeepRecords,
		})
		agg = NewAggregator(opt.KeepRecords)
	)
	for scanner.Scan() {
		agg.Add(scanner.Record())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return agg.Finalize(path, format), nil
}
