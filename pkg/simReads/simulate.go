package simReads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/seqStats"

	"github.com/cheggaaa/pb/v3"
	gzip "github.com/klauspost/pgzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type Config struct {
	OutDir      string
	Prefix      string
	Format      fastx.Format
	Compression string // "", "gz" or "zst"
	Wrap        int
	Shuffle     bool
	Seed        int64
	Verbose     bool // draw a progress bar on stderr
}

type Result struct {
	Path string
	seqStats.Summary
}

// FileName is OUTDIR/PREFIX{N50}_{SEQS}_{TOTAL}.{fasta|fastq}[.gz|.zst].
func FileName(outDir, prefix string, sum seqStats.Summary, format fastx.Format, compression string) string {
	var name = fmt.Sprintf("%s%d_%d_%d.%s", prefix, sum.N50, sum.Count, sum.Total, format.Ext())
	if compression != "" {
		name += "." + compression
	}
	return filepath.Join(outDir, name)
}

// Simulate writes one file holding a read for every length. The file is
// named after the N50, count and total of lengths.
func Simulate(cfg Config, lengths []uint64) (*Result, error) {
	if cfg.Format == fastx.Unknown {
		cfg.Format = fastx.FASTA
	}
	switch cfg.Compression {
	case "", "gz", "zst":
	default:
		return nil, errors.Errorf("unknown compression %q", cfg.Compression)
	}

	var gen = NewGenerator(cfg.Format, cfg.Seed)
	gen.Wrap = cfg.Wrap
	if cfg.Shuffle {
		Shuffle(lengths, gen.Rand)
	}

	var res = &Result{Summary: seqStats.Summarize(lengths)}
	res.Path = FileName(cfg.OutDir, cfg.Prefix, res.Summary, cfg.Format, cfg.Compression)

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	file, err := os.Create(res.Path)
	if err != nil {
		return nil, errors.Wrap(err, "create output file")
	}
	defer file.Close()

	out, err := compressWriter(file, cfg.Compression)
	if err != nil {
		return nil, err
	}

	var tick func()
	if cfg.Verbose {
		var bar = pb.Full.Start64(int64(len(lengths)))
		defer bar.Finish()
		tick = func() { bar.Increment() }
	}
	if err := gen.WriteAll(out, lengths, tick); err != nil {
		out.Close()
		return nil, errors.Wrapf(err, "write %s", res.Path)
	}
	if err := out.Close(); err != nil {
		return nil, errors.Wrapf(err, "close %s", res.Path)
	}
	return res, file.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compressWriter(w io.Writer, compression string) (io.WriteCloser, error) {
	switch compression {
	case "gz":
		return gzip.NewWriter(w), nil
	case "zst":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "zstd writer")
		}
		return zw, nil
	}
	return nopCloser{w}, nil
}

// Comma formats n with thousands separators.
func Comma(n uint64) string {
	var s = strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var (
		out  = make([]byte, 0, len(s)+len(s)/3)
		lead = len(s) % 3
	)
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
