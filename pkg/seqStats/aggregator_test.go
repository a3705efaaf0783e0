package seqStats

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"SeqStats/pkg/fastx"

	"github.com/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestProcessFasta(t *testing.T) {
	stats, err := Process(strings.NewReader(">a\nACGT\n>b\nACGTACGT\n"), "x.fa", fastx.FASTA, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSeqs != 2 || stats.TotalLen != 12 {
		t.Errorf("seqs/len = %d/%d; want 2/12", stats.TotalSeqs, stats.TotalLen)
	}
	if stats.N50 != 8 || stats.I50 != 1 {
		t.Errorf("N50/I50 = %d/%d; want 8/1", stats.N50, stats.I50)
	}
	if !approx(stats.GC, 50) {
		t.Errorf("GC = %f; want 50", stats.GC)
	}
	if !approx(stats.AvgLen, 6) || stats.MinLen != 4 || stats.MaxLen != 8 {
		t.Errorf("avg/min/max = %f/%d/%d", stats.AvgLen, stats.MinLen, stats.MaxLen)
	}
	if stats.HasQuality || stats.AvgQual != 0 {
		t.Errorf("FASTA should not carry quality: %+v", stats)
	}
}

func TestProcessFastq(t *testing.T) {
	var input = "@r1 x\nACGT\n+\nIIII\n@r2\nGGCA\n+\nIIII\n"
	stats, err := Process(strings.NewReader(input), "x.fq", fastx.FASTQ, Options{KeepRecords: true})
	if err != nil {
		t.Fatal(err)
	}
	if !stats.HasQuality {
		t.Fatal("expected quality")
	}
	if !approx(stats.AvgQual, 40) {
		t.Errorf("AvgQual = %f; want 40", stats.AvgQual)
	}
	if !approx(stats.Q20, 1) || !approx(stats.Q30, 1) {
		t.Errorf("Q20/Q30 = %f/%f; want 1/1", stats.Q20, stats.Q30)
	}
	var want = []RecordQual{{"r1", 4, 40}, {"r2", 4, 40}}
	if len(stats.Records) != 2 {
		t.Fatalf("records = %+v", stats.Records)
	}
	for i := range want {
		if stats.Records[i].Name != want[i].Name || stats.Records[i].Length != want[i].Length ||
			!approx(stats.Records[i].AvgQual, want[i].AvgQual) {
			t.Errorf("record %d = %+v; want %+v", i, stats.Records[i], want[i])
		}
	}
}

func TestProcessEmpty(t *testing.T) {
	for _, f := range []fastx.Format{fastx.FASTA, fastx.FASTQ} {
		stats, err := Process(strings.NewReader(""), "empty", f, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if stats.TotalSeqs != 0 || stats.TotalLen != 0 || stats.N50 != 0 || stats.N75 != 0 ||
			stats.N90 != 0 || stats.AuN != 0 || stats.GC != 0 || stats.AvgLen != 0 || stats.AvgQual != 0 {
			t.Errorf("%v: expected zeros, got %+v", f, stats)
		}
		if math.IsNaN(stats.Q20) || math.IsNaN(stats.GC) {
			t.Errorf("%v: NaN in empty stats", f)
		}
	}
}

func TestProcessIdempotent(t *testing.T) {
	var input = ">a\nACGTNNacgt\n>b\nGGGG\n>c\nA\n"
	first, _ := Process(strings.NewReader(input), "x", fastx.FASTA, Options{})
	second, _ := Process(strings.NewReader(input), "x", fastx.FASTA, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestProcessFile(t *testing.T) {
	var dir = t.TempDir()

	t.Run("fastq detected by extension", func(t *testing.T) {
		var path = filepath.Join(dir, "reads.fq")
		if err := os.WriteFile(path, []byte("@r\nACGT\n+\nIIII\n"), 0644); err != nil {
			t.Fatal(err)
		}
		stats, err := ProcessFile(path, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if stats.Format != fastx.FASTQ || stats.TotalSeqs != 1 {
			t.Errorf("got %v with %d seqs", stats.Format, stats.TotalSeqs)
		}
	})

	t.Run("forced fastq on fasta content", func(t *testing.T) {
		var path = filepath.Join(dir, "contigs.fa")
		if err := os.WriteFile(path, []byte(">c\nACGT\n"), 0644); err != nil {
			t.Fatal(err)
		}
		stats, err := ProcessFile(path, Options{Format: fastx.FASTQ})
		if !errors.Is(err, fastx.ErrFormatMismatch) {
			t.Errorf("Expected ErrFormatMismatch, but got: %v", err)
		}
		if stats != nil {
			t.Errorf("partial result leaked: %+v", stats)
		}
	})

	t.Run("unknown extension sniffed", func(t *testing.T) {
		var path = filepath.Join(dir, "reads.txt")
		if err := os.WriteFile(path, []byte("\n@r\nAC\n+\nII\n"), 0644); err != nil {
			t.Fatal(err)
		}
		stats, err := ProcessFile(path, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if stats.Format != fastx.FASTQ {
			t.Errorf("format = %v; want FASTQ", stats.Format)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ProcessFile(filepath.Join(dir, "nope.fa"), Options{})
		if !fastx.IsIOError(err) {
			t.Errorf("Expected IO error, but got: %v", err)
		}
	})
}
