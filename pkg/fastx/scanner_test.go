package fastx

import (
	"bufio"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type scanned struct {
	Name   string
	Length uint64
	Bases  BaseCounts
	Qual   float64
}

func scanAll(t *testing.T, input string, opt Options) ([]scanned, error) {
	t.Helper()
	var (
		s   = NewScanner(strings.NewReader(input), opt)
		out []scanned
	)
	for s.Scan() {
		var rec = s.Record()
		out = append(out, scanned{
			Name:   string(rec.Name),
			Length: rec.Length,
			Bases:  rec.Bases,
			Qual:   math.Round(rec.AvgQuality()*100) / 100,
		})
	}
	return out, s.Err()
}

func TestScanFasta(t *testing.T) {
	var opt = Options{Format: FASTA, Names: true}

	t.Run("two records", func(t *testing.T) {
		got, err := scanAll(t, ">a desc\nACGT\n>b\nACGTACGT\n", opt)
		if err != nil {
			t.Fatal(err)
		}
		var want = []scanned{
			{Name: "a", Length: 4, Bases: BaseCounts{A: 1, C: 1, G: 1, T: 1}},
			{Name: "b", Length: 8, Bases: BaseCounts{A: 2, C: 2, G: 2, T: 2}},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v; want %+v", got, want)
		}
	})

	t.Run("no trailing newline", func(t *testing.T) {
		got, _ := scanAll(t, ">a\nAC\nGT\n>b\nNNNNN", opt)
		if len(got) != 2 || got[0].Length != 4 || got[1].Length != 5 {
			t.Fatalf("got %+v", got)
		}
		if got[1].Bases.Other != 5 {
			t.Errorf("N should count as Other, got %+v", got[1].Bases)
		}
	})

	t.Run("non alpha ignored", func(t *testing.T) {
		got, _ := scanAll(t, ">a\r\nAC-GT*\r\n ac gt 12\r\n", opt)
		if len(got) != 1 || got[0].Length != 8 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("empty records skipped", func(t *testing.T) {
		got, _ := scanAll(t, ">empty\n>a\nAAA\n>empty2\n\n", opt)
		if len(got) != 1 || got[0].Name != "a" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := scanAll(t, "", opt)
		if err != nil || len(got) != 0 {
			t.Fatalf("got %+v, %v", got, err)
		}
	})

	t.Run("long lines", func(t *testing.T) {
		var (
			seq    = strings.Repeat("G", BufferSize*2+17)
			header = ">" + strings.Repeat("n", BufferSize+5) + " tail"
		)
		got, err := scanAll(t, header+"\n"+seq+"\n>b\nC\n", opt)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Length != uint64(len(seq)) || got[0].Bases.G != uint64(len(seq)) {
			t.Fatalf("unexpected lengths: %d records", len(got))
		}
		if len(got[0].Name) != BufferSize+5 {
			t.Errorf("name length %d; want %d", len(got[0].Name), BufferSize+5)
		}
	})
}

func TestScanFastq(t *testing.T) {
	var opt = Options{Format: FASTQ, Names: true}

	t.Run("phred 40", func(t *testing.T) {
		var s = NewScanner(strings.NewReader("@r1\nACGT\n+\nIIII\n@r2\nGGCC\n+r2\nIIII\n"), opt)
		var n int
		for s.Scan() {
			var rec = s.Record()
			n++
			if rec.Length != 4 || !rec.HasQuality {
				t.Fatalf("record %d: %+v", n, rec)
			}
			if math.Abs(rec.AvgQuality()-40) > 1e-9 {
				t.Errorf("avg quality %f; want 40", rec.AvgQuality())
			}
			if rec.Q20 != 4 || rec.Q30 != 4 {
				t.Errorf("q20/q30 = %d/%d; want 4/4", rec.Q20, rec.Q30)
			}
		}
		if err := s.Err(); err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("got %d records; want 2", n)
		}
	})

	t.Run("log domain average", func(t *testing.T) {
		// Q10 and Q30: mean P = (0.1+0.001)/2
		got, err := scanAll(t, "@r\nAA\n+\n+?\n", opt)
		if err != nil {
			t.Fatal(err)
		}
		var want = math.Round(-10*math.Log10(0.101/2)*100) / 100
		if got[0].Qual != want {
			t.Errorf("got %v; want %v", got[0].Qual, want)
		}
	})

	t.Run("offset 64", func(t *testing.T) {
		var s = NewScanner(strings.NewReader("@r\nAC\n+\nhh\n"), Options{Format: FASTQ, Offset: 64})
		if !s.Scan() {
			t.Fatal(s.Err())
		}
		if q := s.Record().AvgQuality(); math.Abs(q-40) > 1e-9 {
			t.Errorf("got %f; want 40", q)
		}
	})

	t.Run("crlf and blank lines", func(t *testing.T) {
		got, err := scanAll(t, "@r1\r\nACG\r\n+\r\nIII\r\n\r\n@r2\r\nA\r\n+\r\nI", opt)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Length != 3 || got[1].Length != 1 {
			t.Fatalf("got %+v", got)
		}
	})

	var mismatches = []struct {
		name  string
		input string
	}{
		{"fasta content", ">a\nACGT\n"},
		{"first record empty quality", "@r\nACGT\n+\n\n"},
		{"empty record without quality", "@r\n\n+\n\n"},
		{"quality length differs", "@r\nACGT\n+\nIII\n"},
		{"truncated after sequence", "@r\nACGT\n"},
		{"truncated before quality", "@r1\nA\n+\nI\n@r2\nACGT\n+\n"},
		{"missing plus", "@r\nACGT\nIIII\n"},
	}
	for _, c := range mismatches {
		t.Run(c.name, func(t *testing.T) {
			_, err := scanAll(t, c.input, opt)
			if !errors.Is(err, ErrFormatMismatch) {
				t.Errorf("expected ErrFormatMismatch, got %v", err)
			}
			if IsIOError(err) {
				t.Errorf("content error reported as IO error: %v", err)
			}
		})
	}
}

func TestScanIdempotent(t *testing.T) {
	var input = "@a\nACGTN\n+\n!5?IB\n@b\nGG\n+\nII\n"
	first, err := scanAll(t, input, Options{Format: FASTQ})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := scanAll(t, input, Options{Format: FASTQ})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scans differ: %+v vs %+v", first, second)
	}
}

func TestScannerUsesBufferedReader(t *testing.T) {
	var br = bufio.NewReaderSize(strings.NewReader(">a\nAC\n"), 16)
	var s = NewScanner(br, Options{})
	if s.r != br {
		t.Error("expected scanner to reuse *bufio.Reader")
	}
}
