package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"SeqStats/pkg/fastx"
	"SeqStats/pkg/report"
	"SeqStats/pkg/seqStats"
)

func TestCollectInputs(t *testing.T) {
	var listFile = filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(listFile, []byte("b.fa\n\n# skipped\n  c.fq.gz \r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var got = collectInputs([]string{"a.fa"}, listFile)
	if !reflect.DeepEqual(got, []string{"a.fa", "b.fa", "c.fq.gz"}) {
		t.Errorf("collectInputs = %q", got)
	}
	if got = collectInputs(nil, ""); len(got) != 0 {
		t.Errorf("no inputs gave %q", got)
	}
}

func TestCheckFlags(t *testing.T) {
	var cases = []struct {
		name                    string
		fasta, fastq, csv, json bool
		offset                  int
		bad                     bool
	}{
		{"defaults", false, false, false, false, 33, false},
		{"both formats", true, true, false, false, 33, true},
		{"csv and json", false, false, true, true, 33, true},
		{"offset low", false, false, false, false, -1, true},
		{"offset high", false, false, false, false, 127, true},
		{"offset 64", false, true, true, false, 64, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var err = checkFlags(c.fasta, c.fastq, c.csv, c.json, c.offset)
			if (err != nil) != c.bad {
				t.Errorf("checkFlags error = %v; want error %v", err, c.bad)
			}
		})
	}
}

func TestReportConfig(t *testing.T) {
	var cfg = reportConfig(false, false, true, false, false, false, true)
	if cfg.Style != report.Nice || cfg.PathStyle != report.PathBase || !cfg.Header {
		t.Errorf("nice config = %+v", cfg)
	}
	cfg = reportConfig(true, false, false, true, true, false, false)
	if cfg.Style != report.CSV || cfg.PathStyle != report.PathAbs || !cfg.Terse || cfg.Header {
		t.Errorf("csv config = %+v", cfg)
	}
	if forcedFormat(false, true) != fastx.FASTQ || forcedFormat(false, false) != fastx.Unknown {
		t.Error("forcedFormat")
	}
}

func TestPoolSize(t *testing.T) {
	if poolSize(3, 100) != 3 {
		t.Error("explicit thread count ignored")
	}
	if poolSize(0, 1) != 1 || poolSize(0, 0) != 1 {
		t.Error("pool larger than the inputs")
	}
}

func TestProcessAll(t *testing.T) {
	var dir = t.TempDir()
	var write = func(name, content string) string {
		var path = filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	var inputs = []string{
		write("a.fa", ">1\nAAAA\n>2\nCC\n"),
		filepath.Join(dir, "missing.fa"),
		write("b.fq", "@r\nACG\n+\nII\n"),
		write("c.fq", "@r\nACG\n+\nIII\n"),
	}

	var results, errs = processAll(inputs, seqStats.Options{}, 2)
	var ok, failed = splitResults(inputs, results, errs)
	if len(ok) != 2 || ok[0].Path != inputs[0] || ok[1].Path != inputs[3] {
		t.Fatalf("results out of input order: %+v", ok)
	}
	if !reflect.DeepEqual(failed, []string{inputs[1], inputs[2]}) {
		t.Errorf("failed = %q", failed)
	}
	if !fastx.IsIOError(errs[1]) {
		t.Errorf("missing file error = %v", errs[1])
	}
	if ok[0].N50 != 4 || ok[1].TotalLen != 3 {
		t.Errorf("stats = %+v %+v", ok[0], ok[1])
	}
}
