package seqStats

import (
	"SeqStats/pkg/fastx"
)

// RecordQual is the per-record line of the optional record dump.
type RecordQual struct {
	Name    string
	Length  uint64
	AvgQual float64
}

// FileStats is the immutable result for one input.
type FileStats struct {
	Path   string
	Format fastx.Format

	TotalSeqs uint64
	TotalLen  uint64
	N50       uint64
	N75       uint64
	N90       uint64
	I50       uint64
	AuN       uint64
	GC        float64 // percent
	AvgLen    float64
	MinLen    uint64
	MaxLen    uint64

	HasQuality bool
	AvgQual    float64
	Q20        float64 // fraction of bases with Q >= 20
	Q30        float64

	Bases   fastx.BaseCounts
	Curve   []uint64 // N1..N100
	Bins    []uint64 // counts per BinBounds
	Records []RecordQual
}

// Aggregator accumulates records from one scan.
type Aggregator struct {
	lengths []uint64
	total   uint64
	bases   fastx.BaseCounts

	errProb  float64
	q20, q30 uint64

	keep    bool
	records []RecordQual
}

// NewAggregator returns an empty aggregator. With keepRecords set every
// record's name, length and mean quality is retained for a record dump.
func NewAggregator(keepRecords bool) *Aggregator {
	return &Aggregator{
		lengths: make([]uint64, 0, 1024),
		keep:    keepRecords,
	}
}

func (a *Aggregator) Add(rec *fastx.Record) {
	a.lengths = append(a.lengths, rec.Length)
	a.total += rec.Length

	a.bases.A += rec.Bases.A
	a.bases.C += rec.Bases.C
	a.bases.G += rec.Bases.G
	a.bases.T += rec.Bases.T
	a.bases.Other += rec.Bases.Other

	a.errProb += rec.ErrProb
	a.q20 += rec.Q20
	a.q30 += rec.Q30

	if a.keep {
		var name = string(rec.Name)
		if name == "" {
			name = "unknown"
		}
		a.records = append(a.records, RecordQual{
			Name:    name,
			Length:  rec.Length,
			AvgQual: rec.AvgQuality(),
		})
	}
}

// Finalize sorts the collected lengths and derives the statistics. The
// aggregator must not be used afterwards.
func (a *Aggregator) Finalize(path string, format fastx.Format) *FileStats {
	var sorted = a.lengths
	SortDesc(sorted)
	var sum = summarizeSorted(sorted)

	var stats = &FileStats{
		Path:       path,
		Format:     format,
		TotalSeqs:  sum.Count,
		TotalLen:   sum.Total,
		N50:        sum.N50,
		N75:        sum.N75,
		N90:        sum.N90,
		I50:        sum.I50,
		AuN:        sum.AuN,
		MinLen:     sum.Min,
		MaxLen:     sum.Max,
		HasQuality: format == fastx.FASTQ,
		Bases:      a.bases,
		Curve:      Curve(sorted, sum.Total),
		Bins:       Bins(sorted),
		Records:    a.records,
	}
	if sum.Count > 0 {
		stats.AvgLen = float64(sum.Total) / float64(sum.Count)
	}
	if sum.Total > 0 {
		var total = float64(sum.Total)
		stats.GC = float64(a.bases.GC()) / total * 100
		if stats.HasQuality {
			stats.AvgQual = fastx.AvgQuality(a.errProb, sum.Total)
			stats.Q20 = float64(a.q20) / total
			stats.Q30 = float64(a.q30) / total
		}
	}
	a.lengths = nil
	a.records = nil
	return stats
}
