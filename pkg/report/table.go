package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

type Style int

const (
	TSV Style = iota
	CSV
	JSON
	Nice
)

type PathStyle int

const (
	PathRaw PathStyle = iota
	PathAbs
	PathBase
)

// Config selects how results are rendered.
type Config struct {
	Style     Style
	PathStyle PathStyle
	Header    bool
	Terse     bool // Filepath and N50 only
}

func (cfg Config) sep() string {
	if cfg.Style == CSV {
		return ","
	}
	return "\t"
}

var (
	baseColumns    = []string{"Filepath", "TotSeqs", "TotLen", "N50", "N75", "N90", "I50", "GC", "Avg", "Min", "Max", "AuN"}
	qualityColumns = []string{"AvgQual", "Q20", "Q30"}
	terseColumns   = []string{"Filepath", "N50"}
)

// AnyQuality reports whether any result carries quality scores.
func AnyQuality(results []*seqStats.FileStats) bool {
	for _, r := range results {
		if r.HasQuality {
			return true
		}
	}
	return false
}

// Header returns the column names; quality columns are appended when
// quality is set.
func Header(cfg Config, quality bool) []string {
	if cfg.Terse {
		return terseColumns
	}
	var cols = append([]string{}, baseColumns...)
	if quality {
		cols = append(cols, qualityColumns...)
	}
	return cols
}

// DisplayPath renders path per style. Stdin stays "-".
func DisplayPath(path string, style PathStyle) string {
	if path == "-" {
		return path
	}
	switch style {
	case PathAbs:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathBase:
		return filepath.Base(path)
	}
	return path
}

func f2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func u(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// Row renders one result in Header order. Results without quality get
// NA in the quality columns.
func Row(r *seqStats.FileStats, cfg Config, quality bool) []string {
	var path = DisplayPath(r.Path, cfg.PathStyle)
	if cfg.Terse {
		return []string{path, u(r.N50)}
	}
	var row = []string{
		path,
		u(r.TotalSeqs),
		u(r.TotalLen),
		u(r.N50),
		u(r.N75),
		u(r.N90),
		u(r.I50),
		f2(r.GC),
		f2(r.AvgLen),
		u(r.MinLen),
		u(r.MaxLen),
		u(r.AuN),
	}
	if quality {
		if r.HasQuality {
			row = append(row, f2(r.AvgQual), f2(r.Q20*100), f2(r.Q30*100))
		} else {
			row = append(row, "NA", "NA", "NA")
		}
	}
	return row
}

// Write renders results in the configured style.
func Write(w io.Writer, results []*seqStats.FileStats, cfg Config, width int) {
	switch {
	case cfg.Style == JSON:
		WriteJSON(w, results, cfg)
	case cfg.Style == Nice && !cfg.Terse:
		WriteNice(w, results, cfg, width)
	default:
		WriteTable(w, results, cfg)
	}
}

// WriteTable writes TSV or CSV rows.
func WriteTable(w io.Writer, results []*seqStats.FileStats, cfg Config) {
	var (
		quality = AnyQuality(results)
		sep     = cfg.sep()
	)
	if cfg.Header {
		fmtUtil.FprintStringArray(w, Header(cfg, quality), sep)
	}
	for _, r := range results {
		fmtUtil.FprintStringArray(w, Row(r, cfg, quality), sep)
	}
}

// fixed2 marshals with two decimals, matching the text tables.
type fixed2 float64

func (v fixed2) MarshalJSON() ([]byte, error) {
	return []byte(f2(float64(v))), nil
}

type jsonRow struct {
	File    string  `json:"File"`
	TotSeqs uint64  `json:"TotSeqs"`
	TotLen  uint64  `json:"TotLen"`
	N50     uint64  `json:"N50"`
	N75     uint64  `json:"N75"`
	N90     uint64  `json:"N90"`
	I50     uint64  `json:"I50"`
	GC      fixed2  `json:"GC"`
	Avg     fixed2  `json:"Avg"`
	Min     uint64  `json:"Min"`
	Max     uint64  `json:"Max"`
	AuN     uint64  `json:"AuN"`
}

// jsonQualRow carries null quality fields for inputs without scores.
type jsonQualRow struct {
	jsonRow
	AvgQual *fixed2 `json:"AvgQual"`
	Q20     *fixed2 `json:"Q20"`
	Q30     *fixed2 `json:"Q30"`
}

type terseRow struct {
	File string `json:"File"`
	N50  uint64 `json:"N50"`
}

func newJSONRow(r *seqStats.FileStats, cfg Config, quality bool) interface{} {
	var path = DisplayPath(r.Path, cfg.PathStyle)
	if cfg.Terse {
		return terseRow{File: path, N50: r.N50}
	}
	var row = jsonRow{
		File:    path,
		TotSeqs: r.TotalSeqs,
		TotLen:  r.TotalLen,
		N50:     r.N50,
		N75:     r.N75,
		N90:     r.N90,
		I50:     r.I50,
		GC:      fixed2(r.GC),
		Avg:     fixed2(r.AvgLen),
		Min:     r.MinLen,
		Max:     r.MaxLen,
		AuN:     r.AuN,
	}
	if !quality {
		return row
	}
	var qrow = jsonQualRow{jsonRow: row}
	if r.HasQuality {
		var q, q20, q30 = fixed2(r.AvgQual), fixed2(r.Q20 * 100), fixed2(r.Q30 * 100)
		qrow.AvgQual, qrow.Q20, qrow.Q30 = &q, &q20, &q30
	}
	return qrow
}

// WriteJSON writes an array with one object per line.
func WriteJSON(w io.Writer, results []*seqStats.FileStats, cfg Config) {
	var (
		quality = AnyQuality(results)
		lines   = make([]string, 0, len(results))
	)
	for _, r := range results {
		var b = simpleUtil.HandleError(json.Marshal(newJSONRow(r, cfg, quality)))
		lines = append(lines, "  "+string(b))
	}
	if len(lines) == 0 {
		fmtUtil.Fprint(w, "[\n]\n")
		return
	}
	fmtUtil.Fprintf(w, "[\n%s\n]\n", strings.Join(lines, ",\n"))
}

const (
	niceColWidth    = 8
	niceMinPath     = 15
	niceMaxPath     = 50
	niceReservedCol = 11
)

// NicePathWidth sizes the Filepath column from the terminal width.
func NicePathWidth(termWidth int) int {
	var w = termWidth - niceReservedCol*niceColWidth - niceReservedCol
	return max(niceMinPath, min(niceMaxPath, w))
}

// WriteNice writes a space-aligned table for a terminal termWidth wide.
func WriteNice(w io.Writer, results []*seqStats.FileStats, cfg Config, termWidth int) {
	var (
		quality   = AnyQuality(results)
		pathWidth = NicePathWidth(termWidth)
	)
	var line = func(cells []string) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%-*s", pathWidth, cells[0])
		for _, c := range cells[1:] {
			fmt.Fprintf(&sb, " %*s", niceColWidth, c)
		}
		fmtUtil.Fprintln(w, sb.String())
	}
	if cfg.Header {
		line(Header(cfg, quality))
	}
	for _, r := range results {
		line(Row(r, cfg, quality))
	}
}
