package report

import (
	"SeqStats/pkg/seqStats"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

const (
	StatsSheet = "Stats"
	BinsSheet  = "Bins"
	CurveSheet = "Nx"
)

func cellName(col, row int) string {
	return simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row))
}

func SetCellValue(xlsx *excelize.File, sheet string, col, row int, value interface{}) {
	simpleUtil.CheckErr(xlsx.SetCellValue(sheet, cellName(col, row), value))
}

func SetRow(xlsx *excelize.File, sheet string, col, row int, value []interface{}) {
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, cellName(col, row), &value))
}

func SetCol(xlsx *excelize.File, sheet string, col, row int, value []interface{}) {
	simpleUtil.CheckErr(xlsx.SetSheetCol(sheet, cellName(col, row), &value))
}

func statsRow(r *seqStats.FileStats, cfg Config, quality bool) []interface{} {
	var row = []interface{}{
		DisplayPath(r.Path, cfg.PathStyle),
		r.TotalSeqs,
		r.TotalLen,
		r.N50,
		r.N75,
		r.N90,
		r.I50,
		round2(r.GC),
		round2(r.AvgLen),
		r.MinLen,
		r.MaxLen,
		r.AuN,
	}
	if quality {
		if r.HasQuality {
			row = append(row, round2(r.AvgQual), round2(r.Q20*100), round2(r.Q30*100))
		} else {
			row = append(row, "NA", "NA", "NA")
		}
	}
	return row
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func strings2row(s []string) []interface{} {
	var row = make([]interface{}, len(s))
	for i, v := range s {
		row[i] = v
	}
	return row
}

// WriteXlsx saves a workbook with the statistics table, the length
// histogram and the Nx curve of every result.
func WriteXlsx(path string, results []*seqStats.FileStats, cfg Config) error {
	var (
		xlsx    = excelize.NewFile()
		quality = AnyQuality(results)
	)
	defer simpleUtil.DeferClose(xlsx)

	simpleUtil.CheckErr(xlsx.SetSheetName("Sheet1", StatsSheet))
	cfg.Terse = false
	SetRow(xlsx, StatsSheet, 1, 1, strings2row(Header(cfg, quality)))
	for i, r := range results {
		SetRow(xlsx, StatsSheet, 1, i+2, statsRow(r, cfg, quality))
	}

	simpleUtil.HandleError(xlsx.NewSheet(BinsSheet))
	SetCellValue(xlsx, BinsSheet, 1, 1, "Bin")
	var bounds = make([]interface{}, len(seqStats.BinBounds))
	for i, b := range seqStats.BinBounds {
		bounds[i] = b
	}
	SetCol(xlsx, BinsSheet, 1, 2, bounds)

	simpleUtil.HandleError(xlsx.NewSheet(CurveSheet))
	SetCellValue(xlsx, CurveSheet, 1, 1, "Nx")
	var xs = make([]interface{}, 100)
	for i := range xs {
		xs[i] = i + 1
	}
	SetCol(xlsx, CurveSheet, 1, 2, xs)

	for i, r := range results {
		var name = DisplayPath(r.Path, cfg.PathStyle)
		SetCellValue(xlsx, BinsSheet, i+2, 1, name)
		SetCol(xlsx, BinsSheet, i+2, 2, uints2col(r.Bins))
		SetCellValue(xlsx, CurveSheet, i+2, 1, name)
		SetCol(xlsx, CurveSheet, i+2, 2, uints2col(r.Curve))
	}
	return xlsx.SaveAs(path)
}

func uints2col(vs []uint64) []interface{} {
	var col = make([]interface{}, len(vs))
	for i, v := range vs {
		col[i] = v
	}
	return col
}
