package report

import (
	"io"
	"strconv"

	"SeqStats/pkg/seqStats"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func generateLineItems(vs []uint64) []opts.LineData {
	var items = make([]opts.LineData, 0, len(vs))
	for _, v := range vs {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

// PlotNxCurve renders an interactive html line chart of N1..N100 per result.
func PlotNxCurve(w io.Writer, results []*seqStats.FileStats, cfg Config) error {
	var xAxis = make([]int, 100)
	for i := range xAxis {
		xAxis[i] = i + 1
	}

	var line = charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Nx curve",
			Subtitle: "contig length at which x% of the total is covered",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (%)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "length"}),
	)
	line.SetXAxis(xAxis)
	for _, r := range results {
		line.AddSeries(DisplayPath(r.Path, cfg.PathStyle), generateLineItems(r.Curve))
	}
	return line.Render(w)
}

// PlotLengthBins saves the read-length histograms as one line per result.
// The image format follows the file extension.
func PlotLengthBins(path string, results []*seqStats.FileStats, cfg Config) error {
	var p = plot.New()
	p.Title.Text = "Read length distribution"
	p.X.Label.Text = "length bin (<=)"
	p.Y.Label.Text = "reads"

	var names = make([]string, len(seqStats.BinBounds))
	for i, b := range seqStats.BinBounds {
		names[i] = strconv.FormatUint(b, 10)
	}
	p.NominalX(names...)

	for i, r := range results {
		var xys = make(plotter.XYs, len(r.Bins))
		for j, n := range r.Bins {
			xys[j].X = float64(j)
			xys[j].Y = float64(n)
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Shape = plotutil.Shape(i)
		points.Color = plotutil.Color(i)
		p.Add(line, points)
		p.Legend.Add(DisplayPath(r.Path, cfg.PathStyle), line, points)
	}
	return p.Save(16*vg.Inch, 9*vg.Inch, path)
}
