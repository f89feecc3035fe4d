package export

import (
	"bytes"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mcoot/tilescore/internal/model"
)

const (
	chartWidth  = 900
	chartHeight = 450
)

var palette = []drawing.Color{
	drawing.ColorFromHex("1b9e77"),
	drawing.ColorFromHex("d95f02"),
	drawing.ColorFromHex("7570b3"),
	drawing.ColorFromHex("e7298a"),
	drawing.ColorFromHex("66a61e"),
	drawing.ColorFromHex("e6ab02"),
	drawing.ColorFromHex("a6761d"),
	drawing.ColorFromHex("666666"),
}

// ScoreChart renders each player's running total across rounds as a PNG.
// Round 0 is the zero starting point.
func ScoreChart(series []model.ScoreSeries) ([]byte, error) {
	if len(series) == 0 || len(series[0].Totals) == 0 {
		return renderPlaceholder("No rounds recorded yet")
	}

	rounds := len(series[0].Totals)
	xValues := make([]float64, rounds+1)
	for i := range xValues {
		xValues[i] = float64(i)
	}

	low, high := 0.0, 0.0
	lines := make([]chart.Series, 0, len(series))
	for i, s := range series {
		yValues := make([]float64, rounds+1)
		copy(yValues[1:], s.Totals)
		for _, y := range yValues {
			low = math.Min(low, y)
			high = math.Max(high, y)
		}
		color := palette[i%len(palette)]
		lines = append(lines, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	// A flat history still needs a non-zero Y span
	if high-low < 1 {
		high++
		low--
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 160, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Round",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(rounds)},
			ValueFormatter: roundFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Score",
			Range: &chart.ContinuousRange{Min: low, Max: high},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func roundFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return chart.IntValueFormatter(int(math.Round(f)))
	}
	return ""
}

func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		XAxis:  chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: -1, Max: 1}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("cccccc"),
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorFromHex("333333"))
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
