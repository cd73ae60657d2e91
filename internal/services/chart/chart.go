// Package chart renders price history charts as PNG images
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/harmonk/papertrade/internal/models"
)

// RenderPriceChart renders a PNG chart from a price history series.
// Close price (blue solid) with 20- and 50-period moving average overlays
// (dashed), plus volume on the secondary axis. Returns raw PNG bytes.
func RenderPriceChart(history *models.History) ([]byte, error) {
	if history == nil || len(history.Candles) < 2 {
		n := 0
		if history != nil {
			n = len(history.Candles)
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	candles := history.Candles
	xValues := make([]time.Time, len(candles))
	closeY := make([]float64, len(candles))
	volumeY := make([]float64, len(candles))

	for i, c := range candles {
		xValues[i] = c.Timestamp
		closeY[i] = c.Close
		volumeY[i] = float64(c.Volume)
	}

	closeSeries := chart.TimeSeries{
		Name: fmt.Sprintf("%s Close", history.Symbol),
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: closeY,
	}

	volumeSeries := chart.TimeSeries{
		Name: "Volume",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("d1d5db"), // gray-300
			StrokeWidth: 1.0,
		},
		YAxis:   chart.YAxisSecondary,
		XValues: xValues,
		YValues: volumeY,
	}

	series := []chart.Series{volumeSeries, closeSeries}

	if ma := movingAverage(closeY, 20); ma != nil {
		series = append(series, chart.TimeSeries{
			Name: "MA20",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("f59e0b"), // amber-500
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues[19:],
			YValues: ma,
		})
	}
	if ma := movingAverage(closeY, 50); ma != nil {
		series = append(series, chart.TimeSeries{
			Name: "MA50",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("8b5cf6"), // violet-500
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues[49:],
			YValues: ma,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Price History", history.Symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		YAxisSecondary: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fM", f/1e6)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// movingAverage returns the simple moving average of window w over values,
// one entry per position with a full window. Returns nil when the series is
// shorter than the window.
func movingAverage(values []float64, w int) []float64 {
	if len(values) < w {
		return nil
	}
	out := make([]float64, 0, len(values)-w+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= w {
			sum -= values[i-w]
		}
		if i >= w-1 {
			out = append(out, sum/float64(w))
		}
	}
	return out
}
