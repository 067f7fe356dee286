// Package chart renders a station's daily high/low series as a PNG line chart
// with a shaded band between the two lines.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/couchcryptid/weather-chart/internal/domain"
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("no observations to plot")

// Figure size in inches, scaled by DPI into pixels.
const (
	figureWidthIn  = 14.0
	figureHeightIn = 8.0
)

// Font sizes in points.
const (
	titleSize     = 24.0
	axisNameSize  = 20.0
	tickLabelSize = 16.0
)

// Axis padding as a fraction of the data span on each side.
const (
	marginX = 0.1
	marginY = 0.2
)

var (
	highColor = drawing.Color{R: 255, G: 0, B: 0, A: 128}
	lowColor  = drawing.Color{R: 0, G: 0, B: 255, A: 128}
	bandColor = drawing.Color{R: 0, G: 0, B: 255, A: 26}
	textColor = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

// Renderer builds temperature charts at a fixed resolution.
type Renderer struct {
	dpi     float64
	period  string
	bold    *truetype.Font
	regular *truetype.Font
}

// NewRenderer creates a Renderer. period is the date-range label shown in the
// title, e.g. "2024/2025".
func NewRenderer(dpi float64, period string) (*Renderer, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	return &Renderer{dpi: dpi, period: period, bold: bold, regular: regular}, nil
}

// Figure is a configured chart ready to be rasterized.
type Figure struct {
	Title  string
	DPI    float64
	Width  int
	Height int

	graph gochart.Chart
}

// WritePNG renders the figure as a PNG image.
func (f *Figure) WritePNG(w io.Writer) error {
	if err := f.graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

// Render lays out the high line, low line, shaded band, legend and axes for
// one station.
func (r *Renderer) Render(series domain.Series, station string) (*Figure, error) {
	if series.Len() == 0 {
		return nil, ErrEmptySeries
	}

	highs := toFloats(series.Highs)
	lows := toFloats(series.Lows)
	heading := fmt.Sprintf("Daily High Temperatures, %s - %s", r.period, station)

	high := gochart.TimeSeries{
		Name:    "High",
		XValues: series.Dates,
		YValues: highs,
		YAxis:   gochart.YAxisSecondary,
		Style: gochart.Style{
			StrokeColor: highColor,
			StrokeWidth: r.points(1.5),
		},
	}
	low := gochart.TimeSeries{
		Name:    "Low",
		XValues: series.Dates,
		YValues: lows,
		YAxis:   gochart.YAxisSecondary,
		Style: gochart.Style{
			StrokeColor: lowColor,
			StrokeWidth: r.points(1.5),
		},
	}
	band := bandSeries{
		XValues: series.Dates,
		Upper:   highs,
		Lower:   lows,
		Style:   gochart.Style{FillColor: bandColor},
	}

	first, last := dateSpan(series.Dates)
	xMin, xMax := timeBounds(series.Dates)
	yTicks := degreeTicks(valueBounds(highs, lows))
	yRange := &gochart.ContinuousRange{Min: yTicks[0].Value, Max: yTicks[len(yTicks)-1].Value}
	tickStyle := gochart.Style{Font: r.regular, FontSize: tickLabelSize}

	// Rotated date labels hang right of and below their ticks, further than
	// go-chart reserves for them.
	dateLabel := r.rotatedLabelExtent(domain.DateLayout)
	margin := r.pixels(12)
	width := int(figureWidthIn * r.dpi)

	graph := gochart.Chart{
		Width:  width,
		Height: int(figureHeightIn * r.dpi),
		DPI:    r.dpi,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    r.pixels(12 + 2*titleSize*1.3 + 12),
				Left:   margin,
				Right:  margin + dateLabel,
				Bottom: margin + 2*dateLabel,
			},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat(domain.DateLayout),
			Range:          &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:          dateTicks(first, last, xMin, xMax),
			TickStyle: gochart.Style{
				Font:                r.regular,
				FontSize:            tickLabelSize,
				TextRotationDegrees: 45,
			},
		},
		// go-chart draws the primary axis on the right; the series use the
		// secondary axis so temperatures read from the left.
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: yRange,
			Ticks: yTicks,
		},
		YAxisSecondary: gochart.YAxis{
			Name: "Temperature (°F)",
			NameStyle: gochart.Style{
				Font:     r.bold,
				FontSize: axisNameSize,
			},
			ValueFormatter: wholeDegrees,
			Range:          yRange,
			Ticks:          yTicks,
			TickStyle:      tickStyle,
		},
		Series: []gochart.Series{band, high, low},
	}
	graph.Elements = []gochart.Renderable{
		title(titleStyle{
			lines: titleLines(r.period, station),
			font:  r.bold,
			size:  titleSize,
			width: width,
			dpi:   r.dpi,
		}),
		legend(&graph, legendStyle{
			title:     "Temperature Category",
			font:      r.bold,
			titleSize: 16,
			itemSize:  12,
			dpi:       r.dpi,
		}),
	}

	return &Figure{
		Title:  heading,
		DPI:    r.dpi,
		Width:  graph.Width,
		Height: graph.Height,
		graph:  graph,
	}, nil
}

// points converts typographic points to pixels at the renderer's DPI.
func (r *Renderer) points(pt float64) float64 {
	return pt * r.dpi / 72
}

func (r *Renderer) pixels(pt float64) int {
	return int(r.points(pt))
}

// rotatedLabelExtent is the width and height, in pixels, of a tick label
// rotated by 45 degrees.
func (r *Renderer) rotatedLabelExtent(label string) int {
	face := truetype.NewFace(r.regular, &truetype.Options{Size: tickLabelSize, DPI: r.dpi})
	defer face.Close()

	advance := font.MeasureString(face, label).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	return int(math.Ceil(float64(advance+height)*math.Sqrt2/2)) + 1
}

func wholeDegrees(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	f = math.Round(f)
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return fmt.Sprintf("%.0f", f)
}

func toFloats(vals []int) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

// dateSpan returns the earliest and latest dates.
func dateSpan(dates []time.Time) (time.Time, time.Time) {
	lo, hi := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(lo) {
			lo = d
		}
		if d.After(hi) {
			hi = d
		}
	}
	return lo, hi
}

// timeBounds returns the padded x range of the dates as go-chart time values.
// A single date is widened by a day on each side.
func timeBounds(dates []time.Time) (float64, float64) {
	lo, hi := dateSpan(dates)
	if lo.Equal(hi) {
		lo, hi = lo.AddDate(0, 0, -1), hi.AddDate(0, 0, 1)
	}
	minX, maxX := gochart.TimeToFloat64(lo), gochart.TimeToFloat64(hi)
	pad := (maxX - minX) * marginX
	return minX - pad, maxX + pad
}

// valueBounds returns the padded y range covering both series.
func valueBounds(highs, lows []float64) (float64, float64) {
	lo, hi := lows[0], highs[0]
	for _, vals := range [][]float64{highs, lows} {
		for _, v := range vals {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo == hi {
		lo, hi = lo-5, hi+5
	}
	pad := (hi - lo) * marginY
	return lo - pad, hi + pad
}
