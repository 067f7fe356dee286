package chart

import (
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// bandSeries fills the area between two aligned time series.
type bandSeries struct {
	Name    string
	Style   gochart.Style
	XValues []time.Time
	Upper   []float64
	Lower   []float64
}

func (b bandSeries) GetName() string             { return b.Name }
func (b bandSeries) GetStyle() gochart.Style     { return b.Style }
func (b bandSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisSecondary }
func (b bandSeries) Len() int                    { return len(b.XValues) }
func (b bandSeries) GetBoundedValues(i int) (float64, float64, float64) {
	return gochart.TimeToFloat64(b.XValues[i]), b.Upper[i], b.Lower[i]
}

func (b bandSeries) Validate() error {
	if len(b.XValues) == 0 {
		return fmt.Errorf("band series must have x values set")
	}
	if len(b.Upper) != len(b.XValues) || len(b.Lower) != len(b.XValues) {
		return fmt.Errorf("band series values misaligned: x=%d upper=%d lower=%d",
			len(b.XValues), len(b.Upper), len(b.Lower))
	}
	return nil
}

// Render traces the upper edge left to right, the lower edge back, and fills
// the closed polygon.
func (b bandSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	if len(b.XValues) == 0 {
		return
	}
	style := b.Style.InheritFrom(defaults)

	x := func(i int) int {
		return canvasBox.Left + xrange.Translate(gochart.TimeToFloat64(b.XValues[i]))
	}
	y := func(v float64) int {
		return canvasBox.Bottom - yrange.Translate(v)
	}

	r.SetFillColor(style.FillColor)
	r.MoveTo(x(0), y(b.Upper[0]))
	for i := 1; i < len(b.XValues); i++ {
		r.LineTo(x(i), y(b.Upper[i]))
	}
	for i := len(b.XValues) - 1; i >= 0; i-- {
		r.LineTo(x(i), y(b.Lower[i]))
	}
	r.Close()
	r.Fill()
}
