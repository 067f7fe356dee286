package chart

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/weather-chart/internal/domain"
)

func testSeries(n int) domain.Series {
	var s domain.Series
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Dates = append(s.Dates, start.AddDate(0, 0, i))
		s.Highs = append(s.Highs, 70+i%8)
		s.Lows = append(s.Lows, 52+i%5)
	}
	return s
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(300, "2024/2025")
	require.NoError(t, err)
	return r
}

// renderImage rasterizes fig and decodes the result.
func renderImage(t *testing.T, fig *Figure) image.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fig.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img
}

func isBackground(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r>>8 >= 250 && g>>8 >= 250 && b>>8 >= 250
}

// inkedColumns reports the columns in [0, width) that hold a non-background
// pixel in rows [top, bottom).
func inkedColumns(img image.Image, top, bottom int) []int {
	var cols []int
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := top; y < bottom; y++ {
			if !isBackground(img, x, y) {
				cols = append(cols, x)
				break
			}
		}
	}
	return cols
}

func TestRender_EmptySeries(t *testing.T) {
	_, err := newTestRenderer(t).Render(domain.Series{}, "STN")
	require.ErrorIs(t, err, ErrEmptySeries)
}

func TestRender_FigureLayout(t *testing.T) {
	fig, err := newTestRenderer(t).Render(testSeries(10), "SEATTLE TACOMA AIRPORT, WA US")
	require.NoError(t, err)

	assert.Equal(t, "Daily High Temperatures, 2024/2025 - SEATTLE TACOMA AIRPORT, WA US", fig.Title)
	assert.Equal(t, 4200, fig.Width)
	assert.Equal(t, 2400, fig.Height)
	assert.InDelta(t, 300.0, fig.DPI, 0.001)

	require.Len(t, fig.graph.Series, 3)
	assert.Equal(t, "", fig.graph.Series[0].GetName(), "band has no legend entry")
	assert.Equal(t, "High", fig.graph.Series[1].GetName())
	assert.Equal(t, "Low", fig.graph.Series[2].GetName())
	assert.Equal(t, "Temperature (°F)", fig.graph.YAxisSecondary.Name)
	assert.True(t, fig.graph.YAxis.Style.Hidden, "primary axis draws on the right")
	for _, s := range fig.graph.Series {
		assert.Equal(t, gochart.YAxisSecondary, s.GetYAxis())
	}
	assert.Empty(t, fig.graph.XAxis.Name)
	assert.InDelta(t, 45.0, fig.graph.XAxis.TickStyle.TextRotationDegrees, 0.001)
	assert.Len(t, fig.graph.Elements, 2)
	assert.Empty(t, fig.graph.Title, "title is drawn as an element")
}

func TestFigure_WritePNG(t *testing.T) {
	fig, err := newTestRenderer(t).Render(testSeries(400), "STN")
	require.NoError(t, err)

	img := renderImage(t, fig)
	bounds := img.Bounds()
	assert.Equal(t, fig.Width, bounds.Dx())
	assert.Equal(t, fig.Height, bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if !isBackground(img, bounds.Max.X-1, y) {
			t.Fatalf("rightmost column has ink at y=%d", y)
		}
	}
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		if !isBackground(img, x, bounds.Max.Y-1) {
			t.Fatalf("bottom row has ink at x=%d", x)
		}
	}
}

func TestFigure_LongStationTitleFits(t *testing.T) {
	station := "MILWAUKEE MITCHELL INTERNATIONAL AIRPORT, WI US"
	require.GreaterOrEqual(t, len(station), 46)

	fig, err := newTestRenderer(t).Render(testSeries(30), station)
	require.NoError(t, err)

	img := renderImage(t, fig)
	titleBottom := fig.graph.Background.Padding.Top
	cols := inkedColumns(img, 0, titleBottom)

	require.NotEmpty(t, cols, "title was not drawn")
	assert.Positive(t, cols[0], "title touches the left edge")
	assert.Less(t, cols[len(cols)-1], fig.Width-1, "title touches the right edge")
	for y := 0; y < titleBottom; y++ {
		assert.True(t, isBackground(img, 0, y), "left edge ink at y=%d", y)
		assert.True(t, isBackground(img, fig.Width-1, y), "right edge ink at y=%d", y)
	}
}

func TestTitleLines(t *testing.T) {
	assert.Equal(t,
		[]string{"Daily High Temperatures, 2024/2025", "STN_A"},
		titleLines("2024/2025", "STN_A"))
}

func TestDegreeTicks(t *testing.T) {
	tests := []struct {
		name       string
		lo, hi     float64
		wantLabels []string
	}{
		{"fives", 41.2, 83.7, []string{"40", "45", "50", "55", "60", "65", "70", "75", "80", "85"}},
		{"tens across zero", -17.4, 62.1, []string{"-20", "-10", "0", "10", "20", "30", "40", "50", "60", "70"}},
		{"ones", 48, 53, []string{"48", "49", "50", "51", "52", "53"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := degreeTicks(tt.lo, tt.hi)
			labels := make([]string, len(ticks))
			for i, tick := range ticks {
				labels[i] = tick.Label
			}
			assert.Equal(t, tt.wantLabels, labels)
			assert.LessOrEqual(t, ticks[0].Value, tt.lo)
			assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, tt.hi)
		})
	}
}

func TestDateTicks(t *testing.T) {
	first := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("month starts inside the data", func(t *testing.T) {
		last := first.AddDate(1, 0, 0)
		lo, hi := timeBounds([]time.Time{first, last})
		ticks := dateTicks(first, last, lo, hi)

		require.GreaterOrEqual(t, len(ticks), 4)
		assert.InDelta(t, lo, ticks[0].Value, 0.001)
		assert.Empty(t, ticks[0].Label)
		assert.InDelta(t, hi, ticks[len(ticks)-1].Value, 0.001)
		assert.Empty(t, ticks[len(ticks)-1].Label)

		labelled := ticks[1 : len(ticks)-1]
		assert.LessOrEqual(t, len(labelled), maxDateTicks)
		assert.Equal(t, "2024-07-01", labelled[0].Label)
		for _, tick := range labelled {
			assert.GreaterOrEqual(t, tick.Value, gochart.TimeToFloat64(first))
			assert.LessOrEqual(t, tick.Value, gochart.TimeToFloat64(last))
		}
	})

	t.Run("short span uses days", func(t *testing.T) {
		last := first.AddDate(0, 0, 3)
		lo, hi := timeBounds([]time.Time{first, last})
		ticks := dateTicks(first, last, lo, hi)

		require.Len(t, ticks, 6)
		assert.Equal(t, "2024-06-15", ticks[1].Label)
		assert.Equal(t, "2024-06-18", ticks[4].Label)
	})
}

func TestFigure_WritePNG_SinglePoint(t *testing.T) {
	fig, err := newTestRenderer(t).Render(testSeries(1), "STN")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fig.WritePNG(&buf))
	assert.NotZero(t, buf.Len())
}

func TestTimeBounds(t *testing.T) {
	d0 := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	d9 := d0.AddDate(0, 0, 9)

	t.Run("padded by ten percent", func(t *testing.T) {
		lo, hi := timeBounds([]time.Time{d9, d0})
		span := gochart.TimeToFloat64(d9) - gochart.TimeToFloat64(d0)
		assert.InDelta(t, gochart.TimeToFloat64(d0)-span*marginX, lo, 1)
		assert.InDelta(t, gochart.TimeToFloat64(d9)+span*marginX, hi, 1)
	})

	t.Run("single date widened", func(t *testing.T) {
		lo, hi := timeBounds([]time.Time{d0})
		assert.Less(t, lo, gochart.TimeToFloat64(d0))
		assert.Greater(t, hi, gochart.TimeToFloat64(d0))
	})
}

func TestValueBounds(t *testing.T) {
	t.Run("covers both series with margin", func(t *testing.T) {
		lo, hi := valueBounds([]float64{60, 80}, []float64{40, 50})
		assert.InDelta(t, 40-8.0, lo, 0.001)
		assert.InDelta(t, 80+8.0, hi, 0.001)
	})

	t.Run("flat series widened", func(t *testing.T) {
		lo, hi := valueBounds([]float64{50}, []float64{50})
		assert.Less(t, lo, 50.0)
		assert.Greater(t, hi, 50.0)
	})
}

func TestBandSeries_Validate(t *testing.T) {
	d := []time.Time{time.Now(), time.Now().Add(time.Hour)}

	assert.NoError(t, bandSeries{XValues: d, Upper: []float64{2, 3}, Lower: []float64{1, 2}}.Validate())
	assert.Error(t, bandSeries{}.Validate())
	assert.Error(t, bandSeries{XValues: d, Upper: []float64{2}, Lower: []float64{1, 2}}.Validate())
}

func TestBandSeries_GetBoundedValues(t *testing.T) {
	d := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	b := bandSeries{XValues: []time.Time{d}, Upper: []float64{70}, Lower: []float64{50}}

	x, upper, lower := b.GetBoundedValues(0)
	assert.InDelta(t, gochart.TimeToFloat64(d), x, 0.001)
	assert.InDelta(t, 70.0, upper, 0.001)
	assert.InDelta(t, 50.0, lower, 0.001)
	assert.Equal(t, 1, b.Len())
}

func TestWholeDegrees(t *testing.T) {
	assert.Equal(t, "55", wholeDegrees(55.2))
	assert.Equal(t, "-3", wholeDegrees(-3.0))
	assert.Equal(t, "0", wholeDegrees(-0.4))
	assert.Equal(t, "", wholeDegrees("x"))
}
