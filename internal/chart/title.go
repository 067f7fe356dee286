package chart

import (
	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// minTitleSize is the smallest font size, in points, a title shrinks to.
const minTitleSize = 8.0

type titleStyle struct {
	lines []string
	font  *truetype.Font
	size  float64
	width int // full image width in pixels
	dpi   float64
}

// titleLines puts the period heading and the station on separate lines.
func titleLines(period, station string) []string {
	return []string{"Daily High Temperatures, " + period, station}
}

// title draws centred title lines along the top padding of the image. The
// font shrinks until the widest line fits between the side margins.
func title(ts titleStyle) gochart.Renderable {
	return func(r gochart.Renderer, _ gochart.Box, defaults gochart.Style) {
		px := func(pt float64) int { return int(pt * ts.dpi / 72) }
		margin := px(12)
		avail := ts.width - 2*margin

		r.ClearTextRotation()
		r.SetFont(ts.font)

		size := ts.size
		for ; size > minTitleSize; size-- {
			r.SetFontSize(size)
			if widestLine(r, ts.lines) <= avail {
				break
			}
		}
		r.SetFontSize(size)

		fontColor := defaults.FontColor
		if fontColor == (drawing.Color{}) {
			fontColor = textColor
		}
		r.SetFontColor(fontColor)

		y := margin
		for _, l := range ts.lines {
			tb := r.MeasureText(l)
			y += tb.Height()
			r.Text(l, (ts.width-tb.Width())/2, y)
			y += px(size * 0.3)
		}
	}
}

func widestLine(r gochart.Renderer, lines []string) int {
	widest := 0
	for _, l := range lines {
		widest = max(widest, r.MeasureText(l).Width())
	}
	return widest
}
