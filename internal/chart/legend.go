package chart

import (
	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type legendStyle struct {
	title     string
	font      *truetype.Font
	titleSize float64
	itemSize  float64
	dpi       float64
}

// legend draws a boxed legend with a bold title in the top-left corner of the
// canvas. Only named series get an entry.
func legend(c *gochart.Chart, ls legendStyle) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		var labels []string
		var colors []drawing.Color
		for _, s := range c.Series {
			if s.GetName() == "" {
				continue
			}
			labels = append(labels, s.GetName())
			colors = append(colors, s.GetStyle().StrokeColor)
		}
		if len(labels) == 0 {
			return
		}

		px := func(pt float64) int { return int(pt * ls.dpi / 72) }
		pad := px(6)
		swatch := px(24)
		gap := px(6)

		r.SetFont(ls.font)
		r.SetFontSize(ls.titleSize)
		titleBox := r.MeasureText(ls.title)

		r.SetFontSize(ls.itemSize)
		lineHeight := 0
		itemWidth := 0
		for _, l := range labels {
			tb := r.MeasureText(l)
			if tb.Height() > lineHeight {
				lineHeight = tb.Height()
			}
			if w := swatch + gap + tb.Width(); w > itemWidth {
				itemWidth = w
			}
		}
		lineHeight += gap

		width := max(titleBox.Width(), itemWidth) + 2*pad
		height := titleBox.Height() + gap + lineHeight*len(labels) + 2*pad

		left := canvasBox.Left + px(8)
		top := canvasBox.Top + px(8)

		r.SetFillColor(drawing.Color{R: 255, G: 255, B: 255, A: 204})
		r.SetStrokeColor(drawing.Color{R: 204, G: 204, B: 204, A: 255})
		r.SetStrokeWidth(float64(px(0.8) + 1))
		r.MoveTo(left, top)
		r.LineTo(left+width, top)
		r.LineTo(left+width, top+height)
		r.LineTo(left, top+height)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		fontColor := defaults.FontColor
		if fontColor == (drawing.Color{}) {
			fontColor = textColor
		}
		r.SetFontColor(fontColor)

		r.SetFontSize(ls.titleSize)
		y := top + pad + titleBox.Height()
		r.Text(ls.title, left+pad+(width-2*pad-titleBox.Width())/2, y)
		y += gap

		r.SetFontSize(ls.itemSize)
		for i, l := range labels {
			y += lineHeight
			mid := y - lineHeight/2 + gap/2

			r.SetStrokeColor(colors[i])
			r.SetStrokeWidth(float64(px(2)))
			r.MoveTo(left+pad, mid)
			r.LineTo(left+pad+swatch, mid)
			r.Stroke()

			r.Text(l, left+pad+swatch+gap, y)
		}
	}
}
