package chart

import (
	"math"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/weather-chart/internal/domain"
)

const (
	maxDateTicks   = 12
	maxDegreeTicks = 10
)

// degreeSteps are the candidate spacings for temperature ticks.
var degreeSteps = []int{1, 2, 5, 10, 20, 25, 50, 100}

// degreeTicks returns whole-degree ticks at the smallest step that keeps the
// count under maxDegreeTicks. The first and last ticks bracket [lo, hi], so
// they also define the axis range.
func degreeTicks(lo, hi float64) []gochart.Tick {
	step := degreeSteps[len(degreeSteps)-1]
	for _, s := range degreeSteps {
		if (math.Ceil(hi/float64(s))-math.Floor(lo/float64(s)))+1 <= maxDegreeTicks {
			step = s
			break
		}
	}

	first := int(math.Floor(lo/float64(step))) * step
	last := int(math.Ceil(hi/float64(step))) * step
	ticks := make([]gochart.Tick, 0, (last-first)/step+1)
	for v := first; v <= last; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// dateTicks labels dates inside [first, last] only. Month starts are used when
// the span covers at least two of them, otherwise evenly spaced days. Unlabelled
// ticks at lo and hi pin the padded axis range.
func dateTicks(first, last time.Time, lo, hi float64) []gochart.Tick {
	dates := monthStarts(first, last)
	if len(dates) < 2 {
		dates = evenDays(first, last)
	}

	ticks := make([]gochart.Tick, 0, len(dates)+2)
	ticks = append(ticks, gochart.Tick{Value: lo})
	for _, d := range dates {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(d), Label: d.Format(domain.DateLayout)})
	}
	return append(ticks, gochart.Tick{Value: hi})
}

// monthStarts returns first-of-month dates in [first, last], thinned to every
// nth month so there are at most maxDateTicks.
func monthStarts(first, last time.Time) []time.Time {
	var all []time.Time
	m := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())
	if m.Before(first) {
		m = m.AddDate(0, 1, 0)
	}
	for ; !m.After(last); m = m.AddDate(0, 1, 0) {
		all = append(all, m)
	}
	return thin(all)
}

func evenDays(first, last time.Time) []time.Time {
	var all []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		all = append(all, d)
	}
	return thin(all)
}

func thin(dates []time.Time) []time.Time {
	every := (len(dates) + maxDateTicks - 1) / maxDateTicks
	if every <= 1 {
		return dates
	}
	out := make([]time.Time, 0, maxDateTicks)
	for i := 0; i < len(dates); i += every {
		out = append(out, dates[i])
	}
	return out
}
