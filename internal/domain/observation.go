package domain

import (
	"context"
	"io"
	"time"
)

// Column positions within a CSV record.
const (
	colStation = 1
	colDate    = 2
	colHigh    = 4
	colLow     = 5

	minFields = colLow + 1
)

// DateLayout is the layout of the date column.
const DateLayout = "2006-01-02"

// Observation is one valid day: a date with its high and low temperature.
type Observation struct {
	Station string    `json:"station"`
	Date    time.Time `json:"date"`
	High    int       `json:"high_f"`
	Low     int       `json:"low_f"`
}

// Series holds index-aligned dates, highs and lows in input order.
type Series struct {
	Dates []time.Time
	Highs []int
	Lows  []int
}

// Len returns the number of observations in the series.
func (s Series) Len() int {
	return len(s.Dates)
}

// At returns the observation at index i.
func (s Series) At(i int) (time.Time, int, int) {
	return s.Dates[i], s.Highs[i], s.Lows[i]
}

func (s *Series) append(date time.Time, high, low int) {
	s.Dates = append(s.Dates, date)
	s.Highs = append(s.Highs, high)
	s.Lows = append(s.Lows, low)
}

// ExtractResult is the output of a single extraction pass.
type ExtractResult struct {
	Series   Series
	Errors   []time.Time // dates of rows skipped for bad temperatures, input order
	Stations StationSet
	Rows     int // non-header rows seen
}

// Skipped returns the number of rows dropped for bad temperature fields.
func (r ExtractResult) Skipped() int {
	return len(r.Errors)
}

// Observations flattens the series into per-day records tagged with station.
func (r ExtractResult) Observations(station string) []Observation {
	out := make([]Observation, r.Series.Len())
	for i := range out {
		date, high, low := r.Series.At(i)
		out[i] = Observation{Station: station, Date: date, High: high, Low: low}
	}
	return out
}

// OutputEvent is the serialized form of an observation destined for a sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Publisher ships extracted observations to an external system.
type Publisher interface {
	Publish(ctx context.Context, observations []Observation) error
}

// Figure is a rendered chart that can rasterize itself to PNG.
type Figure interface {
	WritePNG(w io.Writer) error
}
