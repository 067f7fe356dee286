package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformedDate marks a row whose date column does not match DateLayout.
	ErrMalformedDate = errors.New("malformed date")

	// ErrShortRow marks a row with too few columns to hold a temperature pair.
	ErrShortRow = errors.New("row has too few fields")

	// ErrNoStation is returned when no valid row named a station.
	ErrNoStation = errors.New("no station identifier found")

	// ErrMultipleStations is returned when valid rows name more than one station.
	ErrMultipleStations = errors.New("multiple station identifiers found")
)

// Extract turns CSV lines into an aligned temperature series. The first line is
// a header and is skipped unread. Rows whose high or low is not an integer are
// dropped and their date appended to the error log; every other failure
// (unparseable date, short row, broken quoting) aborts the pass.
//
// Extract is pure: the same lines always produce the same result.
func Extract(lines []string) (ExtractResult, error) {
	res := ExtractResult{Stations: StationSet{}}
	if len(lines) == 0 {
		return res, nil
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[1:], "\n")))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				pe.StartLine++
				pe.Line++
			}
			return ExtractResult{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := r.FieldPos(0)
		line++ // header
		res.Rows++

		if len(rec) < minFields {
			return ExtractResult{}, fmt.Errorf("line %d: %w: got %d, want at least %d", line, ErrShortRow, len(rec), minFields)
		}

		date, err := time.Parse(DateLayout, rec[colDate])
		if err != nil {
			return ExtractResult{}, fmt.Errorf("line %d: %w: %q", line, ErrMalformedDate, rec[colDate])
		}

		high, low, ok := parseTemperatures(rec[colHigh], rec[colLow])
		if !ok {
			res.Errors = append(res.Errors, date)
			continue
		}

		res.Series.append(date, high, low)
		res.Stations.add(rec[colStation])
	}

	return res, nil
}

// parseTemperatures parses the high and low columns as whole degrees.
// Both must parse for the row to count.
func parseTemperatures(highField, lowField string) (int, int, bool) {
	high, err := strconv.Atoi(strings.TrimSpace(highField))
	if err != nil {
		return 0, 0, false
	}
	low, err := strconv.Atoi(strings.TrimSpace(lowField))
	if err != nil {
		return 0, 0, false
	}
	return high, low, true
}
