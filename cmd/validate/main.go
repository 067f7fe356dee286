// Command validate runs the series extractor over a station CSV and checks the
// result for integrity: row accounting, a single station, chronological
// dates, and sane temperature pairs. With -fixture it also compares the
// extracted observations against a JSON fixture written by genmock.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input data/mock/sample_station.csv \
//	  -fixture data/mock/sample_station_observations.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-chart/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the station CSV export")
	fixture := flag.String("fixture", "", "optional path to an observations JSON fixture")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *fixture); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, fixturePath string) int {
	fmt.Println("=== Station CSV Integrity Validation ===")
	fmt.Println()

	lines, err := csvfile.NewReader(inputPath, slog.Default()).ReadLines(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	res, err := domain.Extract(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: extract: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRowParity(res),
		validateSingleStation(res),
		validateChronology(res.Series),
		validateTemperatures(res.Series),
	}

	if fixturePath != "" {
		fixture, err := loadFixture(fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
			return 1
		}
		phases = append(phases, validateFixture(res, fixture))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d read, %d observations, %d skipped, stations %v\n",
		res.Rows, res.Series.Len(), res.Skipped(), res.Stations.Sorted())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadFixture(path string) ([]domain.ExportedObservation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []domain.ExportedObservation
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Row Parity ──
// Every data row is either an observation or an error log entry.

func validateRowParity(res domain.ExtractResult) *phase {
	p := &phase{name: "Phase 1: Row Parity (observations + errors)"}

	s := res.Series
	if len(s.Dates) != len(s.Highs) || len(s.Dates) != len(s.Lows) {
		p.errorf("misaligned series: %d dates, %d highs, %d lows", len(s.Dates), len(s.Highs), len(s.Lows))
	}
	if got := s.Len() + len(res.Errors); got != res.Rows {
		p.errorf("rows read %d, but observations %d + errors %d = %d", res.Rows, s.Len(), len(res.Errors), got)
	}
	for _, d := range res.Errors {
		fmt.Printf("  Note: missing data on %s\n", d.Format(domain.DateLayout))
	}
	return p
}

// ── Phase 2: Single Station ──

func validateSingleStation(res domain.ExtractResult) *phase {
	p := &phase{name: "Phase 2: Single Station"}
	if _, err := res.Stations.Name(); err != nil {
		p.errorf("%v", err)
	}
	return p
}

// ── Phase 3: Chronology ──
// The chart keeps file order, so out-of-order dates draw a tangled line.

func validateChronology(s domain.Series) *phase {
	p := &phase{name: "Phase 3: Chronological Order"}
	for i := 1; i < s.Len(); i++ {
		prev, cur := s.Dates[i-1], s.Dates[i]
		switch {
		case cur.Equal(prev):
			p.errorf("observation %d: duplicate date %s", i, cur.Format(domain.DateLayout))
		case cur.Before(prev):
			p.errorf("observation %d: %s follows %s", i, cur.Format(domain.DateLayout), prev.Format(domain.DateLayout))
		}
	}
	return p
}

// ── Phase 4: Temperature Sanity ──

func validateTemperatures(s domain.Series) *phase {
	p := &phase{name: "Phase 4: Temperature Sanity (high >= low)"}
	for i := range s.Len() {
		date, high, low := s.At(i)
		if high < low {
			p.errorf("%s: high %d below low %d", date.Format(domain.DateLayout), high, low)
		}
	}
	return p
}

// ── Phase 5: Fixture Parity ──
// Compares extracted observations with a fixture, ignoring extracted_at.

func validateFixture(res domain.ExtractResult, fixture []domain.ExportedObservation) *phase {
	p := &phase{name: "Phase 5: Fixture Parity (JSON vs CSV)"}

	station, err := res.Stations.Name()
	if err != nil {
		p.errorf("cannot compare without a single station: %v", err)
		return p
	}

	observations := res.Observations(station)
	if len(observations) != len(fixture) {
		p.errorf("count: extracted %d, fixture has %d", len(observations), len(fixture))
	}

	for i := range min(len(observations), len(fixture)) {
		ev, err := domain.SerializeObservation(observations[i])
		if err != nil {
			p.errorf("observation %d: %v", i, err)
			continue
		}
		var got domain.ExportedObservation
		if err := json.Unmarshal(ev.Value, &got); err != nil {
			p.errorf("observation %d: %v", i, err)
			continue
		}

		want := fixture[i]
		if got.ID != want.ID || got.Station != want.Station || got.Date != want.Date ||
			got.High != want.High || got.Low != want.Low {
			p.errorf("observation %d: extracted %s, fixture %s", i, summary(got), summary(want))
		}
	}
	return p
}

func summary(o domain.ExportedObservation) string {
	return fmt.Sprintf("%s %s %s high=%d low=%d", o.ID, o.Station, o.Date, o.High, o.Low)
}
