// Command genmock writes a deterministic sample station CSV in the NOAA
// Climate Data Online daily summaries layout, with a fraction of blank
// temperature cells, plus an optional JSON fixture of the observations the
// extractor produces from it.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/sample_station.csv \
//	  -json-out data/mock/sample_station_observations.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-chart/internal/domain"
	"github.com/jonboulle/clockwork"
)

var header = []string{"STATION", "NAME", "DATE", "PRCP", "TMAX", "TMIN"}

// generator produces one synthetic station's rows.
type generator struct {
	stationID string
	name      string
	start     time.Time
	days      int
	missing   float64 // probability that a temperature cell is blank
	rng       *rand.Rand
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the sample CSV")
	jsonOut := flag.String("json-out", "", "optional output path for the extracted observations JSON")
	stationID := flag.String("station-id", "USW00014839", "station identifier column value")
	name := flag.String("name", "MILWAUKEE MITCHELL INTERNATIONAL AIRPORT, WI US", "station name column value")
	start := flag.String("start", "2024-06-01", "first date, "+domain.DateLayout)
	days := flag.Int("days", 365, "number of daily rows")
	missing := flag.Float64("missing", 0.02, "fraction of rows with a blank temperature")
	seed := flag.Uint64("seed", 4150697, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *days <= 0 {
		return fmt.Errorf("-days must be positive, got %d", *days)
	}
	if *missing < 0 || *missing >= 1 {
		return fmt.Errorf("-missing must be in [0, 1), got %g", *missing)
	}

	startDate, err := time.Parse(domain.DateLayout, *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	g := generator{
		stationID: *stationID,
		name:      *name,
		start:     startDate,
		days:      *days,
		missing:   *missing,
		rng:       rand.New(rand.NewPCG(*seed, *seed>>1)),
	}
	rows := g.rows()

	if err := writeCSV(*out, rows); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	log.Printf("wrote %d rows: %s", len(rows), *out)

	if *jsonOut == "" {
		return nil
	}

	// Set a fixed clock for reproducible extracted_at values.
	domain.SetClock(clockwork.NewFakeClockAt(startDate.AddDate(0, 0, *days)))
	defer domain.SetClock(nil)

	exported, skipped, err := extract(rows)
	if err != nil {
		return fmt.Errorf("extracting observations: %w", err)
	}
	if err := writeJSON(*jsonOut, exported); err != nil {
		return fmt.Errorf("writing JSON fixture: %w", err)
	}
	log.Printf("wrote %d observations (%d skipped): %s", len(exported), skipped, *jsonOut)
	return nil
}

// rows returns the data rows in date order. Highs follow a seasonal curve
// peaking in late July; lows sit 10-25 degrees below.
func (g generator) rows() [][]string {
	rows := make([][]string, 0, g.days)
	for i := range g.days {
		date := g.start.AddDate(0, 0, i)
		season := math.Cos(2 * math.Pi * float64(date.YearDay()-205) / 365)
		high := int(math.Round(52 + 30*season + g.rng.NormFloat64()*6))
		low := high - 10 - g.rng.IntN(16)

		highCell, lowCell := strconv.Itoa(high), strconv.Itoa(low)
		if g.rng.Float64() < g.missing {
			if g.rng.IntN(2) == 0 {
				highCell = ""
			} else {
				lowCell = ""
			}
		}

		prcp := "0.00"
		if g.rng.Float64() < 0.3 {
			prcp = strconv.FormatFloat(g.rng.Float64()*1.2, 'f', 2, 64)
		}

		rows = append(rows, []string{g.stationID, g.name, date.Format(domain.DateLayout), prcp, highCell, lowCell})
	}
	return rows
}

// extract runs the real extractor over the generated rows so the fixture
// matches what the chart pipeline sees.
func extract(rows [][]string) ([]domain.ExportedObservation, int, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, 0, err
	}

	res, err := domain.Extract(strings.Split(strings.TrimRight(sb.String(), "\n"), "\n"))
	if err != nil {
		return nil, 0, err
	}
	station, err := res.Stations.Name()
	if err != nil {
		return nil, 0, err
	}

	observations := res.Observations(station)
	exported := make([]domain.ExportedObservation, 0, len(observations))
	for _, obs := range observations {
		ev, err := domain.SerializeObservation(obs)
		if err != nil {
			return nil, 0, err
		}
		var rec domain.ExportedObservation
		if err := json.Unmarshal(ev.Value, &rec); err != nil {
			return nil, 0, err
		}
		exported = append(exported, rec)
	}
	return exported, res.Skipped(), nil
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
