// Command genmock generates a synthetic HURDAT2 dataset fixture plus the
// report the service should produce for it. It runs the actual parser and
// aggregator so the expected output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/hurdat2_synthetic.txt \
//	  -report-out data/mock/expected_report.json -storms 25 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

var stormNames = []string{
	"ARLENE", "BRET", "CINDY", "DENNIS", "EMILY", "FRANKLIN", "GERT",
	"HARVEY", "IRENE", "JOSE", "KATIA", "LEE", "MARIA", "NATE", "OPHELIA",
	"PHILIPPE", "RINA", "SEAN", "TAMMY", "VINCE", "WHITNEY",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the synthetic HURDAT2 text fixture")
	reportOut := flag.String("report-out", "", "output path for the expected report JSON")
	stormCount := flag.Int("storms", 25, "number of storms to generate")
	startYear := flag.Int("start-year", 1985, "first season to generate")
	endYear := flag.Int("end-year", 2015, "last season to generate")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" || *reportOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -report-out")
	}
	if *startYear > *endYear || *stormCount <= 0 {
		return fmt.Errorf("invalid generation parameters")
	}

	rng := rand.New(rand.NewSource(*seed))
	text := generateDataset(rng, *stormCount, *startYear, *endYear)

	if err := writeFile(*out, []byte(text)); err != nil {
		return fmt.Errorf("writing dataset fixture: %w", err)
	}
	log.Printf("wrote dataset fixture: %s", *out)

	// Run the actual parse + aggregation with a fixed clock for a
	// reproducible expected report.
	report.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer report.SetClock(nil)

	storms, warnings, err := domain.ParseDataset([]byte(text))
	if err != nil {
		return fmt.Errorf("generated dataset does not parse: %w", err)
	}
	if len(warnings) > 0 {
		return fmt.Errorf("generated dataset has %d integrity warnings", len(warnings))
	}

	region, err := geo.Builtin("florida")
	if err != nil {
		return err
	}
	criteria := report.Criteria{
		Region:          region,
		StartYear:       *startYear,
		EndYear:         *endYear,
		RequireLandfall: true,
	}
	rep := report.Aggregate(storms, criteria)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(*reportOut, append(data, '\n')); err != nil {
		return fmt.Errorf("writing expected report: %w", err)
	}
	log.Printf("wrote expected report: %s", *reportOut)

	printStats(storms, rep)
	return nil
}

// generateDataset builds HURDAT2 text for the given number of storms spread
// across the season range. Roughly half the tracks are steered through the
// Florida region so aggregation fixtures have matches to assert on.
func generateDataset(rng *rand.Rand, stormCount, startYear, endYear int) string {
	var b strings.Builder

	perYear := map[int]int{}
	for i := 0; i < stormCount; i++ {
		year := startYear + rng.Intn(endYear-startYear+1)
		perYear[year]++
		cycloneNo := perYear[year]
		name := stormNames[rng.Intn(len(stormNames))]
		towardFlorida := i%2 == 0

		writeStorm(&b, rng, year, cycloneNo, name, towardFlorida)
	}
	return b.String()
}

func writeStorm(b *strings.Builder, rng *rand.Rand, year, cycloneNo int, name string, towardFlorida bool) {
	// Genesis east of the Lesser Antilles, moving west-northwest.
	lat := 12.0 + rng.Float64()*6
	lon := -45.0 - rng.Float64()*10
	wind := 25 + rng.Intn(10)
	peakWind := 50 + rng.Intn(110)

	obsCount := 12 + rng.Intn(12)
	ts := time.Date(year, time.June+time.Month(rng.Intn(5)), 1+rng.Intn(27), 0, 0, 0, 0, time.UTC)

	type obsLine struct {
		ts     time.Time
		flag   string
		status string
		lat    float64
		lon    float64
		wind   int
	}
	lines := make([]obsLine, 0, obsCount)

	flagsAvailable := year >= 1991
	landfallAt := -1
	if towardFlorida {
		landfallAt = obsCount * 3 / 4
	}

	for i := 0; i < obsCount; i++ {
		// Intensify to peak mid-track, then weaken.
		progress := float64(i) / float64(obsCount-1)
		intensity := 1 - 2*abs(progress-0.5)
		w := wind + int(float64(peakWind-wind)*intensity)

		flag := ""
		if towardFlorida {
			// Steer across the peninsula near the landfall point.
			frac := float64(i) / float64(landfallAt)
			if frac > 1 {
				frac = 1 + (float64(i-landfallAt))/float64(obsCount)
			}
			lat = 14.0 + frac*13.5
			lon = -55.0 - frac*26.5
			if i == landfallAt {
				lat, lon = 27.5, -81.5
				if flagsAvailable {
					flag = "L"
				}
			}
		} else {
			// Recurve out to sea.
			lat += 0.8 + rng.Float64()*0.4
			lon += 0.9
		}

		status := "TD"
		switch {
		case w >= 64:
			status = "HU"
		case w >= 34:
			status = "TS"
		}

		lines = append(lines, obsLine{ts: ts, flag: flag, status: status, lat: lat, lon: lon, wind: w})
		ts = ts.Add(6 * time.Hour)
	}

	fmt.Fprintf(b, "AL%02d%04d, %18s, %6d,\n", cycloneNo, year, name, len(lines))
	for _, l := range lines {
		pressure := 1010 - l.wind
		fmt.Fprintf(b, "%s, %s, %1s, %s, %s, %s, %3d, %4d,\n",
			l.ts.Format("20060102"), l.ts.Format("1504"), l.flag, l.status,
			formatLat(l.lat), formatLon(l.lon), l.wind, pressure)
	}
}

func formatLat(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%.1fS", -v)
	}
	return fmt.Sprintf("%.1fN", v)
}

func formatLon(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%.1fW", -v)
	}
	return fmt.Sprintf("%.1fE", v)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func printStats(storms []domain.Storm, rep report.Report) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total storms: %d\n", len(storms))

	flagged := 0
	for _, s := range storms {
		if s.HasLandfallFlag() {
			flagged++
		}
	}
	fmt.Printf("Tracks with L identifiers: %d\n", flagged)
	fmt.Printf("Florida matches: %d\n", rep.Summary.TotalMatches)

	fmt.Printf("By category:")
	for _, c := range []string{"td", "ts", "cat1", "cat2", "cat3", "cat4", "cat5"} {
		if n := rep.Summary.ByCategory[c]; n > 0 {
			fmt.Printf(" %s=%d", c, n)
		}
	}
	fmt.Println()

	if len(rep.Storms) > 0 {
		first := rep.Storms[0]
		fmt.Println("\nFirst matched storm:")
		fmt.Printf("  ID: %s (%s, %d)\n", first.ID, first.Name, first.Year)
		fmt.Printf("  Landfall: %s\n", first.LandfallDate.Format(time.RFC3339))
		fmt.Printf("  Peak wind: %d kt\n", first.PeakWindKt)
	}
}
