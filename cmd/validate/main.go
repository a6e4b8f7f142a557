// Command validate performs offline integrity checks on a HURDAT2 dataset
// file: format validity, observation-level anomalies, track consistency, and
// archive coverage. With -region it also runs a reference aggregation and
// prints the match counts, useful for sanity-checking a new archive drop
// before pointing the service at it.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/hurdat2-1851-2021-100522.txt -region florida
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

// landfallFlagEpoch is the first season the archive records L identifiers.
const landfallFlagEpoch = 1991

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
	dataset := flag.String("dataset", "", "path to the HURDAT2 dataset file")
	regionName := flag.String("region", "", "optional builtin region for a reference aggregation")
	flag.Parse()

	if *dataset == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataset, *regionName); code != 0 {
		os.Exit(code)
	}
}

func run(datasetPath, regionName string) int {
	fmt.Println("=== HURDAT2 Dataset Validation ===")
	fmt.Println()

	raw, err := os.ReadFile(datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
		return 1
	}

	storms, warnings, err := domain.ParseDataset(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateIntegrity(warnings),
		validateTracks(storms),
		validateCoverage(storms),
	}

	if regionName != "" {
		p, code := runReferenceAggregation(storms, regionName)
		if code != 0 {
			return code
		}
		phases = append(phases, p)
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

	totalObs := 0
	for _, s := range storms {
		totalObs += len(s.Observations)
	}
	fmt.Println()
	fmt.Printf("Records: %d storms, %d observations, %d integrity warnings\n",
		len(storms), totalObs, len(warnings))

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

// ── Phase 1: Integrity ──
// Surfaces the parser's non-fatal warnings. A handful is normal for legacy
// archive vintages; a flood usually means a corrupted download.

func validateIntegrity(warnings []domain.Warning) *phase {
	p := &phase{name: "Phase 1: Observation Integrity"}
	for _, w := range warnings {
		p.errorf("%s", w)
	}
	return p
}

// ── Phase 2: Track Consistency ──

func validateTracks(storms []domain.Storm) *phase {
	p := &phase{name: "Phase 2: Track Consistency"}

	seen := map[string]bool{}
	for _, s := range storms {
		id := s.ID()
		if seen[id] {
			p.errorf("duplicate storm id %s", id)
		}
		seen[id] = true

		if len(s.Observations) == 0 {
			p.errorf("%s: all observations excluded", id)
			continue
		}

		if s.Year < landfallFlagEpoch && s.HasLandfallFlag() {
			p.errorf("%s: L identifier on a pre-%d track", id, landfallFlagEpoch)
		}

		first := s.Observations[0].Year()
		if first != s.Year && first != s.Year+1 {
			p.errorf("%s: first observation year %d does not match header year %d", id, first, s.Year)
		}
	}
	return p
}

// ── Phase 3: Coverage ──

func validateCoverage(storms []domain.Storm) *phase {
	p := &phase{name: "Phase 3: Archive Coverage"}
	if len(storms) == 0 {
		p.errorf("dataset contains no storms")
		return p
	}

	basins := map[string]int{}
	years := map[int]bool{}
	for _, s := range storms {
		basins[s.Basin]++
		years[s.Year] = true
	}

	minYear, maxYear := storms[0].Year, storms[0].Year
	for y := range years {
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	var missing []int
	for y := minYear; y <= maxYear; y++ {
		if !years[y] {
			missing = append(missing, y)
		}
	}
	// Seasons without a single storm do not occur in the Atlantic archive.
	for _, y := range missing {
		p.errorf("no storms recorded for season %d", y)
	}

	basinNames := make([]string, 0, len(basins))
	for b := range basins {
		basinNames = append(basinNames, b)
	}
	sort.Strings(basinNames)
	fmt.Printf("Coverage: seasons %d-%d, basins:", minYear, maxYear)
	for _, b := range basinNames {
		fmt.Printf(" %s=%d", b, basins[b])
	}
	fmt.Println()

	return p
}

// ── Phase 4: Reference Aggregation ──

func runReferenceAggregation(storms []domain.Storm, regionName string) (*phase, int) {
	p := &phase{name: "Phase 4: Reference Aggregation"}

	region, err := geo.Builtin(regionName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return nil, 1
	}

	// Fixed clock so repeated runs over the same file print identical output.
	report.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer report.SetClock(nil)

	criteria := report.Criteria{
		Region:          geo.NewCachedRegion(region, 10000),
		StartYear:       1851,
		EndYear:         time.Now().Year(),
		RequireLandfall: true,
	}
	if err := criteria.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return nil, 1
	}

	rep := report.Aggregate(storms, criteria)

	fmt.Printf("\nReference aggregation for region %q:\n", region.Name())
	fmt.Printf("  total matches: %d\n", rep.Summary.TotalMatches)

	decades := make([]int, 0, len(rep.Summary.ByDecade))
	for d := range rep.Summary.ByDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	fmt.Printf("  by decade:")
	for _, d := range decades {
		fmt.Printf(" %ds=%d", d, rep.Summary.ByDecade[d])
	}
	fmt.Println()

	categories := make([]string, 0, len(rep.Summary.ByCategory))
	for c := range rep.Summary.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	fmt.Printf("  by category:")
	for _, c := range categories {
		fmt.Printf(" %s=%d", c, rep.Summary.ByCategory[c])
	}
	fmt.Println()

	if rep.Summary.TotalMatches == 0 {
		p.errorf("region %q matched no storms across the whole archive", region.Name())
	}
	return p, 0
}
