package report

import (
	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
)

// Aggregate evaluates every storm against the criteria and builds the report.
// The input storms are never mutated.
//
// A storm matches when it has at least one qualifying observation; it is
// counted once no matter how many observations qualify. A qualifying
// observation lies inside the region, falls within the year range, and, when
// RequireLandfall is set, carries landfall semantics (see geo.Landfalls).
// Peak intensity is selected among the qualifying observations only, so a
// stronger reading outside the landfall scope never governs.
func Aggregate(storms []domain.Storm, criteria Criteria) Report {
	summary := Summary{
		ByDecade:   make(map[int]int),
		ByCategory: make(map[string]int),
	}
	matched := make([]StormSummary, 0)

	for _, storm := range storms {
		qualifying := qualifyingObservations(storm, criteria)
		if len(qualifying) == 0 {
			continue
		}

		peak := selectPeak(qualifying)
		if !criteria.meetsMinCategory(peak.windKt) {
			continue
		}

		entry := StormSummary{
			ID:             storm.ID(),
			Name:           storm.Name,
			Year:           storm.Year,
			LandfallDate:   qualifying[0].Timestamp,
			PeakWindKt:     peak.windKt,
			PeakPressureMb: peak.pressureMb,
		}
		matched = append(matched, entry)

		decade := entry.LandfallDate.Year() / 10 * 10
		summary.ByDecade[decade]++
		summary.ByCategory[entry.PeakCategory().String()]++
	}

	summary.TotalMatches = len(matched)

	return Report{
		GeneratedAt: clock.Now().UTC(),
		Criteria: CriteriaInfo{
			Region:          criteria.Region.Name(),
			StartYear:       criteria.StartYear,
			EndYear:         criteria.EndYear,
			RequireLandfall: criteria.RequireLandfall,
			MinCategory:     criteria.MinCategory,
		},
		Summary: summary,
		Storms:  matched,
	}
}

// qualifyingObservations returns the storm's qualifying observations in track
// order. An empty result means the storm does not match.
func qualifyingObservations(storm domain.Storm, criteria Criteria) []domain.Observation {
	if !stormTouchesYearRange(storm, criteria) {
		return nil
	}

	var candidates []domain.Observation
	if criteria.RequireLandfall {
		candidates = geo.Landfalls(storm, criteria.Region)
	} else {
		for _, o := range storm.Observations {
			if criteria.Region.Contains(o.Lat, o.Lon) {
				candidates = append(candidates, o)
			}
		}
	}

	qualifying := candidates[:0]
	for _, o := range candidates {
		if criteria.yearInRange(o.Year()) {
			qualifying = append(qualifying, o)
		}
	}
	return qualifying
}

// stormTouchesYearRange is a cheap prefilter that skips region math for
// storms entirely outside the year range.
func stormTouchesYearRange(storm domain.Storm, criteria Criteria) bool {
	for _, o := range storm.Observations {
		if criteria.yearInRange(o.Year()) {
			return true
		}
	}
	return false
}

type peakReading struct {
	windKt     int
	pressureMb *int
}

// selectPeak picks the observation with the maximum real wind reading, ties
// broken by earliest timestamp. If every reading is missing, the earliest
// observation is reported with wind zero. Pressure is taken from the peak
// observation and is nil when missing.
func selectPeak(qualifying []domain.Observation) peakReading {
	var best *domain.Observation
	for i := range qualifying {
		o := &qualifying[i]
		if o.WindMissing() {
			continue
		}
		if best == nil || o.MaxWindKt > best.MaxWindKt {
			best = o
		}
	}

	if best == nil {
		first := qualifying[0]
		return peakReading{windKt: 0, pressureMb: pressureOf(first)}
	}
	return peakReading{windKt: best.MaxWindKt, pressureMb: pressureOf(*best)}
}

func pressureOf(o domain.Observation) *int {
	if o.PressureMissing() {
		return nil
	}
	p := o.MinPressureMb
	return &p
}
