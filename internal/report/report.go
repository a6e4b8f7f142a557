package report

import (
	"time"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
)

// Report is the serializable output of an aggregation run. The shape is the
// published schema; sinks serialize it as-is and add no fields.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Criteria    CriteriaInfo   `json:"criteria"`
	Summary     Summary        `json:"summary"`
	Storms      []StormSummary `json:"storms"`
}

// CriteriaInfo echoes the criteria a report was produced under, so a report
// file is interpretable on its own.
type CriteriaInfo struct {
	Region          string          `json:"region"`
	StartYear       int             `json:"start_year"`
	EndYear         int             `json:"end_year"`
	RequireLandfall bool            `json:"require_landfall"`
	MinCategory     domain.Category `json:"min_category,omitempty"`
}

// Summary holds the aggregate counts over matched storms.
type Summary struct {
	TotalMatches int            `json:"total_matches"`
	ByDecade     map[int]int    `json:"by_decade"`
	ByCategory   map[string]int `json:"by_category"`
}

// StormSummary is one matched storm. LandfallDate is the first qualifying
// observation's timestamp. PeakPressureMb is nil when the peak observation
// carries the missing-pressure sentinel.
type StormSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Year           int       `json:"year"`
	LandfallDate   time.Time `json:"landfall_date"`
	PeakWindKt     int       `json:"peak_wind_kt"`
	PeakPressureMb *int      `json:"peak_pressure_mb"`
}

// PeakCategory returns the intensity class of the storm's reported peak.
func (s StormSummary) PeakCategory() domain.Category {
	return domain.CategoryForWind(s.PeakWindKt)
}
