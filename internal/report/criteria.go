// Package report turns parsed storm tracks into the landfall report: storm
// matching against criteria, peak selection, and the serializable schema.
package report

import (
	"fmt"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
)

// Criteria is the immutable filter a report run is evaluated against.
// Validate before use; Aggregate assumes a valid value.
type Criteria struct {
	Region          geo.Region
	StartYear       int
	EndYear         int
	RequireLandfall bool
	MinCategory     domain.Category
}

// ConfigError is a fatal criteria problem, reported before any parsing work.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("criteria: %s: %s", e.Field, e.Reason)
}

// Validate checks the criteria and returns the first problem found.
// Both year bounds are inclusive.
func (c Criteria) Validate() error {
	if c.Region == nil {
		return &ConfigError{Field: "region", Reason: "no region configured"}
	}
	if c.StartYear <= 0 {
		return &ConfigError{Field: "start_year", Reason: fmt.Sprintf("%d is not a valid year", c.StartYear)}
	}
	if c.EndYear < c.StartYear {
		return &ConfigError{Field: "end_year", Reason: fmt.Sprintf("%d precedes start year %d", c.EndYear, c.StartYear)}
	}
	if c.MinCategory != "" && !c.MinCategory.IsValid() {
		return &ConfigError{Field: "min_category", Reason: fmt.Sprintf("unknown category %q", c.MinCategory)}
	}
	return nil
}

// yearInRange reports whether the year falls within the inclusive bounds.
func (c Criteria) yearInRange(year int) bool {
	return year >= c.StartYear && year <= c.EndYear
}

// meetsMinCategory reports whether a peak wind reading satisfies the
// category floor. An empty floor admits everything.
func (c Criteria) meetsMinCategory(peakWindKt int) bool {
	if c.MinCategory == "" {
		return true
	}
	return domain.CategoryForWind(peakWindKt).Rank() >= c.MinCategory.Rank()
}
