package domain

import (
	"fmt"
	"time"
)

// Missing-value sentinels as encoded in the archive. Distinct from a true
// zero reading.
const (
	MissingWind     = -99
	MissingPressure = -999
)

// Status is the two-letter system classification at a point in time.
type Status string

// Status enum values, per the HURDAT2 format description.
const (
	StatusTropicalDepression    Status = "TD"
	StatusTropicalStorm         Status = "TS"
	StatusHurricane             Status = "HU"
	StatusExtratropical         Status = "EX"
	StatusSubtropicalDepression Status = "SD"
	StatusSubtropicalStorm      Status = "SS"
	StatusLow                   Status = "LO"
	StatusTropicalWave          Status = "WV"
	StatusDisturbance           Status = "DB"
)

// IsValid returns true if the status is a known archive classification code.
func (s Status) IsValid() bool {
	switch s {
	case StatusTropicalDepression, StatusTropicalStorm, StatusHurricane,
		StatusExtratropical, StatusSubtropicalDepression, StatusSubtropicalStorm,
		StatusLow, StatusTropicalWave, StatusDisturbance:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// RecordIdentifier is the optional single-letter event flag on an observation.
type RecordIdentifier string

// RecordIdentifier enum values. Blank on most observation lines.
const (
	RecordClosestApproach RecordIdentifier = "C"
	RecordGenesis         RecordIdentifier = "G"
	RecordIntensityPeak   RecordIdentifier = "I"
	RecordLandfall        RecordIdentifier = "L"
	RecordMinPressure     RecordIdentifier = "P"
	RecordRapidChange     RecordIdentifier = "R"
	RecordStatusChange    RecordIdentifier = "S"
	RecordTrackDetail     RecordIdentifier = "T"
	RecordMaxWind         RecordIdentifier = "W"
)

// IsValid returns true for a known flag or the empty (absent) value.
func (r RecordIdentifier) IsValid() bool {
	switch r {
	case "", RecordClosestApproach, RecordGenesis, RecordIntensityPeak,
		RecordLandfall, RecordMinPressure, RecordRapidChange,
		RecordStatusChange, RecordTrackDetail, RecordMaxWind:
		return true
	}
	return false
}

// Observation is one best-track point: the storm's state at a single instant.
type Observation struct {
	Timestamp        time.Time        `json:"timestamp"`
	RecordIdentifier RecordIdentifier `json:"record_identifier,omitempty"`
	Status           Status           `json:"status"`
	Lat              float64          `json:"lat"`
	Lon              float64          `json:"lon"`
	MaxWindKt        int              `json:"max_wind_kt"`
	MinPressureMb    int              `json:"min_pressure_mb"`
}

// IsLandfall reports whether the observation carries the archive's landfall flag.
func (o Observation) IsLandfall() bool { return o.RecordIdentifier == RecordLandfall }

// WindMissing reports whether the wind value is the missing sentinel.
// Any negative value is treated as unrecorded.
func (o Observation) WindMissing() bool { return o.MaxWindKt < 0 }

// PressureMissing reports whether the pressure value is the missing sentinel.
func (o Observation) PressureMissing() bool { return o.MinPressureMb < 0 }

// Year returns the calendar year of the observation.
func (o Observation) Year() int { return o.Timestamp.Year() }

// Storm is one cyclone's best track: identity plus its ordered observations.
// Storms are immutable after parsing; filtering produces derived views.
type Storm struct {
	Basin        string        `json:"basin"`
	CycloneNo    int           `json:"cyclone_no"`
	Year         int           `json:"year"`
	Name         string        `json:"name"`
	Observations []Observation `json:"observations"`
}

// ID returns the archive identifier, e.g. "AL092005". Unique across the
// dataset; cyclone numbers alone repeat between seasons.
func (s Storm) ID() string {
	return fmt.Sprintf("%s%02d%04d", s.Basin, s.CycloneNo, s.Year)
}

// HasLandfallFlag reports whether any observation carries the L flag.
// Tracks predating 1991 never do.
func (s Storm) HasLandfallFlag() bool {
	for _, o := range s.Observations {
		if o.IsLandfall() {
			return true
		}
	}
	return false
}

// Category is a storm intensity class derived from peak sustained wind.
type Category string

// Category values: the Saffir-Simpson hurricane scale plus the two
// sub-hurricane classes used in report breakdowns.
const (
	CategoryTropicalDepression Category = "td"
	CategoryTropicalStorm      Category = "ts"
	CategoryOne                Category = "cat1"
	CategoryTwo                Category = "cat2"
	CategoryThree              Category = "cat3"
	CategoryFour               Category = "cat4"
	CategoryFive               Category = "cat5"
)

// IsValid returns true if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTropicalDepression, CategoryTropicalStorm, CategoryOne,
		CategoryTwo, CategoryThree, CategoryFour, CategoryFive:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Rank orders categories by intensity for threshold comparisons:
// td=0, ts=1, cat1=2 ... cat5=6. Unknown values rank below td.
func (c Category) Rank() int {
	switch c {
	case CategoryTropicalDepression:
		return 0
	case CategoryTropicalStorm:
		return 1
	case CategoryOne:
		return 2
	case CategoryTwo:
		return 3
	case CategoryThree:
		return 4
	case CategoryFour:
		return 5
	case CategoryFive:
		return 6
	default:
		return -1
	}
}

// CategoryForWind maps a sustained wind reading in knots to its category
// using the NHC Saffir-Simpson thresholds.
func CategoryForWind(kt int) Category {
	switch {
	case kt < 34:
		return CategoryTropicalDepression
	case kt < 64:
		return CategoryTropicalStorm
	case kt < 83:
		return CategoryOne
	case kt < 96:
		return CategoryTwo
	case kt < 113:
		return CategoryThree
	case kt < 137:
		return CategoryFour
	default:
		return CategoryFive
	}
}
