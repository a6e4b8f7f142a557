package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStormID(t *testing.T) {
	storm := Storm{Basin: "AL", CycloneNo: 9, Year: 2005, Name: "KATRINA"}
	assert.Equal(t, "AL092005", storm.ID())

	single := Storm{Basin: "EP", CycloneNo: 1, Year: 1997, Name: "ANDRES"}
	assert.Equal(t, "EP011997", single.ID())
}

func TestObservationMissingSentinels(t *testing.T) {
	missing := Observation{MaxWindKt: MissingWind, MinPressureMb: MissingPressure}
	assert.True(t, missing.WindMissing())
	assert.True(t, missing.PressureMissing())

	real := Observation{MaxWindKt: 0, MinPressureMb: 1013}
	assert.False(t, real.WindMissing())
	assert.False(t, real.PressureMissing())
}

func TestHasLandfallFlag(t *testing.T) {
	flagged := Storm{Observations: []Observation{
		{RecordIdentifier: ""},
		{RecordIdentifier: RecordLandfall},
	}}
	assert.True(t, flagged.HasLandfallFlag())

	unflagged := Storm{Observations: []Observation{
		{RecordIdentifier: ""},
		{RecordIdentifier: RecordIntensityPeak},
	}}
	assert.False(t, unflagged.HasLandfallFlag())
}

func TestObservationYear(t *testing.T) {
	o := Observation{Timestamp: time.Date(2005, 8, 29, 11, 10, 0, 0, time.UTC)}
	assert.Equal(t, 2005, o.Year())
}

func TestCategoryForWind(t *testing.T) {
	tests := []struct {
		windKt int
		want   Category
	}{
		{windKt: 0, want: CategoryTropicalDepression},
		{windKt: 33, want: CategoryTropicalDepression},
		{windKt: 34, want: CategoryTropicalStorm},
		{windKt: 63, want: CategoryTropicalStorm},
		{windKt: 64, want: CategoryOne},
		{windKt: 82, want: CategoryOne},
		{windKt: 83, want: CategoryTwo},
		{windKt: 95, want: CategoryTwo},
		{windKt: 96, want: CategoryThree},
		{windKt: 112, want: CategoryThree},
		{windKt: 113, want: CategoryFour},
		{windKt: 136, want: CategoryFour},
		{windKt: 137, want: CategoryFive},
		{windKt: 165, want: CategoryFive},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryForWind(tt.windKt))
		})
	}
}

func TestCategoryRankOrdering(t *testing.T) {
	ordered := []Category{
		CategoryTropicalDepression, CategoryTropicalStorm, CategoryOne,
		CategoryTwo, CategoryThree, CategoryFour, CategoryFive,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}
	assert.Equal(t, -1, Category("cat9").Rank())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusHurricane.IsValid())
	assert.True(t, StatusTropicalWave.IsValid())
	assert.False(t, Status("XX").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestRecordIdentifierIsValid(t *testing.T) {
	assert.True(t, RecordIdentifier("").IsValid())
	assert.True(t, RecordLandfall.IsValid())
	assert.False(t, RecordIdentifier("Z").IsValid())
}
