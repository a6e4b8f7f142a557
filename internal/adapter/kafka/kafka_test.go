package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

func TestSerializeToMessage(t *testing.T) {
	generatedAt := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	pressure := 983
	rep := report.Report{
		GeneratedAt: generatedAt,
		Criteria:    report.CriteriaInfo{Region: "florida", StartYear: 2000, EndYear: 2010, RequireLandfall: true},
	}
	storm := report.StormSummary{
		ID:             "AL092005",
		Name:           "KATRINA",
		Year:           2005,
		LandfallDate:   time.Date(2005, 8, 25, 22, 30, 0, 0, time.UTC),
		PeakWindKt:     70,
		PeakPressureMb: &pressure,
	}

	msg, err := serializeToMessage(rep, storm)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL092005"), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"KATRINA"`)
	assert.Contains(t, string(msg.Value), `"peak_wind_kt":70`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("florida"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(generatedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessageNullPressure(t *testing.T) {
	rep := report.Report{Criteria: report.CriteriaInfo{Region: "florida"}}
	storm := report.StormSummary{ID: "AL011950", Name: "UNNAMED", Year: 1950, PeakWindKt: 0}

	msg, err := serializeToMessage(rep, storm)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"peak_pressure_mb":null`)
}
