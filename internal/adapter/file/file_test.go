package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSourceExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hurdat2.txt")
	content := "AL011980, UNNAMED, 1,\n19800801, 0000,  , TS, 15.0N, 50.0W, 45, 1000,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	source := NewSource(path, discardLogger())
	data, err := source.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestSourceExtractMissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "nope.txt"), discardLogger())
	_, err := source.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset")
}

func TestSourceExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := NewSource("irrelevant", discardLogger())
	_, err := source.Extract(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func sampleReport(generatedAt time.Time) report.Report {
	pressure := 983
	return report.Report{
		GeneratedAt: generatedAt,
		Criteria: report.CriteriaInfo{
			Region:          "florida",
			StartYear:       2000,
			EndYear:         2010,
			RequireLandfall: true,
		},
		Summary: report.Summary{
			TotalMatches: 1,
			ByDecade:     map[int]int{2000: 1},
			ByCategory:   map[string]int{"cat1": 1},
		},
		Storms: []report.StormSummary{{
			ID:             "AL092005",
			Name:           "KATRINA",
			Year:           2005,
			LandfallDate:   time.Date(2005, 8, 25, 22, 30, 0, 0, time.UTC),
			PeakWindKt:     70,
			PeakPressureMb: &pressure,
		}},
	}
}

func TestWriterPublish(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "file", writer.Name())

	generatedAt := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	require.NoError(t, writer.Publish(context.Background(), sampleReport(generatedAt)))

	path := filepath.Join(dir, "HURDAT2_REPORT_20260823T120000Z.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["total_matches"])
	storms := decoded["storms"].([]any)
	require.Len(t, storms, 1)
	assert.Equal(t, "AL092005", storms[0].(map[string]any)["id"])
}

func TestWriterSuccessiveReportsDoNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir, discardLogger())
	require.NoError(t, err)

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	require.NoError(t, writer.Publish(context.Background(), sampleReport(base)))
	require.NoError(t, writer.Publish(context.Background(), sampleReport(base.Add(time.Second))))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriterCreatesReportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	_, err := NewWriter(dir, discardLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
