package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
	"github.com/couchcryptid/hurdat2-report-service/internal/observability"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

const testDataset = "AL092005,            KATRINA,      2,\n" +
	"20050823, 1800,  , TD, 23.1N,  75.1W,  30, 1008,\n" +
	"20050825, 2230, L, HU, 25.9N,  80.3W,  70,  983,\n"

const malformedDataset = "AL092005, KATRINA, 2,\n" +
	"20050823, 1800,  , TD, 23.1N,  75.1W,  30, 1008,\n"

// stubSource returns queued responses in order, repeating the last one.
type stubSource struct {
	mu        sync.Mutex
	responses []extractResponse
	calls     int
}

type extractResponse struct {
	data []byte
	err  error
}

func (s *stubSource) Extract(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp.data, resp.err
}

// stubSink records published reports and can fail a set number of times.
type stubSink struct {
	mu        sync.Mutex
	name      string
	failures  int
	published []report.Report
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Publish(_ context.Context, rep report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("sink unavailable")
	}
	s.published = append(s.published, rep)
	return nil
}

func (s *stubSink) publishedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func testCriteria(t *testing.T) report.Criteria {
	t.Helper()
	region, err := geo.Builtin("florida")
	require.NoError(t, err)
	return report.Criteria{
		Region:          region,
		StartYear:       2000,
		EndYear:         2010,
		RequireLandfall: true,
	}
}

func newTestPipeline(t *testing.T, source DatasetSource, sinks ...ReportSink) *Pipeline {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	metrics := observability.NewMetricsForTesting()
	return New(source, sinks, testCriteria(t), logger, metrics, 0)
}

func TestRunOneShotPublishesAndStops(t *testing.T) {
	source := &stubSource{responses: []extractResponse{{data: []byte(testDataset)}}}
	sink := &stubSink{name: "file"}
	p := newTestPipeline(t, source, sink)

	require.Error(t, p.CheckReadiness(context.Background()))

	err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, sink.publishedCount())
	rep := sink.published[0]
	assert.Equal(t, 1, rep.Summary.TotalMatches)
	assert.Equal(t, "AL092005", rep.Storms[0].ID)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestRunHaltsOnFormatError(t *testing.T) {
	source := &stubSource{responses: []extractResponse{{data: []byte(malformedDataset)}}}
	sink := &stubSink{name: "file"}
	p := newTestPipeline(t, source, sink)

	err := p.Run(context.Background())
	require.Error(t, err)

	var formatErr *domain.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Zero(t, sink.publishedCount())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestRunRetriesExtractFailures(t *testing.T) {
	source := &stubSource{responses: []extractResponse{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{data: []byte(testDataset)},
	}}
	sink := &stubSink{name: "file"}
	p := newTestPipeline(t, source, sink)

	err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, source.calls)
	assert.Equal(t, 1, sink.publishedCount())
}

func TestRunRetriesSinkFailures(t *testing.T) {
	source := &stubSource{responses: []extractResponse{{data: []byte(testDataset)}}}
	flaky := &stubSink{name: "kafka", failures: 1}
	steady := &stubSink{name: "file"}
	p := newTestPipeline(t, source, flaky, steady)

	err := p.Run(context.Background())
	require.NoError(t, err)

	// The healthy sink is attempted on every cycle, including the failed one.
	assert.Equal(t, 1, flaky.publishedCount())
	assert.Equal(t, 2, steady.publishedCount())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	source := &stubSource{responses: []extractResponse{{err: errors.New("always down")}}}
	sink := &stubSink{name: "file"}
	p := newTestPipeline(t, source, sink)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop after context cancellation")
	}
	assert.Zero(t, sink.publishedCount())
}

func TestRunPeriodicRefresh(t *testing.T) {
	source := &stubSource{responses: []extractResponse{{data: []byte(testDataset)}}}
	sink := &stubSink{name: "file"}
	logger := slog.New(slog.DiscardHandler)
	metrics := observability.NewMetricsForTesting()
	p := New(source, []ReportSink{sink}, testCriteria(t), logger, metrics, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		return sink.publishedCount() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop after context cancellation")
	}
}
