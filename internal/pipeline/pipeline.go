// Package pipeline orchestrates the extract-aggregate-publish cycle that
// turns a HURDAT2 dataset into a landfall report.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/observability"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

// DatasetSource reads the raw HURDAT2 text from wherever it lives.
type DatasetSource interface {
	Extract(ctx context.Context) ([]byte, error)
}

// ReportSink publishes a finished report somewhere.
type ReportSink interface {
	Name() string
	Publish(ctx context.Context, rep report.Report) error
}

// Pipeline orchestrates the extract-aggregate-publish loop.
type Pipeline struct {
	source          DatasetSource
	sinks           []ReportSink
	criteria        report.Criteria
	logger          *slog.Logger
	metrics         *observability.Metrics
	ready           atomic.Bool
	refreshInterval time.Duration
}

// New creates a Pipeline with the given stages and observability. A zero
// refresh interval means one-shot: generate a single report and stop.
func New(source DatasetSource, sinks []ReportSink, criteria report.Criteria, logger *slog.Logger, metrics *observability.Metrics, refreshInterval time.Duration) *Pipeline {
	return &Pipeline{
		source:          source,
		sinks:           sinks,
		criteria:        criteria,
		logger:          logger,
		metrics:         metrics,
		refreshInterval: refreshInterval,
	}
}

// CheckReadiness returns nil if the pipeline has published at least one report,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published a report yet")
	}
	return nil
}

// Run executes report cycles until the context is cancelled. Dataset format
// errors are fatal; source and sink failures are retried with backoff.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"region", p.criteria.Region.Name(),
		"year_start", p.criteria.StartYear,
		"year_end", p.criteria.EndYear,
		"require_landfall", p.criteria.RequireLandfall,
		"refresh_interval", p.refreshInterval,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		published, err := p.runCycle(ctx, &backoff, maxBackoff)
		if err != nil {
			return err
		}

		if published {
			if p.refreshInterval == 0 {
				p.logger.Info("one-shot report complete")
				return nil
			}
			if !sleepWithContext(ctx, p.refreshInterval) {
				return nil
			}
		}
	}
}

// runCycle runs one extract-aggregate-publish cycle. It returns whether a
// report was published this cycle; a non-nil error stops the pipeline.
func (p *Pipeline) runCycle(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) (bool, error) {
	start := time.Now()

	raw, err := p.source.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		p.logger.Error("dataset extract failed", "error", err)
		p.backoffOrStop(ctx, backoff, maxBackoff)
		return false, nil
	}

	storms, warnings, err := domain.ParseDataset(raw)
	if err != nil {
		// A malformed dataset will not fix itself; halt instead of retrying.
		p.metrics.ParseFailures.Inc()
		return false, err
	}
	*backoff = 200 * time.Millisecond

	p.metrics.StormsParsed.Add(float64(len(storms)))
	for _, storm := range storms {
		p.metrics.ObservationsParsed.Add(float64(len(storm.Observations)))
	}
	for _, warning := range warnings {
		p.logger.Warn("observation excluded",
			"line", warning.Line,
			"storm_id", warning.StormID,
			"reason", warning.Reason,
		)
	}
	p.metrics.IntegrityWarnings.Add(float64(len(warnings)))

	rep := report.Aggregate(storms, p.criteria)
	p.metrics.MatchedStorms.Set(float64(rep.Summary.TotalMatches))

	if !p.publish(ctx, rep) {
		p.backoffOrStop(ctx, backoff, maxBackoff)
		return false, nil
	}

	p.metrics.ReportsGenerated.Inc()
	p.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("report published",
		"matched_storms", rep.Summary.TotalMatches,
		"warnings", len(warnings),
		"duration", time.Since(start),
	)
	return true, nil
}

// publish sends the report to every sink. All sinks are attempted even when
// an earlier one fails, so one broken destination does not starve the rest.
func (p *Pipeline) publish(ctx context.Context, rep report.Report) bool {
	ok := true
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, rep); err != nil {
			p.logger.Error("report publish failed", "sink", sink.Name(), "error", err)
			p.metrics.SinkErrors.WithLabelValues(sink.Name()).Inc()
			ok = false
		}
	}
	return ok
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) {
	if ctx.Err() != nil {
		return
	}
	if !sleepWithContext(ctx, *backoff) {
		return
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
