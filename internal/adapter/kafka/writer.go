// Package kafka publishes matched storms from each report to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/hurdat2-report-service/internal/config"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

// Writer produces one message per matched storm to the report topic.
// It implements pipeline.ReportSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Publish serializes every matched storm and writes them in a single
// WriteMessages call for efficiency. A report with no matches publishes nothing.
func (w *Writer) Publish(ctx context.Context, rep report.Report) error {
	if len(rep.Storms) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(rep.Storms))
	for i := range rep.Storms {
		msg, err := serializeToMessage(rep, rep.Storms[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("report published to kafka", "storms", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a matched storm into a Kafka message keyed by
// storm id, carrying report metadata in headers.
func serializeToMessage(rep report.Report, storm report.StormSummary) (kafkago.Message, error) {
	data, err := json.Marshal(storm)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize storm summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(storm.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(rep.Criteria.Region)},
			{Key: "generated_at", Value: []byte(rep.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
