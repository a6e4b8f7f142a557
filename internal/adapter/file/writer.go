package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

// Writer publishes reports as JSON files under a reports directory. Each
// report gets a timestamped name so successive runs never overwrite history.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a report writer for the given directory, creating it if needed.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, logger: logger}, nil
}

func (w *Writer) Name() string { return "file" }

func (w *Writer) Publish(ctx context.Context, rep report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	name := fmt.Sprintf("HURDAT2_REPORT_%s.json", rep.GeneratedAt.UTC().Format("20060102T150405Z"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	w.logger.Info("report written", "path", path, "bytes", len(data))
	return nil
}
