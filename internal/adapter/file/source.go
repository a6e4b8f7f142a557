// Package file provides the filesystem dataset source and report writer.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Source reads the HURDAT2 dataset from a local file on every extract, so a
// refreshed file on disk is picked up by the next cycle.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a dataset source for the given path.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) Extract(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	s.logger.Debug("dataset read", "path", s.path, "bytes", len(data))
	return data, nil
}
