package nhc

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestExtract(t *testing.T) {
	const dataset = "AL011980, UNNAMED, 1,\n19800801, 0000,  , TS, 15.0N, 50.0W, 45, 1000,\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(dataset))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	data, err := client.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset, string(data))
}

func TestExtractNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := client.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestExtractCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("unreachable"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := client.Extract(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
