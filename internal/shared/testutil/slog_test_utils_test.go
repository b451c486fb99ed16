package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.With("component", "loader").Warn("Unparsable dates set to null", slog.Int("cells", 2))
	logger.Info("Input loaded")

	records := handler.Records()
	require.Len(t, records, 2)

	r := AssertLogContains(t, handler, slog.LevelWarn, "Unparsable dates")
	assert.Equal(t, "loader", r.Attrs["component"])
	assert.Equal(t, int64(2), r.Attrs["cells"])

	_, ok := handler.Find(slog.LevelError, "Input loaded")
	assert.False(t, ok)
	assert.Equal(t, 1, handler.Count(slog.LevelInfo))

	AssertNoErrors(t, handler)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, filepath.Join("nested", "rows.csv"), ComplaintsCSV)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ComplaintsCSV, string(data))
}
