package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithServiceStampsEveryEntry(t *testing.T) {
	logger := NewLoggerWithService("influencer-pipeline")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("first")
	logger.WithField("content_id", "c1").Warn("second")

	dec := json.NewDecoder(&buf)
	for _, wantMsg := range []string{"first", "second"} {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		require.Equal(t, "influencer-pipeline", entry["service"])
		require.Equal(t, wantMsg, entry["msg"])
	}
}

func TestNewLoggerEmitsJSON(t *testing.T) {
	logger := NewLogger()
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithField("k", "v").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "v", entry["k"])
	require.Equal(t, "info", entry["level"])
}
