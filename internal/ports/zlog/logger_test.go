package zlog

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zerolog.New(&buf))

	logger.Warn("rejected %d cards", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "rejected 3 cards", line["message"])
}

func TestLoggerWithFieldsAccumulates(t *testing.T) {
	var buf bytes.Buffer
	base := New(zerolog.New(&buf))

	child := base.WithField("request_id", "r1").WithFields(map[string]interface{}{"rpc": "compute_score"})
	child.Info("done")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "r1", line["request_id"])
	assert.Equal(t, "compute_score", line["rpc"])

	assert.Equal(t, map[string]interface{}{"request_id": "r1", "rpc": "compute_score"}, child.Fields())
	assert.Empty(t, base.Fields())
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
}
