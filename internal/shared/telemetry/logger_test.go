package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLineShape(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("notify.instructions.missing", map[string]any{"medication": "ozempic"})

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload))
	assert.Equal(t, "warn", payload["level"])
	assert.Equal(t, "notify.instructions.missing", payload["msg"])
	assert.Equal(t, "ozempic", payload["medication"])
	assert.NotEmpty(t, payload["ts"])
}
