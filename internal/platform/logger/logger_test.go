package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(l Logger) {
	l.(*StdLogger).now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
}

func TestStdLogger_TextIsSortedAndQuoted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, App: "cattle-records", Output: &buf})
	fixedClock(l)

	l.Info("birth recorded", map[string]any{"event_id": "e-1", "note": "two calves"})

	line := strings.TrimSpace(buf.String())
	assert.Equal(t,
		`app=cattle-records event_id=e-1 level=info msg="birth recorded" note="two calves" ts=2024-03-01T12:00:00Z`,
		line)
}

func TestStdLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("skipped", nil)
	l.Debug("skipped", nil)
	assert.Empty(t, buf.String())

	l.Error("kept", nil)
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestStdLogger_JSONWithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Output: &buf}).
		With(map[string]any{"request_id": "r-1"})

	l.Warn("birth rejected", map[string]any{"error": errors.New("duplicate key")})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "r-1", got["request_id"])
	assert.Equal(t, "duplicate key", got["error"])
	assert.Equal(t, "warn", got["level"])
}

func TestStdLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Output: &buf})
	_ = parent.With(map[string]any{"child": true})

	parent.Info("x", nil)

	assert.NotContains(t, buf.String(), "child")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With(map[string]any{"a": 1}).Error("ignored", nil)
	})
}

func TestParse(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Info, ParseLevel("nonsense"))
	assert.Equal(t, FormatJSON, ParseFormat("Json"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
