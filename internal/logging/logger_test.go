package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_LevelsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf})
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_JSONWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Output: &buf}).With("invoice", "INV-1")

	log.Info(context.Background(), "saved", "tier", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "saved", rec["msg"])
	assert.Equal(t, "INV-1", rec["invoice"])
	assert.Equal(t, float64(3), rec["tier"])
}

func TestZerologLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Backend: "zerolog", Format: "json", Level: "info", Output: &buf})

	log.With("invoice", "INV-2").Warn(context.Background(), "picker failed", "err", errors.New("boom"), "tier", 2)
	log.Debug(context.Background(), "not shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "picker failed", rec["message"])
	assert.Equal(t, "INV-2", rec["invoice"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, float64(2), rec["tier"])
}

func TestZerologLogger_LeavesGlobalsAlone(t *testing.T) {
	before := zerolog.TimeFieldFormat

	New(Options{Backend: "zerolog", Format: "json", Output: &bytes.Buffer{}})
	New(Options{Backend: "zerolog", Output: &bytes.Buffer{}})

	assert.Equal(t, before, zerolog.TimeFieldFormat)
}

func TestZerologLogger_OddArgs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Backend: "zerolog", Format: "json", Output: &buf})

	log.Info(context.Background(), "odd", "lonely")

	assert.Contains(t, buf.String(), `"!BADKEY":"lonely"`)
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "nothing", "k", "v")
}
