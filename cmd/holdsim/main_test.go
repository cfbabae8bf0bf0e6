package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePress(t *testing.T) {
	press, err := parsePress("250")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, press)

	press, err = parsePress("1.5s")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, press)

	_, err = parsePress("-5")
	assert.Error(t, err)
	_, err = parsePress("soon")
	assert.Error(t, err)
}

func TestRunReportsEachOutcome(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-log-level", "error", "50", "1s", "400ms"}, &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "-> tapped")
	assert.Contains(t, lines[0], "elapsed 50ms")
	assert.Contains(t, lines[1], "-> held")
	assert.Contains(t, lines[1], "elapsed 750ms")
	assert.Contains(t, lines[2], "-> cancelled")
	assert.Equal(t, "held=1 tapped=1 cancelled=1 dismissed=0", lines[3])
}

func TestRunReportsOutcomeOfPressLongerThanEventBuffer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-duration", "5s", "-log-level", "error", "4s", "6s"}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "-> cancelled")
	assert.Contains(t, lines[0], "elapsed 4s")
	assert.Contains(t, lines[1], "-> held")
	assert.Contains(t, lines[1], "elapsed 5s")
	assert.Equal(t, "held=1 tapped=0 cancelled=1 dismissed=0", lines[2])
}

func TestRunWithoutTapHandlerDismissesShortPress(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-no-tap", "-log-level", "error", "50"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "-> none")
	assert.Contains(t, stdout.String(), "dismissed=1")
}

func TestRunUsesConfigFileAndFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration_ms: 300\ntap_duration_ms: 100\ninterval_ms: 10\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path, "-log-level", "error", "350ms"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "elapsed 300ms")

	stdout.Reset()
	require.NoError(t, run([]string{"-config", path, "-duration", "500ms", "-log-level", "error", "350ms"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "-> cancelled")
}

func TestRunRejectsInvalidInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{}, &stdout, &stderr))
	assert.Error(t, run([]string{"-tap", "2s", "100"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-log-level", "loud", "100"}, &stdout, &stderr))
}
