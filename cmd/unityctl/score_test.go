package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// perfectFortnight is 14 consecutive completed days ending on the pinned today.
const perfectFortnight = `
dates: [2024-03-02, 2024-03-03, 2024-03-04, 2024-03-05, 2024-03-06, 2024-03-07, 2024-03-08,
        2024-03-09, 2024-03-10, 2024-03-11, 2024-03-12, 2024-03-13, 2024-03-14, "2024-03-15T09:00:00Z"]
start_date: 2024-03-02
today: 2024-03-15
intensity: high
`

func TestScore_JSON(t *testing.T) {
	path := writeFile(t, "history.yaml", perfectFortnight)

	out, err := runCLI(t, "", "score", path, "-o", "json")
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, 14, res.Metrics.SeriesDays)
	assert.Equal(t, 14, res.Metrics.LongestRun)
	assert.Equal(t, 100, res.Metrics.GraceStreak.Percentage)
	assert.Equal(t, 14, res.Metrics.Recovery.ConsecutiveRun)
	assert.False(t, res.Metrics.Recovery.IsComeback)
	assert.Equal(t, 14, res.Metrics.MonthProgress.CompletedThisMonth)
	assert.Equal(t, 1, res.Metrics.FlexDays.Earned)
	assert.Equal(t, scoring.IntensityHigh, res.Metrics.Intensity)

	assert.Equal(t, "Perfect 14 days! 🔥", res.Display.PrimaryBadge)
	assert.Equal(t, "Perfect 14 days. You're unstoppable! 🔥", res.Display.Encouragement)
}

func TestScore_ConfigPrecedence(t *testing.T) {
	cfgPath := writeFile(t, "scoring.yaml", "window: 7\nmonthly_target: 10\n")

	t.Run("Config file applies", func(t *testing.T) {
		path := writeFile(t, "history.yaml", perfectFortnight)

		out, err := runCLI(t, "", "score", path, "-o", "json", "--config", cfgPath)
		require.NoError(t, err)

		var res scoreResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 7, res.Metrics.GraceStreak.WindowSize)
		assert.Equal(t, 10, res.Metrics.MonthProgress.Target)
	})

	t.Run("Input scoring block wins over config file", func(t *testing.T) {
		path := writeFile(t, "history.yaml", perfectFortnight+"scoring:\n  window: 10\n")

		out, err := runCLI(t, "", "score", path, "-o", "json", "--config", cfgPath)
		require.NoError(t, err)

		var res scoreResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 10, res.Metrics.GraceStreak.WindowSize)
		assert.Equal(t, 10, res.Metrics.MonthProgress.Target)
	})
}

func TestScore_ComebackFromStdin(t *testing.T) {
	input := `{"dates": ["2024-03-01", "2024-03-02", "2024-03-14", "2024-03-15"], "start_date": "2024-03-01"}`

	out, err := runCLI(t, input, "score", "-", "--today", "2024-03-15", "--seed", "7", "-o", "json")
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Metrics.Recovery.IsComeback)
	assert.Equal(t, 2, res.Metrics.Recovery.ConsecutiveRun)
	assert.Equal(t, "comeback", res.Display.BadgeSource)
	assert.NotEmpty(t, res.Display.Encouragement)
}

func TestScore_YAMLUsesAPIFieldNames(t *testing.T) {
	path := writeFile(t, "history.yaml", perfectFortnight)

	out, err := runCLI(t, "", "score", path, "-o", "yaml")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc["metrics"], "grace_streak")
	assert.Contains(t, doc["display"], "primary_badge")
}

func TestScore_Text(t *testing.T) {
	path := writeFile(t, "history.yaml", perfectFortnight)

	out, err := runCLI(t, "", "score", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Perfect 14 days! 🔥")
	assert.Contains(t, out, "Grace streak   14/14 (100%)")
	assert.Contains(t, out, "Intensity: High")
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{"bad date", `dates: ["March 3"]`, nil, "invalid date"},
		{"bad timezone", `dates: []`, []string{"--timezone", "Mars/Olympus"}, "unknown timezone"},
		{"bad today", `dates: []`, []string{"--today", "tomorrow"}, "invalid today"},
		{"bad output", `dates: []`, []string{"-o", "xml"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "in.yaml", tt.input)
			_, err := runCLI(t, "", append([]string{"score", path}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, "", "score", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
