package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

const dateLayout = "2006-01-02"

// scoreInput is the file format read by `unityctl score`. JSON is accepted
// too since it is a subset of YAML.
type scoreInput struct {
	Dates     []string              `yaml:"dates"`
	StartDate string                `yaml:"start_date"`
	Today     string                `yaml:"today"`
	Timezone  string                `yaml:"timezone"`
	Intensity string                `yaml:"intensity"`
	FlexUsed  int                   `yaml:"flex_used"`
	Scoring   scoring.ScoringConfig `yaml:"scoring"`
}

type scoreResult struct {
	Metrics scoring.AggregateMetrics `json:"metrics"`
	Display scoring.Display          `json:"display"`
}

type scoreOptions struct {
	today    string
	timezone string
	seed     int64
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score FILE",
		Short: "Score a completion history",
		Long: `Score reads a YAML or JSON file of completion dates and prints the
aggregate consistency metrics and the display the app would render.

Example file:
  dates: ["2024-03-01", "2024-03-02", "2024-03-04T07:30:00Z"]
  start_date: 2024-02-15
  today: 2024-03-15
  timezone: Europe/Rome
  intensity: medium
  scoring:
    window: 14
    threshold: 0.85

Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.today, "today", "", "Score as of this day (YYYY-MM-DD), overrides the file")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA zone for calendar days, overrides the file")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for the comeback message pick (0 = random)")
	return cmd
}

func runScore(cmd *cobra.Command, root *rootOptions, opts *scoreOptions, path string) error {
	in, err := readScoreInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	cfg, err := loadScoringConfig(root.cfgFile)
	if err != nil {
		return err
	}
	cfg = overlay(cfg, in.Scoring)

	tz := firstNonEmpty(opts.timezone, in.Timezone, "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", tz, err)
	}

	engineOpts := []scoring.Option{
		scoring.WithConfig(cfg),
		scoring.WithLocation(loc),
	}
	if day := firstNonEmpty(opts.today, in.Today); day != "" {
		today, err := parseDay(day, loc)
		if err != nil {
			return fmt.Errorf("invalid today: %w", err)
		}
		// End of the pinned day so every completion on it counts.
		pinned := today.Add(24*time.Hour - time.Second)
		engineOpts = append(engineOpts, scoring.WithClock(func() time.Time { return pinned }))
	}
	if opts.seed != 0 {
		engineOpts = append(engineOpts, scoring.WithRand(rand.New(rand.NewSource(opts.seed))))
	}

	dates := make([]time.Time, 0, len(in.Dates))
	for _, raw := range in.Dates {
		d, err := parseDay(raw, loc)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}

	var start time.Time
	if in.StartDate != "" {
		if start, err = parseDay(in.StartDate, loc); err != nil {
			return fmt.Errorf("invalid start_date: %w", err)
		}
	}

	engine := scoring.NewEngine(engineOpts...)
	metrics, display := engine.Score(scoring.AggregateInput{
		CompletionDates: dates,
		StartDate:       start,
		Intensity:       scoring.ParseIntensity(in.Intensity),
		FlexUsed:        in.FlexUsed,
	})

	return writeResult(cmd.OutOrStdout(), root.output, scoreResult{Metrics: metrics, Display: display})
}

func readScoreInput(stdin io.Reader, path string) (*scoreInput, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var in scoreInput
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return &in, nil
}

// parseDay accepts a bare date, read in loc, or a full RFC3339 timestamp.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeResult(w io.Writer, format string, res scoreResult) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case outputYAML:
		// Round-trip through JSON so the YAML keys match the API's field names.
		raw, err := json.Marshal(res)
		if err != nil {
			return err
		}
		var generic map[string]any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(generic)
	default:
		printText(w, res)
		return nil
	}
}

func printText(w io.Writer, res scoreResult) {
	m, d := res.Metrics, res.Display

	if d.PrimaryBadge != "" {
		fmt.Fprintf(w, "%s\n", d.PrimaryBadge)
	}
	fmt.Fprintf(w, "%s\n\n", d.Encouragement)

	fmt.Fprintf(w, "Series         %s, %d days (longest run %d)\n", m.SeriesStart.Format(dateLayout), m.SeriesDays, m.LongestRun)
	fmt.Fprintf(w, "Grace streak   %d/%d (%d%%)\n", m.GraceStreak.CompletedCount, m.GraceStreak.WindowSize, m.GraceStreak.Percentage)
	fmt.Fprintf(w, "Recovery       run %d, comeback %t\n", m.Recovery.ConsecutiveRun, m.Recovery.IsComeback)
	fmt.Fprintf(w, "Momentum       %d (%s, %+d)\n", m.Momentum.Score, m.Momentum.Trend, m.Momentum.Delta)
	fmt.Fprintf(w, "Month          %d/%d, on pace at %d (%d%%)\n",
		m.MonthProgress.CompletedThisMonth, m.MonthProgress.Target, m.MonthProgress.OnPaceTarget, m.MonthProgress.Percentage)
	fmt.Fprintf(w, "Flex days      %d available (%d earned, %d used)\n", m.FlexDays.Available, m.FlexDays.Earned, m.FlexDays.Used)

	if len(d.Chips) > 0 {
		texts := make([]string, len(d.Chips))
		for i, c := range d.Chips {
			texts[i] = c.Text
		}
		fmt.Fprintf(w, "\n%s\n", strings.Join(texts, " · "))
	}
}
