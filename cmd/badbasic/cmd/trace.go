package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/interpreter"
)

// TraceSummary aggregates the events of a trace file.
type TraceSummary struct {
	RunID           string         `json:"runId"`
	TotalEvents     int            `json:"totalEvents"`
	Lines           int            `json:"lines"`
	Recovered       int            `json:"recovered"`
	RecoveredByCode map[string]int `json:"recoveredByCode"`
	LastValue       *int64         `json:"lastValue,omitempty"`
	StartTime       string         `json:"startTime,omitempty"`
	EndTime         string         `json:"endTime,omitempty"`
	DurationMs      float64        `json:"durationMs"`
	InvalidLines    int            `json:"invalidLines"`
}

func newTraceCmd(a *app) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "trace <file.jsonl>",
		Short: "Summarise a trace written by run --trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return a.fail(cmd, exitUsage,
					diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", args[0]), nil, ""))
			}
			defer f.Close()

			summary, err := summarizeTrace(f)
			if err != nil {
				return a.fail(cmd, exitUsage,
					diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("reading %s: %v", args[0], err), nil, ""))
			}

			out := cmd.OutOrStdout()
			if text {
				printTraceSummary(out, summary)
				return nil
			}
			b, err := json.Marshal(summary)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print a human-readable summary instead of JSON")
	return cmd
}

func summarizeTrace(r io.Reader) (*TraceSummary, error) {
	summary := &TraceSummary{RecoveredByCode: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev interpreter.TraceEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			summary.InvalidLines++
			continue
		}

		summary.TotalEvents++
		if summary.RunID == "" {
			summary.RunID = ev.RunID
		}

		switch ev.Event {
		case interpreter.TraceRunStart:
			if summary.StartTime == "" {
				summary.StartTime = ev.Timestamp
			}
		case interpreter.TraceRunEnd:
			summary.EndTime = ev.Timestamp
		case interpreter.TraceLineEnd:
			summary.Lines++
			summary.LastValue = ev.Value
		case interpreter.TraceRecovered:
			// A recovered line yields no value; its result is 0.
			var v int64
			if ev.Value != nil {
				v = *ev.Value
			}
			summary.LastValue = &v
			summary.Lines++
			summary.Recovered++
			summary.RecoveredByCode[ev.Code]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if summary.StartTime != "" && summary.EndTime != "" {
		start, err1 := time.Parse(time.RFC3339Nano, summary.StartTime)
		end, err2 := time.Parse(time.RFC3339Nano, summary.EndTime)
		if err1 == nil && err2 == nil {
			summary.DurationMs = float64(end.Sub(start).Microseconds()) / 1000
		}
	}
	return summary, nil
}

func printTraceSummary(w io.Writer, s *TraceSummary) {
	fmt.Fprintf(w, "Run: %s\n", s.RunID)
	fmt.Fprintf(w, "Events: %d\n", s.TotalEvents)
	fmt.Fprintf(w, "Lines: %d (%d recovered)\n", s.Lines, s.Recovered)

	codes := make([]string, 0, len(s.RecoveredByCode))
	for code := range s.RecoveredByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %s: %d\n", code, s.RecoveredByCode[code])
	}
	if s.LastValue != nil {
		fmt.Fprintf(w, "Result: %d\n", *s.LastValue)
	}
	if s.DurationMs > 0 {
		fmt.Fprintf(w, "Duration: %.3fms\n", s.DurationMs)
	}
	if s.InvalidLines > 0 {
		fmt.Fprintf(w, "Skipped: %d invalid lines\n", s.InvalidLines)
	}
}
