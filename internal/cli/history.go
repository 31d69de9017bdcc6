package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sightglass/provenance/internal/record"
	"github.com/sightglass/provenance/internal/store"
	"github.com/spf13/cobra"
)

var (
	historySince string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently closed windows",
	Long: `History displays the closed-window history, newest first. Each entry
holds the serialized provenance of the window's artifact, which the
application replays to reopen the window.`,
	Example: `  sgprov history
  sgprov history --since 7d
  sgprov history --limit 20 --json
  sgprov history clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.ListOpts{Limit: historyLimit}
		if historySince != "" {
			d, err := parseDuration(historySince)
			if err != nil {
				return fmt.Errorf("invalid --since value %q: %w", historySince, err)
			}
			opts.Since = time.Now().Add(-d)
		}

		windows, err := s.ListClosed(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(windows)
		}

		if len(windows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No closed windows recorded.")
			return nil
		}

		t := NewTable(cmd.OutOrStdout(), "TITLE", "ORIGIN", "CLOSED")
		for _, win := range windows {
			t.Row(
				truncate(win.Title, 30),
				truncate(origin(win), 40),
				humanize.Time(win.ClosedAt))
		}
		return t.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all closed-window history",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Clear(context.Background())
		if err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries.\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historySince, "since", "", "only windows closed within this duration (e.g. 24h, 7d)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// origin gives a one-line description of where the entry's artifact came
// from, falling back to the raw discriminant for records the current binary
// does not understand.
func origin(w store.ClosedWindow) string {
	node, err := record.Unmarshal(w.Record)
	if err != nil {
		return "(unreadable record)"
	}
	return summarize(node).describe()
}

func (s recordSummary) describe() string {
	switch {
	case s.CommandID != "":
		return "command " + s.CommandID
	case len(s.Inputs) > 0:
		return s.Inputs[0]
	default:
		return s.Type
	}
}

// parseDuration parses a duration, additionally accepting a "d" suffix for
// days, which time.ParseDuration doesn't support.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		numStr := s[:len(s)-1]
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", numStr)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// truncate shortens a string to max characters, appending "..." if truncated.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
