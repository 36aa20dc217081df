package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/internal/presentation/graph"
	"github.com/aretw0/mosaic/internal/presentation/tui"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// journal is a YAML event script. Each entry carries an offset from the
// start of the replay so swipe coincidence behaves exactly as it would live.
type journal struct {
	Window string         `yaml:"window"` // optional, e.g. "100ms"
	Events []journalEntry `yaml:"events"`
}

type journalEntry struct {
	At   string         `yaml:"at"` // offset, e.g. "50ms"; empty = 0
	Type string         `yaml:"type"`
	Data map[string]any `yaml:"data"`
}

// replayClock feeds the engine scripted timestamps instead of wall time.
type replayClock struct {
	now time.Time
}

func (c *replayClock) Now() time.Time { return c.now }

var replayCmd = &cobra.Command{
	Use:   "replay <journal.yaml>",
	Short: "Replay an event journal through the engine",
	Long: `Applies a YAML event journal against a fresh session and renders the
resulting canvas. Entries declare an 'at' offset so paired swipes land inside
or outside the coincidence window deterministically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}

		var j journal
		if err := yaml.Unmarshal(data, &j); err != nil {
			return fmt.Errorf("failed to parse journal: %w", err)
		}

		window := mosaic.DefaultCoincidenceWindow
		if j.Window != "" {
			window, err = time.ParseDuration(j.Window)
			if err != nil {
				return fmt.Errorf("invalid window %q: %w", j.Window, err)
			}
		}

		clk := &replayClock{now: time.Unix(0, 0).UTC()}
		engine, err := mosaic.New(mosaic.NopPolicy(),
			mosaic.WithLogger(newLogger(cmd)),
			mosaic.WithClock(clk),
			mosaic.WithCoincidenceWindow(window),
		)
		if err != nil {
			return err
		}

		base := clk.now
		var state *domain.State
		for i, entry := range j.Events {
			if entry.At != "" {
				offset, err := time.ParseDuration(entry.At)
				if err != nil {
					return fmt.Errorf("event %d: invalid offset %q: %w", i, entry.At, err)
				}
				clk.now = base.Add(offset)
			}

			event, err := schema.DecodeEvent(map[string]any{
				"type": entry.Type,
				"data": entry.Data,
			})
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}

			state, err = engine.Apply(cmd.Context(), state, event)
			if err != nil {
				return fmt.Errorf("event %d (%s): %w", i, entry.Type, err)
			}
		}

		if state == nil {
			fmt.Println("Journal contained no events.")
			return nil
		}

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			fmt.Print(graph.GenerateMermaid(state))
			return nil
		}

		out, err := tui.RenderSnapshot(state)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("mermaid", false, "Output a Mermaid adjacency diagram instead of the table view")
}
