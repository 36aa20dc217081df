package main

import (
	"fmt"
	"os"

	"github.com/aretw0/mosaic/internal/presentation/graph"
	"github.com/aretw0/mosaic/internal/presentation/tui"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage persisted sessions",
	Long:  `List, inspect, and remove session snapshots held by the configured store.`,
}

var sessionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := sessionStore(cmd)
		defer closeStore()

		sessions, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return
		}

		fmt.Println("Stored Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Render the current snapshot of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store, closeStore := sessionStore(cmd)
		defer closeStore()

		state, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			fmt.Print(graph.GenerateMermaid(state))
			return
		}

		out, err := tui.RenderSnapshot(state)
		if err != nil {
			fmt.Printf("Error rendering session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := sessionStore(cmd)
		defer closeStore()

		hasError := false
		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

// sessionStore builds the snapshot store from the same config and flags the
// server commands use, so `sessions` inspects exactly what `serve` wrote.
func sessionStore(cmd *cobra.Command) (ports.SnapshotStore, func()) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyServeFlags(cmd, cfg)

	store, _, closeStore, err := buildStore(cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store, closeStore
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsLsCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsRmCmd)

	sessionsCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	sessionsCmd.PersistentFlags().String("redis", "", "Redis address")
	sessionsCmd.PersistentFlags().String("redis-prefix", "mosaic:session:", "Redis key prefix")
	sessionsCmd.PersistentFlags().String("redis-ttl", "", "Session TTL in Redis")
	sessionsCmd.PersistentFlags().String("encryption-key-file", "", "File holding a hex-encoded AES-256 key")

	sessionsShowCmd.Flags().Bool("mermaid", false, "Output a Mermaid adjacency diagram instead of the table view")
}
