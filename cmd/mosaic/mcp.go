package main

import (
	"github.com/aretw0/mosaic"
	mcpAdapter "github.com/aretw0/mosaic/pkg/adapters/mcp"
	"github.com/aretw0/mosaic/pkg/session"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve Mosaic sessions over MCP (stdio)",
	Long: `Exposes tiling sessions as MCP tools on stdin/stdout so agent tooling
can connect devices, register swipes and inspect snapshots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)

		window, err := cfg.window()
		if err != nil {
			return err
		}

		store, locker, closeStore, err := buildStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		engine, err := mosaic.New(mosaic.NopPolicy(),
			mosaic.WithLogger(logger),
			mosaic.WithCoincidenceWindow(window),
		)
		if err != nil {
			return err
		}

		managerOpts := []session.Option{session.WithLogger(logger)}
		if locker != nil {
			managerOpts = append(managerOpts, session.WithLocker(locker))
		}
		manager := session.NewManager(engine, store, managerOpts...)

		return mcpAdapter.NewServer(manager).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("config", "", "Path to YAML config file")
	mcpCmd.Flags().String("window", "100ms", "Swipe coincidence window")
	mcpCmd.Flags().String("redis", "", "Redis address (default: in-memory store)")
	mcpCmd.Flags().String("redis-prefix", "mosaic:session:", "Redis key prefix")
	mcpCmd.Flags().String("redis-ttl", "", "Session TTL in Redis")
	mcpCmd.Flags().String("encryption-key-file", "", "File holding a hex-encoded AES-256 key")
}
