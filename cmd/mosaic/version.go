package main

import (
	"fmt"

	"github.com/aretw0/mosaic"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mosaic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mosaic version %s\n", mosaic.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
