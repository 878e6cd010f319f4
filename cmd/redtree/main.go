//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Command redtree builds, verifies, and compares partial-product
// reduction tree schedules for the Wallace and Dadda strategies.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "redtree",
	Short: "Partial-product reduction tree scheduler.",
	Long: `redtree computes Wallace and Dadda compressor schedules for
unsigned multiplication, verifies them against reference
multiplication, and compares the strategies.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"increase logging verbosity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
