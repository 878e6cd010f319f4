//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkivinen/redtree/render"
	"github.com/jkivinen/redtree/verify"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare Wallace and Dadda schedules for one width.",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		config := verify.NewConfig()
		config.Widths = []int{width}
		config.Pairs, _ = cmd.Flags().GetInt("pairs")
		config.Seed, _ = cmd.Flags().GetInt64("seed")

		result, err := verify.Run(config)
		if err != nil {
			return err
		}
		render.PrintCompare(os.Stdout, result)

		if file, _ := cmd.Flags().GetString("json"); len(file) > 0 {
			f, err := os.Create(file)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := render.WriteJSON(f, result); err != nil {
				return err
			}
		}
		if !result.Pass() {
			return fmt.Errorf("comparison failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().IntP("width", "w", 32, "operand width in bits")
	compareCmd.Flags().Int("pairs", 1000,
		"random operand pairs for non-exhaustive widths")
	compareCmd.Flags().Int64("seed", 0, "random operand seed")
}
