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

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify schedules across widths and operand pairs.",
	Long: `Verify builds Wallace and Dadda schedules for the selected
widths and checks value conservation, height targets, stage bounds,
and the final two-row sum against reference multiplication. Small
widths are exhaustive, large widths use seeded random operand pairs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := verify.NewConfig()
		if widths, _ := cmd.Flags().GetIntSlice("widths"); len(widths) > 0 {
			config.Widths = widths
		}
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
			return fmt.Errorf("verification failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntSlice("widths", nil,
		"operand widths to verify (default 1,2,3,4,8,16,32)")
	verifyCmd.Flags().Int("pairs", 1000,
		"random operand pairs per non-exhaustive width")
	verifyCmd.Flags().Int64("seed", 0, "random operand seed")
	verifyCmd.Flags().String("json", "", "write results as JSON to file")
}
