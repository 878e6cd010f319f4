//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jkivinen/redtree/render"
	"github.com/jkivinen/redtree/sched"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute a reduction schedule for one width and strategy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wa, _ := cmd.Flags().GetInt("width")
		wb, _ := cmd.Flags().GetInt("width-b")
		if wb == 0 {
			wb = wa
		}
		name, _ := cmd.Flags().GetString("strategy")
		strategy, err := sched.ParseStrategy(name)
		if err != nil {
			return err
		}
		schedule, err := sched.Build(wa, wb, strategy)
		if err != nil {
			return err
		}
		log.Debugf("built %s", schedule)

		fmt.Printf("%s\n", schedule)
		render.PrintSchedule(os.Stdout, schedule)

		if profile, _ := cmd.Flags().GetBool("profile"); profile {
			render.PrintProfile(os.Stdout, schedule)
		}
		if file, _ := cmd.Flags().GetString("dot"); len(file) > 0 {
			f, err := os.Create(file)
			if err != nil {
				return err
			}
			defer f.Close()
			render.Dot(f, schedule)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().IntP("width", "w", 8, "operand width in bits")
	scheduleCmd.Flags().Int("width-b", 0,
		"second operand width (defaults to --width)")
	scheduleCmd.Flags().StringP("strategy", "s", "dadda",
		"reduction strategy: wallace or dadda")
	scheduleCmd.Flags().Bool("profile", false,
		"print per-stage column height profile")
	scheduleCmd.Flags().String("dot", "",
		"write graphviz dot output to file")
}
