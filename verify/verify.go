//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Package verify drives the reduction scheduler across operand
// widths and operand pairs, checking the scheduler invariants and
// tallying compressor counts for strategy comparison. Small widths
// are verified exhaustively, large widths with seeded random operand
// pairs.
package verify

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jkivinen/redtree/sched"
)

// ExhaustiveLimit is the largest operand width verified over all
// operand pairs.
const ExhaustiveLimit = 6

// Config specifies a verification run.
type Config struct {
	// Widths lists the operand widths to verify.
	Widths []int
	// Pairs is the number of random operand pairs per width above
	// ExhaustiveLimit.
	Pairs int
	// Seed seeds the random operand generator so that failures are
	// replayable.
	Seed int64
}

// DefaultWidths lists the widths verified by default.
var DefaultWidths = []int{1, 2, 3, 4, 8, 16, 32}

// NewConfig returns the default verification configuration.
func NewConfig() Config {
	return Config{
		Widths: DefaultWidths,
		Pairs:  1000,
	}
}

// Mismatch records one operand pair whose two-row sum disagreed with
// the reference product.
type Mismatch struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Got  string `json:"got"`
	Want string `json:"want"`
}

// Report records the verification of one (width, strategy) run.
type Report struct {
	Width      int        `json:"width"`
	Strategy   string     `json:"strategy"`
	Stages     int        `json:"stage_count"`
	Full       int        `json:"full_adders"`
	Half       int        `json:"half_adders"`
	Pairs      int        `json:"pairs"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
	Err        string     `json:"error,omitempty"`
	Pass       bool       `json:"pass"`
}

// Compressors returns the total compressor count of the run.
func (r *Report) Compressors() int {
	return r.Full + r.Half
}

// Result is the outcome of a verification run over all widths and
// strategies.
type Result struct {
	Reports []Report `json:"reports"`
}

// Pass tests if every report passed.
func (r *Result) Pass() bool {
	for _, report := range r.Reports {
		if !report.Pass {
			return false
		}
	}
	return true
}

// Report returns the report for the width and strategy.
func (r *Result) Report(width int, strategy sched.Strategy) *Report {
	for idx, report := range r.Reports {
		if report.Width == width && report.Strategy == strategy.String() {
			return &r.Reports[idx]
		}
	}
	return nil
}

// Run verifies both strategies over the configured widths. Each
// (width, strategy) run is self-contained and they execute
// concurrently. A failing operand pair fails its run but not the
// others.
func Run(config Config) (*Result, error) {
	result := &Result{
		Reports: make([]Report, 0, len(config.Widths)*len(sched.Strategies)),
	}
	var m sync.Mutex
	var g errgroup.Group

	for _, width := range config.Widths {
		for _, strategy := range sched.Strategies {
			width := width
			strategy := strategy
			g.Go(func() error {
				report := runOne(width, strategy, config)
				m.Lock()
				result.Reports = append(result.Reports, report)
				m.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(result.Reports, func(i, j int) bool {
		if result.Reports[i].Width != result.Reports[j].Width {
			return result.Reports[i].Width < result.Reports[j].Width
		}
		return result.Reports[i].Strategy < result.Reports[j].Strategy
	})
	crossCheck(result, config.Widths)

	for _, report := range result.Reports {
		if report.Pass {
			log.Debugf("%s %d: %d stages, %d FA, %d HA, %d pairs ok",
				report.Strategy, report.Width, report.Stages,
				report.Full, report.Half, report.Pairs)
		} else {
			log.Errorf("%s %d: FAIL: %s",
				report.Strategy, report.Width, report.Err)
		}
	}
	return result, nil
}

// runOne verifies one (width, strategy) run: builds the schedule,
// checks the stage-count bound, and evaluates every operand pair.
func runOne(width int, strategy sched.Strategy, config Config) Report {
	report := Report{
		Width:    width,
		Strategy: strategy.String(),
	}
	schedule, err := sched.Build(width, width, strategy)
	if err != nil {
		report.Err = err.Error()
		return report
	}
	report.Stages = schedule.NumStages()
	report.Full = schedule.Full
	report.Half = schedule.Half

	if max := stageLimit(width); report.Stages > max {
		report.Err = fmt.Sprintf("stage count %d exceeds bound %d",
			report.Stages, max)
		return report
	}
	if schedule.Last().MaxHeight() > 2 {
		report.Err = fmt.Sprintf("terminal height %d",
			schedule.Last().MaxHeight())
		return report
	}

	var adder sched.RefAdder
	check := func(a, b *big.Int) error {
		vals, err := schedule.Eval(a, b)
		if err != nil {
			return err
		}
		rows, err := schedule.Finalize(vals)
		if err != nil {
			return err
		}
		got := adder.Add(rows)
		want := new(big.Int).Mul(a, b)
		if got.Cmp(want) != 0 {
			report.Mismatches = append(report.Mismatches, Mismatch{
				A:    a.String(),
				B:    b.String(),
				Got:  got.String(),
				Want: want.String(),
			})
		}
		report.Pairs++
		return nil
	}

	if width <= ExhaustiveLimit {
		limit := 1 << width
		for a := 0; a < limit; a++ {
			for b := 0; b < limit; b++ {
				err = check(big.NewInt(int64(a)), big.NewInt(int64(b)))
				if err != nil {
					report.Err = err.Error()
					return report
				}
			}
		}
	} else {
		rng := rand.New(rand.NewSource(config.Seed + int64(width)))
		max := new(big.Int).Lsh(big.NewInt(1), uint(width))
		for i := 0; i < config.Pairs; i++ {
			a := new(big.Int).Rand(rng, max)
			b := new(big.Int).Rand(rng, max)
			if err = check(a, b); err != nil {
				report.Err = err.Error()
				return report
			}
		}
	}
	if len(report.Mismatches) > 0 {
		report.Err = fmt.Sprintf("%d mismatching operand pairs",
			len(report.Mismatches))
		return report
	}
	report.Pass = true
	return report
}

// stageLimit returns the stage count bound for the width: the
// theoretical log-1.5 depth plus slack.
func stageLimit(width int) int {
	d := len(sched.Targets(width))
	return d + 2
}

// crossCheck verifies the cross-strategy properties: equal stage
// counts, and the Dadda compressor count never above Wallace's for
// widths >= 4. Dadda always uses exactly its target sequence length;
// Wallace usually matches it but legitimately finishes early at some
// widths (20 and 29 are the first two), so unequal counts are a
// defect only when Wallace lands on the sequence depth itself. Both
// counts stay bounded by the per-strategy stage limit either way.
func crossCheck(result *Result, widths []int) {
	for _, width := range widths {
		var wallace, dadda *Report
		for idx, report := range result.Reports {
			if report.Width != width {
				continue
			}
			switch report.Strategy {
			case sched.Wallace.String():
				wallace = &result.Reports[idx]
			case sched.Dadda.String():
				dadda = &result.Reports[idx]
			}
		}
		if wallace == nil || dadda == nil || !wallace.Pass || !dadda.Pass {
			continue
		}
		if wallace.Stages != dadda.Stages {
			if wallace.Stages == len(sched.Targets(width)) {
				wallace.Pass = false
				dadda.Pass = false
				wallace.Err = fmt.Sprintf("stage count %d != Dadda %d",
					wallace.Stages, dadda.Stages)
				dadda.Err = fmt.Sprintf("stage count %d != Wallace %d",
					dadda.Stages, wallace.Stages)
				continue
			}
			log.Debugf("width %d: Wallace finishes in %d stages, Dadda targets take %d",
				width, wallace.Stages, dadda.Stages)
		}
		if width >= 4 && dadda.Compressors() > wallace.Compressors() {
			dadda.Pass = false
			dadda.Err = fmt.Sprintf("compressor count %d > Wallace %d",
				dadda.Compressors(), wallace.Compressors())
		}
	}
}
