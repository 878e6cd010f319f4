//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Package sched implements the reduction scheduler. Given the
// stage-0 partial-product matrix and a strategy, it computes the
// ordered list of stages and compressor assignments reducing every
// column to height <= 2, ready for a final two-input adder.
package sched

import (
	"fmt"

	"github.com/jkivinen/redtree/compress"
	"github.com/jkivinen/redtree/matrix"
)

// Assignment binds compressor input cells at one stage to the sum
// and carry output cells at the next stage. The sum stays in the
// same column; the carry lands in the next-higher column. A carry
// never skips a column or a stage.
type Assignment struct {
	Op    compress.Op
	Col   int
	In    []matrix.CellID
	Sum   matrix.CellID
	Carry matrix.CellID
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s@%d", a.Op, a.Col)
}

// Stage is a snapshot of all columns, together with the compressor
// assignments applied to it to produce the next stage. The terminal
// stage has no assignments.
type Stage struct {
	Index int
	Cols  [][]matrix.CellID
	Asgs  []Assignment
}

// Heights returns the column heights of the stage.
func (st *Stage) Heights() []int {
	heights := make([]int, len(st.Cols))
	for col, cells := range st.Cols {
		heights[col] = len(cells)
	}
	return heights
}

// MaxHeight returns the maximum column height of the stage.
func (st *Stage) MaxHeight() int {
	var max int
	for _, cells := range st.Cols {
		if len(cells) > max {
			max = len(cells)
		}
	}
	return max
}

// Schedule is a complete reduction schedule: the ordered stages from
// the raw partial-product matrix down to the two-row form, with the
// full list of compressor assignments per stage.
type Schedule struct {
	M        *matrix.Matrix
	Strategy Strategy
	Stages   []*Stage
	Targets  []int
	Full     int
	Half     int
}

// Compressors returns the total number of compressors in the
// schedule.
func (sch *Schedule) Compressors() int {
	return sch.Full + sch.Half
}

// NumStages returns the number of reduction stages applied. The
// terminal snapshot is not counted.
func (sch *Schedule) NumStages() int {
	return len(sch.Stages) - 1
}

// Last returns the terminal stage.
func (sch *Schedule) Last() *Stage {
	return sch.Stages[len(sch.Stages)-1]
}

func (sch *Schedule) String() string {
	return fmt.Sprintf("%s %dx%d: %d stages, %d FA, %d HA",
		sch.Strategy, sch.M.WA, sch.M.WB, sch.NumStages(), sch.Full, sch.Half)
}

// StageBound returns the generous non-termination guard for the
// initial maximum column height h: 4 times the log-1.5 reduction
// depth.
func StageBound(h int) int {
	return 4 * depth(h)
}

// depth returns ceil(log1.5 h) computed by walking the reduction
// sequence; this is the theoretical stage-count order for both
// strategies.
func depth(h int) int {
	var d int
	for t := 2; t < h; t = t * 3 / 2 {
		d++
	}
	if d == 0 {
		return 1
	}
	return d
}

// Build computes the reduction schedule for wa-bit by wb-bit
// operands with the given strategy. The stage-0 snapshot is the raw
// partial-product matrix; the last snapshot has every column height
// <= 2. Build fails only on invariant violations, which indicate
// scheduler defects.
func Build(wa, wb int, strategy Strategy) (*Schedule, error) {
	if wa < 1 || wb < 1 {
		return nil, fmt.Errorf("invalid operand widths: %dx%d", wa, wb)
	}
	m := matrix.New(wa, wb)
	sch := &Schedule{
		M:        m,
		Strategy: strategy,
	}
	st := &Stage{
		Cols: m.Cols,
	}
	sch.Stages = append(sch.Stages, st)

	if strategy == Dadda {
		sch.Targets = Targets(st.MaxHeight())
	}
	bound := StageBound(st.MaxHeight())

	for st.MaxHeight() > 2 {
		if st.Index >= bound {
			return nil, &NonTerminationError{
				Stages: st.Index,
				Bound:  bound,
			}
		}
		var next *Stage
		var err error

		switch strategy {
		case Wallace:
			next = sch.wallaceStage(st)

		case Dadda:
			if st.Index >= len(sch.Targets) {
				return nil, &NonTerminationError{
					Stages: st.Index,
					Bound:  len(sch.Targets),
				}
			}
			next, err = sch.daddaStage(st, sch.Targets[st.Index])
			if err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("unknown strategy: %v", strategy)
		}
		trim(next)
		sch.Stages = append(sch.Stages, next)
		st = next
	}
	return sch, nil
}

// assign applies one compressor to the input cells in the column col
// of the stage cur, placing its sum and carry outputs into next.
func (sch *Schedule) assign(cur, next *Stage, op compress.Op, col int,
	in []matrix.CellID) {

	sum := sch.M.NewCell(col, next.Index)
	carry := sch.M.NewCell(col+1, next.Index)

	cur.Asgs = append(cur.Asgs, Assignment{
		Op:    op,
		Col:   col,
		In:    in,
		Sum:   sum,
		Carry: carry,
	})
	next.Cols[col] = append(next.Cols[col], sum)
	next.Cols[col+1] = append(next.Cols[col+1], carry)

	if op == compress.FA32 {
		sch.Full++
	} else {
		sch.Half++
	}
}

// nextStage creates the successor snapshot of cur. It has one extra
// column so that a carry out of the top column always has a home;
// trim drops it again if it stays empty.
func nextStage(cur *Stage) *Stage {
	return &Stage{
		Index: cur.Index + 1,
		Cols:  make([][]matrix.CellID, len(cur.Cols)+1),
	}
}

func trim(st *Stage) {
	for len(st.Cols) > 0 && len(st.Cols[len(st.Cols)-1]) == 0 {
		st.Cols = st.Cols[:len(st.Cols)-1]
	}
}
