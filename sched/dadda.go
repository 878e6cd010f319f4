//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"github.com/jkivinen/redtree/compress"
)

// Targets returns the descending Dadda height targets for the given
// initial maximum column height. The ascending sequence 2, 3, 4, 6,
// 9, 13, 19, 28, 42, ... (next = floor(1.5 x previous)) is generated
// until a term reaches the initial height, then reversed with the
// leading terms >= the initial height dropped. The result length is
// the Dadda stage count; it is empty when the matrix is already in
// two-row form.
func Targets(max int) []int {
	if max <= 2 {
		return nil
	}
	seq := []int{2}
	for seq[len(seq)-1] < max {
		seq = append(seq, seq[len(seq)-1]*3/2)
	}
	var targets []int
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i] >= max {
			continue
		}
		targets = append(targets, seq[i])
	}
	return targets
}

// daddaStage applies one minimal reduction stage: each column
// receives the fewest compressors bringing its next-stage height to
// the target. Columns are walked in weight order so that the carries
// scheduled into the next-higher column are counted against its
// target; the carry cells themselves appear only at the next stage.
// Columns already at or below the target are left untouched.
func (sch *Schedule) daddaStage(cur *Stage, target int) (*Stage, error) {
	next := nextStage(cur)

	// Compressors applied in the previous (lower-weight) column;
	// their carries raise this column's next-stage height.
	var carryIn int

	for col, cells := range cur.Cols {
		var fa, ha int

		// Each full adder lowers the next-stage height by 2, each
		// half adder by 1.
		need := len(cells) + carryIn - target
		if need > 0 {
			fa = need / 2
			ha = need % 2
		}
		if 3*fa+2*ha > len(cells) {
			return nil, &HeightError{
				Stage:  next.Index,
				Col:    col,
				Height: len(cells) + carryIn,
				Target: target,
			}
		}
		i := 0
		for n := 0; n < fa; n++ {
			sch.assign(cur, next, compress.FA32, col, cells[i:i+3])
			i += 3
		}
		if ha > 0 {
			sch.assign(cur, next, compress.HA22, col, cells[i:i+2])
			i += 2
		}
		next.Cols[col] = append(next.Cols[col], cells[i:]...)

		carryIn = fa + ha
	}

	// The schedule must honor its precomputed targets.
	for col, cells := range next.Cols {
		if len(cells) > target {
			return nil, &HeightError{
				Stage:  next.Index,
				Col:    col,
				Height: len(cells),
				Target: target,
			}
		}
	}
	return next, nil
}
