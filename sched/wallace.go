//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"github.com/jkivinen/redtree/compress"
)

// wallaceStage applies one greedy-maximal reduction stage: every
// column is compressed with as many full adders as it has cell
// triples, then a half adder if exactly two cells remain, leaving 0
// or 1 cell forwarded. Columns are independent within the stage;
// carries are visible only from the next stage on.
func (sch *Schedule) wallaceStage(cur *Stage) *Stage {
	next := nextStage(cur)

	for col, cells := range cur.Cols {
		i := 0
		for len(cells)-i >= 3 {
			sch.assign(cur, next, compress.FA32, col, cells[i:i+3])
			i += 3
		}
		if len(cells)-i == 2 {
			sch.assign(cur, next, compress.HA22, col, cells[i:i+2])
			i += 2
		}
		// Forward the untouched cells.
		next.Cols[col] = append(next.Cols[col], cells[i:]...)
	}
	return next
}
