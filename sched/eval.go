//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"fmt"
	"math/big"

	"github.com/jkivinen/redtree/compress"
)

// Values holds the evaluated bit of every cell in the matrix arena.
type Values []byte

// Eval evaluates the schedule for the operands a and b: the stage-0
// cells take their partial-product values, and every assignment is
// replayed through the compressor primitives stage by stage. The
// total weighted value of all cells is verified at every stage
// transition; a change is a ConservationError and aborts the run.
func (sch *Schedule) Eval(a, b *big.Int) (Values, error) {
	if a.Sign() < 0 || b.Sign() < 0 || a.BitLen() > sch.M.WA ||
		b.BitLen() > sch.M.WB {
		return nil, fmt.Errorf("operands out of range for %dx%d matrix",
			sch.M.WA, sch.M.WB)
	}
	vals := make(Values, sch.M.NumCells())
	for _, cells := range sch.Stages[0].Cols {
		for _, id := range cells {
			vals[id] = sch.M.Value(id, a, b)
		}
	}
	want := sch.Stages[0].weighted(vals)

	for i := 0; i+1 < len(sch.Stages); i++ {
		for _, asg := range sch.Stages[i].Asgs {
			if len(asg.In) != asg.Op.Arity() {
				return nil, fmt.Errorf("stage %d: %s with %d inputs, expected %d",
					i, asg, len(asg.In), asg.Op.Arity())
			}
			switch asg.Op {
			case compress.FA32:
				vals[asg.Sum] = compress.Sum3(
					vals[asg.In[0]], vals[asg.In[1]], vals[asg.In[2]])
				vals[asg.Carry] = compress.Carry3(
					vals[asg.In[0]], vals[asg.In[1]], vals[asg.In[2]])

			case compress.HA22:
				vals[asg.Sum] = compress.Sum2(vals[asg.In[0]], vals[asg.In[1]])
				vals[asg.Carry] = compress.Carry2(
					vals[asg.In[0]], vals[asg.In[1]])
			}
		}
		got := sch.Stages[i+1].weighted(vals)
		if got.Cmp(want) != 0 {
			return nil, &ConservationError{
				Stage: i + 1,
				Want:  want,
				Got:   got,
			}
		}
	}
	return vals, nil
}

// weighted returns the total weighted value of the stage: the sum of
// value x 2^weight over all cells in all columns.
func (st *Stage) weighted(vals Values) *big.Int {
	sum := new(big.Int)
	bit := new(big.Int)
	for col, cells := range st.Cols {
		for _, id := range cells {
			if vals[id] != 0 {
				bit.SetInt64(1)
				bit.Lsh(bit, uint(col))
				sum.Add(sum, bit)
			}
		}
	}
	return sum
}
