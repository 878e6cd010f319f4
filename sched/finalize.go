//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Rows is the two-row form of a reduced matrix: two equal-width
// unsigned rows whose sum is the product of the original operands.
// The sum itself belongs to the final fast adder.
type Rows struct {
	Width int
	R0    *bitset.BitSet
	R1    *bitset.BitSet
}

// Int returns the row idx as an unsigned integer.
func (r *Rows) Int(idx int) *big.Int {
	row := r.R0
	if idx != 0 {
		row = r.R1
	}
	result := new(big.Int)
	for i, ok := row.NextSet(0); ok; i, ok = row.NextSet(i + 1) {
		result.SetBit(result, int(i), 1)
	}
	return result
}

func (r *Rows) String() string {
	return fmt.Sprintf("%0*b + %0*b",
		r.Width, r.Int(0), r.Width, r.Int(1))
}

// Finalize emits the two-row form of the terminal stage for the
// evaluated cell values: row 0 holds one cell per column, row 1 the
// second cell where the column height was 2. Missing cells are
// zero-padded.
func (sch *Schedule) Finalize(vals Values) (*Rows, error) {
	last := sch.Last()
	if last.MaxHeight() > 2 {
		return nil, fmt.Errorf("schedule not in two-row form: height %d",
			last.MaxHeight())
	}
	width := sch.M.Width()
	// A structural carry past the product width must hold the value
	// zero for in-range operands.
	for col := width; col < len(last.Cols); col++ {
		for _, id := range last.Cols[col] {
			if vals[id] != 0 {
				return nil, fmt.Errorf("non-zero carry in column %d", col)
			}
		}
	}
	rows := &Rows{
		Width: width,
		R0:    bitset.New(uint(width)),
		R1:    bitset.New(uint(width)),
	}
	for col, cells := range last.Cols {
		if col >= width {
			break
		}
		if len(cells) > 0 && vals[cells[0]] != 0 {
			rows.R0.Set(uint(col))
		}
		if len(cells) > 1 && vals[cells[1]] != 0 {
			rows.R1.Set(uint(col))
		}
	}
	return rows, nil
}

// Adder is the final fast adder collaborator consuming the tree
// output: it adds the two rows into the product.
type Adder interface {
	Add(rows *Rows) *big.Int
}

// RefAdder implements Adder with arbitrary-precision addition. It is
// the reference collaborator used by the verifier.
type RefAdder struct{}

// Add implements Adder.Add.
func (RefAdder) Add(rows *Rows) *big.Int {
	return new(big.Int).Add(rows.Int(0), rows.Int(1))
}
