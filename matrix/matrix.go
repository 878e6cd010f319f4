//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Package matrix implements the partial-product bit matrix. The
// matrix owns an arena of bit cells: stage-0 cells are the partial
// products A[i] AND B[j], later cells are created by the scheduler as
// compressor sum and carry outputs. Cells are immutable once created
// and identified by their CellID.
package matrix

import (
	"fmt"
	"math/big"
)

// CellID identifies a cell in the matrix cell arena.
type CellID uint32

// Cell is a single bit position: born at stage Born in the column
// Col. Stage-0 cells record the operand bit pair (AI, BJ) defining
// their value; cells created by compressors have AI and BJ set to -1.
type Cell struct {
	Col  int
	Born int
	AI   int
	BJ   int
}

// Matrix holds the cell arena and the stage-0 partial-product
// columns for a WA-bit by WB-bit multiplication.
type Matrix struct {
	WA    int
	WB    int
	Cols  [][]CellID
	cells []Cell
}

// New creates the stage-0 partial-product matrix for wa-bit by
// wb-bit operands. Column k (k = 0..wa+wb-1) holds one cell for
// every pair (i, j) with i+j = k, 0 <= i < wa, 0 <= j < wb. The top
// column is empty; it exists to receive compressor carries.
func New(wa, wb int) *Matrix {
	m := &Matrix{
		WA:   wa,
		WB:   wb,
		Cols: make([][]CellID, wa+wb),
	}
	for i := 0; i < wa; i++ {
		for j := 0; j < wb; j++ {
			id := m.newCell(Cell{
				Col: i + j,
				AI:  i,
				BJ:  j,
			})
			m.Cols[i+j] = append(m.Cols[i+j], id)
		}
	}
	return m
}

func (m *Matrix) newCell(c Cell) CellID {
	id := CellID(len(m.cells))
	m.cells = append(m.cells, c)
	return id
}

// NewCell creates a compressor output cell in the column col at the
// stage born.
func (m *Matrix) NewCell(col, born int) CellID {
	return m.newCell(Cell{
		Col:  col,
		Born: born,
		AI:   -1,
		BJ:   -1,
	})
}

// Cell returns the cell id.
func (m *Matrix) Cell(id CellID) Cell {
	return m.cells[id]
}

// NumCells returns the number of cells in the arena.
func (m *Matrix) NumCells() int {
	return len(m.cells)
}

// Width returns the product width wa+wb in bits.
func (m *Matrix) Width() int {
	return m.WA + m.WB
}

// Heights returns the stage-0 column heights. For square operands
// the profile is triangular: 1,2,...,n,...,2,1,0.
func (m *Matrix) Heights() []int {
	heights := make([]int, len(m.Cols))
	for col, cells := range m.Cols {
		heights[col] = len(cells)
	}
	return heights
}

// MaxHeight returns the maximum stage-0 column height.
func (m *Matrix) MaxHeight() int {
	var max int
	for _, cells := range m.Cols {
		if len(cells) > max {
			max = len(cells)
		}
	}
	return max
}

// Value returns the value of the stage-0 partial-product cell id for
// the operands a and b.
func (m *Matrix) Value(id CellID, a, b *big.Int) byte {
	c := m.cells[id]
	return byte(a.Bit(c.AI) & b.Bit(c.BJ))
}

func (m *Matrix) String() string {
	return fmt.Sprintf("%dx%d matrix, %d columns, height %d",
		m.WA, m.WB, len(m.Cols), m.MaxHeight())
}
