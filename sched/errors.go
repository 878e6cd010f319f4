//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"fmt"
	"math/big"
)

// ConservationError reports a stage transition that changed the
// total weighted value of the matrix. It indicates a scheduler bug
// and is never recovered.
type ConservationError struct {
	Stage int
	Want  *big.Int
	Got   *big.Int
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf(
		"conservation violation at stage %d: weighted value %v, expected %v",
		e.Stage, e.Got, e.Want)
}

// HeightError reports a Dadda stage that left a column above its
// target height.
type HeightError struct {
	Stage  int
	Col    int
	Height int
	Target int
}

func (e *HeightError) Error() string {
	return fmt.Sprintf("height violation at stage %d, column %d: height %d > target %d",
		e.Stage, e.Col, e.Height, e.Target)
}

// NonTerminationError reports a scheduler run that exceeded its
// stage bound without reducing every column to height <= 2.
type NonTerminationError struct {
	Stages int
	Bound  int
}

func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("no termination after %d stages (bound %d)",
		e.Stages, e.Bound)
}
