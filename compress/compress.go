//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Package compress implements the 3:2 and 2:2 compressor primitives.
// A compressor consumes 3 or 2 bits of equal weight w and produces a
// sum bit at weight w and a carry bit at weight w+1. The functions
// are the value semantics of the classic full and half adder.
package compress

import (
	"fmt"
)

// Op identifies a compressor type.
type Op byte

// Compressor types.
const (
	// FA32 is the full adder: 3 inputs, sum and carry out.
	FA32 Op = iota
	// HA22 is the half adder: 2 inputs, sum and carry out.
	HA22
)

func (op Op) String() string {
	switch op {
	case FA32:
		return "FA"
	case HA22:
		return "HA"
	default:
		return fmt.Sprintf("{Op %d}", op)
	}
}

// Arity returns the number of input bits the compressor consumes.
func (op Op) Arity() int {
	if op == FA32 {
		return 3
	}
	return 2
}

// Sum3 returns the full adder sum: the parity of the three input
// bits.
func Sum3(a, b, c byte) byte {
	return a ^ b ^ c
}

// Carry3 returns the full adder carry: the majority of the three
// input bits.
func Carry3(a, b, c byte) byte {
	return (a & b) | (a & c) | (b & c)
}

// Sum2 returns the half adder sum.
func Sum2(a, b byte) byte {
	return a ^ b
}

// Carry2 returns the half adder carry.
func Carry2(a, b byte) byte {
	return a & b
}
