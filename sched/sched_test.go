//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"
)

var testWidths = []int{1, 2, 3, 4, 8, 16, 32}

// product evaluates the schedule for a and b and adds the two-row
// form with the reference adder.
func product(t *testing.T, sch *Schedule, a, b *big.Int) *big.Int {
	t.Helper()

	vals, err := sch.Eval(a, b)
	if err != nil {
		t.Fatalf("%s: Eval(%v, %v): %s", sch, a, b, err)
	}
	rows, err := sch.Finalize(vals)
	if err != nil {
		t.Fatalf("%s: Finalize(%v, %v): %s", sch, a, b, err)
	}
	var adder RefAdder
	return adder.Add(rows)
}

func TestExhaustive4(t *testing.T) {
	for _, strategy := range Strategies {
		sch, err := Build(4, 4, strategy)
		if err != nil {
			t.Fatalf("Build(4, 4, %s): %s", strategy, err)
		}
		for a := int64(0); a < 16; a++ {
			for b := int64(0); b < 16; b++ {
				got := product(t, sch, big.NewInt(a), big.NewInt(b))
				if got.Int64() != a*b {
					t.Errorf("%s: %d*%d=%v, expected %d",
						strategy, a, b, got, a*b)
				}
			}
		}
	}
}

func TestSingleBit(t *testing.T) {
	for _, strategy := range Strategies {
		sch, err := Build(1, 1, strategy)
		if err != nil {
			t.Fatalf("Build(1, 1, %s): %s", strategy, err)
		}
		// A 1x1 matrix is already in two-row form.
		if sch.NumStages() != 0 {
			t.Errorf("%s: %d stages for single-bit multiply",
				strategy, sch.NumStages())
		}
		if sch.Compressors() != 0 {
			t.Errorf("%s: %d compressors for single-bit multiply",
				strategy, sch.Compressors())
		}
		for a := int64(0); a < 2; a++ {
			for b := int64(0); b < 2; b++ {
				got := product(t, sch, big.NewInt(a), big.NewInt(b))
				if got.Int64() != a&b {
					t.Errorf("%s: 1x1 %d*%d=%v", strategy, a, b, got)
				}
			}
		}
	}
}

func TestScenario3x2(t *testing.T) {
	for _, strategy := range Strategies {
		sch, err := Build(3, 2, strategy)
		if err != nil {
			t.Fatalf("Build(3, 2, %s): %s", strategy, err)
		}
		expected := []int{1, 2, 2, 1, 0}
		heights := sch.Stages[0].Heights()
		if len(heights) != len(expected) {
			t.Fatalf("%d stage-0 columns, expected %d",
				len(heights), len(expected))
		}
		for col, h := range heights {
			if h != expected[col] {
				t.Errorf("column %d: height %d, expected %d",
					col, h, expected[col])
			}
		}
		got := product(t, sch, big.NewInt(5), big.NewInt(3))
		if got.Int64() != 15 {
			t.Errorf("%s: 5*3=%v, expected 15", strategy, got)
		}
	}
}

func TestStageCounts(t *testing.T) {
	for _, width := range testWidths {
		wallace, err := Build(width, width, Wallace)
		if err != nil {
			t.Fatalf("Build(%d, %d, Wallace): %s", width, width, err)
		}
		dadda, err := Build(width, width, Dadda)
		if err != nil {
			t.Fatalf("Build(%d, %d, Dadda): %s", width, width, err)
		}
		// Dadda's stage count is its target sequence length.
		if dadda.NumStages() != len(Targets(width)) {
			t.Errorf("width %d: Dadda %d stages, expected %d",
				width, dadda.NumStages(), len(Targets(width)))
		}
		// Equal-depth property.
		if wallace.NumStages() != dadda.NumStages() {
			t.Errorf("width %d: Wallace %d stages, Dadda %d stages",
				width, wallace.NumStages(), dadda.NumStages())
		}
		if wallace.NumStages() > StageBound(width) {
			t.Errorf("width %d: %d stages over bound %d",
				width, wallace.NumStages(), StageBound(width))
		}
		for _, sch := range []*Schedule{wallace, dadda} {
			if sch.Last().MaxHeight() > 2 {
				t.Errorf("%s: terminal height %d",
					sch, sch.Last().MaxHeight())
			}
		}
	}
}

func TestCompressorCounts(t *testing.T) {
	for _, width := range []int{4, 8, 16, 32} {
		wallace, err := Build(width, width, Wallace)
		if err != nil {
			t.Fatalf("Build: %s", err)
		}
		dadda, err := Build(width, width, Dadda)
		if err != nil {
			t.Fatalf("Build: %s", err)
		}
		if dadda.Compressors() >= wallace.Compressors() {
			t.Errorf("width %d: Dadda %d compressors, Wallace %d",
				width, dadda.Compressors(), wallace.Compressors())
		}
	}
}

func TestDadda4Counts(t *testing.T) {
	// The classic 4x4 Dadda tree: two stages, 3 full adders, 3 half
	// adders.
	sch, err := Build(4, 4, Dadda)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	if sch.NumStages() != 2 {
		t.Errorf("%d stages, expected 2", sch.NumStages())
	}
	if sch.Full != 3 || sch.Half != 3 {
		t.Errorf("%d FA, %d HA, expected 3 FA, 3 HA", sch.Full, sch.Half)
	}
}

func TestWallace4Counts(t *testing.T) {
	sch, err := Build(4, 4, Wallace)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	if sch.NumStages() != 2 {
		t.Errorf("%d stages, expected 2", sch.NumStages())
	}
	if sch.Full != 4 || sch.Half != 6 {
		t.Errorf("%d FA, %d HA, expected 4 FA, 6 HA", sch.Full, sch.Half)
	}
}

func TestRandom32(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	max := new(big.Int).Lsh(big.NewInt(1), 32)

	for _, strategy := range Strategies {
		sch, err := Build(32, 32, strategy)
		if err != nil {
			t.Fatalf("Build(32, 32, %s): %s", strategy, err)
		}
		for i := 0; i < 1000; i++ {
			a := new(big.Int).Rand(rng, max)
			b := new(big.Int).Rand(rng, max)

			got := product(t, sch, a, b)
			want := new(big.Int).Mul(a, b)
			if got.Cmp(want) != 0 {
				t.Fatalf("%s: %v*%v=%v, expected %v",
					strategy, a, b, got, want)
			}
		}
	}
}

func TestRectangular(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	maxA := new(big.Int).Lsh(big.NewInt(1), 7)
	maxB := new(big.Int).Lsh(big.NewInt(1), 3)

	for _, strategy := range Strategies {
		sch, err := Build(7, 3, strategy)
		if err != nil {
			t.Fatalf("Build(7, 3, %s): %s", strategy, err)
		}
		for i := 0; i < 100; i++ {
			a := new(big.Int).Rand(rng, maxA)
			b := new(big.Int).Rand(rng, maxB)

			got := product(t, sch, a, b)
			want := new(big.Int).Mul(a, b)
			if got.Cmp(want) != 0 {
				t.Errorf("%s: %v*%v=%v, expected %v",
					strategy, a, b, got, want)
			}
		}
	}
}

func TestConservationCheck(t *testing.T) {
	// Swapping an assignment's sum and carry cells moves a bit to
	// the wrong weight; Eval must detect it for some operand pair.
	sch, err := Build(4, 4, Wallace)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	asgs := sch.Stages[0].Asgs
	asgs[0].Sum, asgs[0].Carry = asgs[0].Carry, asgs[0].Sum

	var detected bool
	for a := int64(0); a < 16 && !detected; a++ {
		for b := int64(0); b < 16; b++ {
			_, err := sch.Eval(big.NewInt(a), big.NewInt(b))
			if err != nil {
				var cerr *ConservationError
				if !errors.As(err, &cerr) {
					t.Fatalf("unexpected error: %s", err)
				}
				if cerr.Stage != 1 {
					t.Errorf("violation at stage %d, expected 1",
						cerr.Stage)
				}
				detected = true
				break
			}
		}
	}
	if !detected {
		t.Errorf("tampered schedule passed conservation check")
	}
}

func TestAssignmentArity(t *testing.T) {
	// An assignment whose input list does not match its compressor
	// arity is rejected before evaluation touches the inputs.
	sch, err := Build(4, 4, Wallace)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	asgs := sch.Stages[0].Asgs
	asgs[0].In = asgs[0].In[:1]

	if _, err := sch.Eval(big.NewInt(3), big.NewInt(3)); err == nil {
		t.Errorf("Eval accepted a %s assignment with 1 input", asgs[0].Op)
	}
}

func TestInvalidWidths(t *testing.T) {
	if _, err := Build(0, 4, Wallace); err == nil {
		t.Errorf("Build(0, 4) succeeded")
	}
	if _, err := Build(4, -1, Dadda); err == nil {
		t.Errorf("Build(4, -1) succeeded")
	}
}

func TestEvalRange(t *testing.T) {
	sch, err := Build(4, 4, Dadda)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	if _, err := sch.Eval(big.NewInt(16), big.NewInt(0)); err == nil {
		t.Errorf("Eval accepted out-of-range operand")
	}
	if _, err := sch.Eval(big.NewInt(-1), big.NewInt(0)); err == nil {
		t.Errorf("Eval accepted negative operand")
	}
}
