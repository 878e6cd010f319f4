//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package sched

import (
	"fmt"
	"strings"
)

// Strategy selects the reduction strategy.
type Strategy byte

// Reduction strategies.
const (
	// Wallace reduces every column as much as possible at every
	// stage, minimizing the stage count.
	Wallace Strategy = iota
	// Dadda reduces every column as little as possible while
	// meeting the precomputed per-stage height targets, minimizing
	// the compressor count.
	Dadda
)

func (s Strategy) String() string {
	switch s {
	case Wallace:
		return "Wallace"
	case Dadda:
		return "Dadda"
	default:
		return fmt.Sprintf("{Strategy %d}", s)
	}
}

// ParseStrategy parses the strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "wallace":
		return Wallace, nil
	case "dadda":
		return Dadda, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %s", name)
	}
}

// Strategies lists all reduction strategies.
var Strategies = []Strategy{Wallace, Dadda}
