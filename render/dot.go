//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

package render

import (
	"fmt"
	"io"

	"github.com/jkivinen/redtree/sched"
)

// Dot creates graphviz dot output of the schedule's cell and
// compressor graph. Cells are plaintext nodes labeled stage.column,
// compressors are boxes; edges run from input cells through the
// compressor to its sum and carry cells.
func Dot(out io.Writer, sch *sched.Schedule) {
	fmt.Fprintf(out, "digraph schedule\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for _, st := range sch.Stages {
		for col, cells := range st.Cols {
			for _, id := range cells {
				c := sch.M.Cell(id)
				if c.Born != st.Index {
					// Forwarded cell, already emitted.
					continue
				}
				fmt.Fprintf(out, "    c%d\t[label=\"%d.%d\"];\n",
					id, st.Index, col)
			}
		}
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	var g int
	for _, st := range sch.Stages {
		for _, asg := range st.Asgs {
			fmt.Fprintf(out, "    g%d\t[label=\"%s\"];\n", g, asg.Op)
			g++
		}
	}
	fmt.Fprintf(out, "  }\n")

	g = 0
	for _, st := range sch.Stages {
		for _, asg := range st.Asgs {
			for _, in := range asg.In {
				fmt.Fprintf(out, "  c%d -> g%d;\n", in, g)
			}
			fmt.Fprintf(out, "  g%d -> c%d;\n", g, asg.Sum)
			fmt.Fprintf(out, "  g%d -> c%d;\n", g, asg.Carry)
			g++
		}
	}
	fmt.Fprintf(out, "}\n")
}
