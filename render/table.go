//
// Copyright (c) 2025-2026 Jukka Kivinen
//
// All rights reserved.
//

// Package render implements schedule and report rendering: tabulated
// stage and comparison reports, graphviz output of the compressor
// graph, and JSON export of verification results.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"

	"github.com/jkivinen/redtree/compress"
	"github.com/jkivinen/redtree/sched"
	"github.com/jkivinen/redtree/verify"
)

// PrintSchedule prints the stage-by-stage reduction summary of the
// schedule.
func PrintSchedule(out io.Writer, sch *sched.Schedule) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Stage").SetAlign(tabulate.MR)
	tab.Header("Height").SetAlign(tabulate.MR)
	if sch.Strategy == sched.Dadda {
		tab.Header("Target").SetAlign(tabulate.MR)
	}
	tab.Header("FA").SetAlign(tabulate.MR)
	tab.Header("HA").SetAlign(tabulate.MR)

	for _, st := range sch.Stages {
		var fa, ha int
		for _, asg := range st.Asgs {
			if asg.Op == compress.FA32 {
				fa++
			} else {
				ha++
			}
		}
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", st.Index))
		row.Column(fmt.Sprintf("%d", st.MaxHeight()))
		if sch.Strategy == sched.Dadda {
			if st.Index < len(sch.Targets) {
				row.Column(fmt.Sprintf("%d", sch.Targets[st.Index]))
			} else {
				row.Column("-")
			}
		}
		row.Column(fmt.Sprintf("%d", fa))
		row.Column(fmt.Sprintf("%d", ha))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column("")
	if sch.Strategy == sched.Dadda {
		row.Column("")
	}
	row.Column(fmt.Sprintf("%d", sch.Full)).SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", sch.Half)).SetFormat(tabulate.FmtBold)

	tab.Print(out)
}

// PrintProfile prints the column height profile of every stage, one
// column per weight, labeled 2⁰, 2¹, and so on in the most
// significant first order.
func PrintProfile(out io.Writer, sch *sched.Schedule) {
	width := len(sch.Stages[0].Cols)
	for _, st := range sch.Stages {
		if len(st.Cols) > width {
			width = len(st.Cols)
		}
	}
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Stage").SetAlign(tabulate.MR)
	for col := width - 1; col >= 0; col-- {
		tab.Header(Weight(col)).SetAlign(tabulate.MR)
	}
	for _, st := range sch.Stages {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", st.Index))
		for col := width - 1; col >= 0; col-- {
			if col < len(st.Cols) {
				row.Column(fmt.Sprintf("%d", len(st.Cols[col])))
			} else {
				row.Column("")
			}
		}
	}
	tab.Print(out)
}

// Weight returns the rendered bit weight 2^col.
func Weight(col int) string {
	return "2" + superscript.Itoa(col)
}

// PrintCompare prints the strategy comparison report for the
// verification result.
func PrintCompare(out io.Writer, result *verify.Result) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Width").SetAlign(tabulate.MR)
	tab.Header("Strategy").SetAlign(tabulate.ML)
	tab.Header("Stages").SetAlign(tabulate.MR)
	tab.Header("FA").SetAlign(tabulate.MR)
	tab.Header("HA").SetAlign(tabulate.MR)
	tab.Header("Total").SetAlign(tabulate.MR)
	tab.Header("Pairs").SetAlign(tabulate.MR)
	tab.Header("Result").SetAlign(tabulate.ML)

	for _, report := range result.Reports {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", report.Width))
		row.Column(report.Strategy)
		row.Column(fmt.Sprintf("%d", report.Stages))
		row.Column(fmt.Sprintf("%d", report.Full))
		row.Column(fmt.Sprintf("%d", report.Half))
		row.Column(fmt.Sprintf("%d", report.Compressors()))
		row.Column(fmt.Sprintf("%d", report.Pairs))
		if report.Pass {
			row.Column("pass")
		} else {
			row.Column("FAIL: " + report.Err).SetFormat(tabulate.FmtBold)
		}
	}
	tab.Print(out)

	for _, report := range result.Reports {
		if report.Strategy != sched.Dadda.String() || !report.Pass {
			continue
		}
		wallace := result.Report(report.Width, sched.Wallace)
		if wallace == nil || !wallace.Pass ||
			wallace.Compressors() <= report.Compressors() {
			continue
		}
		saving := float64(wallace.Compressors()-report.Compressors()) /
			float64(wallace.Compressors()) * 100
		fmt.Fprintf(out, "width %d: Dadda uses %.1f%% fewer compressors\n",
			report.Width, saving)
	}
}

// WriteJSON writes the value as indented JSON.
func WriteJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	if err != nil {
		return err
	}
	_, err = out.Write([]byte{'\n'})
	return err
}
