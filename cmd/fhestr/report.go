package main

import (
	"fmt"
	"io"
	"time"

	"github.com/ai8future/fhestr"
	"github.com/markkurossi/tabulate"
	"go.uber.org/zap"
)

// result is the outcome of one operation.
type result struct {
	Op         string
	Got        string
	Want       string
	Elapsed    time.Duration
	Primitives uint64
	Err        error
}

func (r result) ok() bool { return r.Err == nil && r.Got == r.Want }

// execute runs one operation and records its cost.
func (x *session) execute(in *inputs) result {
	fn, ok := ops[in.Op]
	if !ok {
		return result{Op: in.Op, Err: fmt.Errorf("unknown operation %q", in.Op)}
	}

	var before uint64
	counter, counted := x.engine.Backend().(fhestr.CallCounter)
	if counted {
		before = counter.Calls()
	}
	start := time.Now()
	got, want, err := fn(x, in)
	r := result{
		Op:      in.Op,
		Got:     got,
		Want:    want,
		Elapsed: time.Since(start),
		Err:     err,
	}
	if counted {
		r.Primitives = counter.Calls() - before
	}

	logger.Debug("operation finished",
		zap.String("op", r.Op),
		zap.Duration("elapsed", r.Elapsed),
		zap.Uint64("primitives", r.Primitives),
		zap.Bool("match", r.ok()),
	)
	return r
}

// printResults writes results as a table and returns the number of
// mismatches.
func printResults(w io.Writer, results []result) int {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Engine").SetAlign(tabulate.ML)
	tab.Header("Reference").SetAlign(tabulate.ML)
	tab.Header("Match").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("Primitives").SetAlign(tabulate.MR)

	var failed int
	for _, r := range results {
		row := tab.Row()
		row.Column(r.Op)
		if r.Err != nil {
			row.Column("error: " + r.Err.Error()).SetFormat(tabulate.FmtBold)
		} else {
			row.Column(r.Got)
		}
		row.Column(r.Want)
		if r.ok() {
			row.Column("yes")
		} else {
			failed++
			row.Column("NO").SetFormat(tabulate.FmtBold)
		}
		row.Column(r.Elapsed.Round(time.Microsecond).String())
		row.Column(fmt.Sprintf("%d", r.Primitives))
	}
	tab.Print(w)
	return failed
}
