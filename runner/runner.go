// Package runner executes batches of conformance checks and records each
// outcome.
package runner

import (
	"io"
	"os"

	"github.com/conformlab/constcheck/check"
	"github.com/conformlab/constcheck/recording"
)

// Recorder persists the outcome of check runs.
type Recorder interface {
	RecordRun(recording.RunRecord)
	Flush()
}

// A Summary aggregates the outcomes of one batch.
type Summary struct {
	Total    int
	Passed   int
	Violated int
}

// AllPassed reports whether no run in the batch violated a constraint.
func (s Summary) AllPassed() bool {
	return s.Violated == 0
}

// A Runner runs parameter sets through the check in sequence. Violated
// sets do not stop the batch and never produce an output line.
type Runner struct {
	recorder Recorder
	writer   io.Writer
}

// Builder can be used to build a runner.
type Builder struct {
	recorder Recorder
	writer   io.Writer
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithRecorder sets the recorder that receives one record per run.
func (b Builder) WithRecorder(r Recorder) Builder {
	b.recorder = r
	return b
}

// WithWriter sets the writer that receives the formatted result of each
// passing run. The default is standard output.
func (b Builder) WithWriter(w io.Writer) Builder {
	b.writer = w
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.recorder == nil {
		panic("runner requires a recorder")
	}
}

// Build builds the runner.
func (b Builder) Build() *Runner {
	b.parametersMustBeValid()

	r := &Runner{
		recorder: b.recorder,
		writer:   b.writer,
	}

	if r.writer == nil {
		r.writer = os.Stdout
	}

	return r
}

// RunAll runs every parameter set, records each outcome, and flushes the
// recorder before returning the batch summary.
func (r *Runner) RunAll(sets []check.Params) Summary {
	summary := Summary{Total: len(sets)}

	for _, p := range sets {
		rec := recording.MakeRunRecord(p.Bound, p.Flag, p.PowerValue)

		result, err := check.Run(p, r.writer)
		if err != nil {
			rec.Status = recording.StatusViolation
			rec.Detail = err.Error()
			summary.Violated++
		} else {
			rec.Status = recording.StatusPass
			rec.Result = result
			summary.Passed++
		}

		r.recorder.RecordRun(rec)
	}

	r.recorder.Flush()

	return summary
}
