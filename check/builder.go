package check

import (
	"io"
	"os"

	"github.com/rs/xid"
)

// A Check is a configured conformance check. It binds one parameter set to
// an output writer and can run any number of times with identical results.
type Check struct {
	id     string
	params Params
	writer io.Writer
}

// Builder can be used to build a conformance check.
type Builder struct {
	params Params
	writer io.Writer
}

// MakeBuilder creates a new builder. The parameter defaults are the
// reference configuration: Bound=10, Flag=1, PowerValue=4.
func MakeBuilder() Builder {
	return Builder{
		params: DefaultParams(),
	}
}

// WithBound sets the integer bound parameter.
func (b Builder) WithBound(v int) Builder {
	b.params.Bound = v
	return b
}

// WithFlag sets the boolean-as-integer flag parameter.
func (b Builder) WithFlag(v int) Builder {
	b.params.Flag = v
	return b
}

// WithPowerValue sets the power-of-two parameter.
func (b Builder) WithPowerValue(v int) Builder {
	b.params.PowerValue = v
	return b
}

// WithParams replaces all three parameters at once.
func (b Builder) WithParams(p Params) Builder {
	b.params = p
	return b
}

// WithWriter sets the writer that receives the formatted result. The
// default is standard output.
func (b Builder) WithWriter(w io.Writer) Builder {
	b.writer = w
	return b
}

// Build builds the check. Parameter constraints are not enforced here;
// Run reports them so that callers decide whether to abort.
func (b Builder) Build() *Check {
	c := &Check{
		id:     xid.New().String(),
		params: b.params,
		writer: b.writer,
	}

	if c.writer == nil {
		c.writer = os.Stdout
	}

	return c
}

// ID returns the unique ID of the check.
func (c *Check) ID() string {
	return c.id
}

// Params returns the parameter set the check runs against.
func (c *Check) Params() Params {
	return c.params
}

// Run validates the parameters and, on success, writes the formatted result
// to the configured writer.
func (c *Check) Run() (float64, error) {
	return Run(c.params, c.writer)
}
