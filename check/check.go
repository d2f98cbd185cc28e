// Package check validates build-time configuration constants and computes
// the derived conformance value over them.
package check

import (
	"fmt"
	"io"
	"math"
)

// Params holds the three externally supplied configuration values that a
// conformance check runs against. A Params value is immutable for the
// lifetime of a check.
type Params struct {
	Bound      int
	Flag       int
	PowerValue int
}

// DefaultParams returns the reference parameter set carried by the build
// configuration this check originates from.
func DefaultParams() Params {
	return Params{
		Bound:      10,
		Flag:       1,
		PowerValue: 4,
	}
}

// ConstraintViolation reports the first parameter that failed its
// constraint. It is the only error kind the check itself produces.
type ConstraintViolation struct {
	Param      string
	Value      int
	Constraint string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violated: %s = %d, want %s",
		e.Param, e.Value, e.Constraint)
}

// Validate checks the three constraints in order: Bound, Flag, PowerValue.
// It returns a *ConstraintViolation for the first gate that fails, or nil
// when all constraints hold.
func (p Params) Validate() error {
	if p.Bound <= 7 {
		return &ConstraintViolation{
			Param:      "Bound",
			Value:      p.Bound,
			Constraint: "> 7",
		}
	}

	if p.Flag != 0 && p.Flag != 1 {
		return &ConstraintViolation{
			Param:      "Flag",
			Value:      p.Flag,
			Constraint: "0 or 1",
		}
	}

	if !isPowerOfTwo(p.PowerValue) {
		return &ConstraintViolation{
			Param:      "PowerValue",
			Value:      p.PowerValue,
			Constraint: "a power of two",
		}
	}

	return nil
}

// isPowerOfTwo reports whether v has exactly one set bit. The v != 0 guard
// keeps zero from passing the bit trick, as 0&-1 == 0.
func isPowerOfTwo(v int) bool {
	return v != 0 && v&(v-1) == 0
}

// Result computes |(Bound-5.5)*(Flag+0.1)*(PowerValue-2.5)| in IEEE-754
// double precision. The result is always non-negative. Result does not
// validate; call Validate first.
func (p Params) Result() float64 {
	return math.Abs((float64(p.Bound) - 5.5) *
		(float64(p.Flag) + 0.1) *
		(float64(p.PowerValue) - 2.5))
}

// Run validates p and, when all constraints hold, writes the result to w as
// a six-digit decimal followed by a newline. Nothing is written when a
// constraint is violated.
func Run(p Params, w io.Writer) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	r := p.Result()
	fmt.Fprintf(w, "%f\n", r)

	return r, nil
}
