// Package check resolves percentile skill checks.
package check

import (
	"errors"
	"fmt"
)

const (
	MinTargetNumber = 0
	MaxTargetNumber = 100
	MinRoll         = 1
	MaxRoll         = 100

	// DefaultTargetNumber is used for unset skills when the caller opts into a fallback.
	DefaultTargetNumber = 50

	degreeBand = 10
)

// ErrInvalidTargetNumber indicates a target number outside [0,100].
var ErrInvalidTargetNumber = errors.New("target number must be between 0 and 100")

// ErrInvalidRoll indicates a d100 result outside [1,100].
var ErrInvalidRoll = errors.New("roll must be between 1 and 100")

// ErrMissingSkill indicates no target number could be found for a skill.
// Resolve never returns it; callers report it before rolling.
var ErrMissingSkill = errors.New("skill not found")

// Outcome is the pass/fail classification of a check.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unspecified"
	}
}

// MarshalText encodes the outcome as its lowercase name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses "success" or "failure".
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "success":
		*o = OutcomeSuccess
	case "failure":
		*o = OutcomeFailure
	case "unspecified", "":
		*o = OutcomeUnspecified
	default:
		return fmt.Errorf("unknown outcome %q", string(b))
	}
	return nil
}

// Result is a resolved skill check.
type Result struct {
	Roll         int     `json:"roll"`
	TargetNumber int     `json:"target_number"`
	Outcome      Outcome `json:"outcome"`
	Margin       int     `json:"margin"`
	Degree       int     `json:"degree"`
}

// Resolve classifies roll against targetNumber. A roll equal to the
// target is a success with margin 0. Degrees grow by one every ten
// points of margin with no upper bound.
func Resolve(targetNumber, roll int) (Result, error) {
	if targetNumber < MinTargetNumber || targetNumber > MaxTargetNumber {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidTargetNumber, targetNumber)
	}
	if roll < MinRoll || roll > MaxRoll {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidRoll, roll)
	}

	outcome := OutcomeFailure
	margin := roll - targetNumber
	if roll <= targetNumber {
		outcome = OutcomeSuccess
		margin = targetNumber - roll
	}

	return Result{
		Roll:         roll,
		TargetNumber: targetNumber,
		Outcome:      outcome,
		Margin:       margin,
		Degree:       margin/degreeBand + 1,
	}, nil
}

// Success reports whether the check passed.
func (r Result) Success() bool {
	return r.Outcome == OutcomeSuccess
}
