package check

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResolve_Boundaries(t *testing.T) {
	cases := []struct {
		target, roll int
		outcome      Outcome
		margin       int
		degree       int
	}{
		{50, 50, OutcomeSuccess, 0, 1},
		{50, 51, OutcomeFailure, 1, 1},
		{50, 60, OutcomeFailure, 10, 2},
		{50, 30, OutcomeSuccess, 20, 3},
		{100, 1, OutcomeSuccess, 99, 10},
		{0, 1, OutcomeFailure, 1, 1},
		{0, 100, OutcomeFailure, 100, 11},
		{100, 100, OutcomeSuccess, 0, 1},
		{50, 41, OutcomeSuccess, 9, 1},
		{50, 40, OutcomeSuccess, 10, 2},
	}
	for _, c := range cases {
		got, err := Resolve(c.target, c.roll)
		if err != nil {
			t.Fatalf("Resolve(%d, %d) error: %v", c.target, c.roll, err)
		}
		want := Result{Roll: c.roll, TargetNumber: c.target, Outcome: c.outcome, Margin: c.margin, Degree: c.degree}
		if got != want {
			t.Fatalf("Resolve(%d, %d) = %+v, want %+v", c.target, c.roll, got, want)
		}
	}
}

func TestResolve_InvalidInputs(t *testing.T) {
	cases := []struct {
		target, roll int
		want         error
	}{
		{-1, 50, ErrInvalidTargetNumber},
		{101, 50, ErrInvalidTargetNumber},
		{50, 0, ErrInvalidRoll},
		{50, 101, ErrInvalidRoll},
		{-5, 0, ErrInvalidTargetNumber},
	}
	for _, c := range cases {
		got, err := Resolve(c.target, c.roll)
		if !errors.Is(err, c.want) {
			t.Fatalf("Resolve(%d, %d) error = %v, want %v", c.target, c.roll, err, c.want)
		}
		if got != (Result{}) {
			t.Fatalf("Resolve(%d, %d) returned partial result %+v", c.target, c.roll, got)
		}
	}
}

func TestResolve_AllValidInputs(t *testing.T) {
	for target := MinTargetNumber; target <= MaxTargetNumber; target++ {
		prevDegree := 0
		prevMargin := -1
		// walk away from the target upwards; degree must never shrink
		for roll := MinRoll; roll <= MaxRoll; roll++ {
			r, err := Resolve(target, roll)
			if err != nil {
				t.Fatalf("Resolve(%d, %d): %v", target, roll, err)
			}
			if r.Success() != (roll <= target) {
				t.Fatalf("Resolve(%d, %d) outcome = %v", target, roll, r.Outcome)
			}
			if r.Margin < 0 {
				t.Fatalf("Resolve(%d, %d) negative margin %d", target, roll, r.Margin)
			}
			if (r.Margin == 0) != (roll == target) {
				t.Fatalf("Resolve(%d, %d) margin = %d", target, roll, r.Margin)
			}
			if r.Degree != r.Margin/10+1 {
				t.Fatalf("Resolve(%d, %d) degree = %d for margin %d", target, roll, r.Degree, r.Margin)
			}
			if roll > target {
				if r.Margin <= prevMargin || r.Degree < prevDegree {
					t.Fatalf("degree not monotonic at Resolve(%d, %d)", target, roll)
				}
				prevMargin, prevDegree = r.Margin, r.Degree
			}
			again, _ := Resolve(target, roll)
			if again != r {
				t.Fatalf("Resolve(%d, %d) not idempotent: %+v vs %+v", target, roll, r, again)
			}
		}
	}
}

func TestResult_TierAndLabel(t *testing.T) {
	cases := []struct {
		target, roll int
		tier         Tier
		label        string
	}{
		{50, 45, TierStandard, "Success"},
		{50, 40, TierGreat, "Great Success"},
		{50, 30, TierCritical, "Critical Success"},
		{50, 59, TierStandard, "Failure"},
		{50, 60, TierGreat, "Great Failure"},
		{50, 70, TierCritical, "Critical Failure"},
	}
	for _, c := range cases {
		r, err := Resolve(c.target, c.roll)
		if err != nil {
			t.Fatal(err)
		}
		if r.Tier() != c.tier || r.Label() != c.label {
			t.Fatalf("Resolve(%d, %d) tier=%v label=%q, want %v %q", c.target, c.roll, r.Tier(), r.Label(), c.tier, c.label)
		}
	}
}

func TestResult_OutcomeEncodesAsText(t *testing.T) {
	r, _ := Resolve(50, 51)
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["outcome"] != "failure" {
		t.Fatalf("outcome encoded as %v", raw["outcome"])
	}

	var o Outcome
	if err := o.UnmarshalText([]byte("success")); err != nil || o != OutcomeSuccess {
		t.Fatalf("UnmarshalText success: %v %v", o, err)
	}
	if err := o.UnmarshalText([]byte("draw")); err == nil {
		t.Fatalf("expected error for unknown outcome")
	}
}
