package validation

import (
	"context"
	"fmt"

	"route-bench/graphdef"
	"route-bench/solverout"
	"route-bench/vrp"
)

// Outcome is the verdict on one algorithm output file
type Outcome struct {
	Folder    string             `json:"folder"`
	File      string             `json:"file"`
	Claimed   *solverout.Claimed `json:"claimed"`
	Best      *vrp.Solution      `json:"best"`
	BestValue int                `json:"best_value"`
	Match     bool               `json:"match"`
}

// Validator recomputes the optimal cost of an instance and compares it
// with what an algorithm claimed
type Validator struct {
	solver   vrp.Solver
	capacity int
	maxStops int
}

// NewValidator creates a validator with fixed vehicle limits
func NewValidator(solver vrp.Solver, capacity, maxStops int) *Validator {
	return &Validator{
		solver:   solver,
		capacity: capacity,
		maxStops: maxStops,
	}
}

// Solve runs the solver on a graph definition
func (v *Validator) Solve(ctx context.Context, def *graphdef.Definition) (*vrp.Solution, error) {
	g := vrp.NewGraph(def.Demands, def.Edges)
	sol, err := v.solver.Solve(ctx, g, v.capacity, v.maxStops)
	if err != nil {
		return nil, fmt.Errorf("%s solver failed: %w", v.solver.Name(), err)
	}
	return sol, nil
}

// Validate solves the instance and compares costs with exact equality
func (v *Validator) Validate(ctx context.Context, def *graphdef.Definition, claimed *solverout.Claimed) (*Outcome, error) {
	sol, err := v.Solve(ctx, def)
	if err != nil {
		return nil, err
	}
	return Compare(claimed, sol), nil
}

// Compare builds the outcome of a claimed result against a solution
func Compare(claimed *solverout.Claimed, sol *vrp.Solution) *Outcome {
	return &Outcome{
		Claimed:   claimed,
		Best:      sol,
		BestValue: sol.Cost,
		Match:     claimed.Cost == sol.Cost,
	}
}
