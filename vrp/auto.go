package vrp

import "context"

func init() {
	Register("auto", func() Solver {
		return NewAutoSolver()
	})
}

// AutoSolver solves small instances exactly and falls back to savings
type AutoSolver struct {
	exact   *ExactSolver
	savings *SavingsSolver
}

// NewAutoSolver creates a new auto solver
func NewAutoSolver() *AutoSolver {
	return &AutoSolver{exact: NewExactSolver(), savings: NewSavingsSolver()}
}

// Name returns the name of the solver
func (s *AutoSolver) Name() string {
	return "auto"
}

// Solve delegates on the number of customers
func (s *AutoSolver) Solve(ctx context.Context, g *Graph, capacity, maxStops int) (*Solution, error) {
	if len(g.Customers()) <= MaxExactCustomers {
		return s.exact.Solve(ctx, g, capacity, maxStops)
	}
	return s.savings.Solve(ctx, g, capacity, maxStops)
}
