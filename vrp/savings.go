package vrp

import (
	"context"
	"fmt"
	"sort"
)

func init() {
	Register("savings", func() Solver {
		return NewSavingsSolver()
	})
}

// SavingsSolver is the Clarke-Wright savings heuristic on a directed graph:
// every customer starts on its own Source-c-Sink route, and routes are joined
// tail to head in decreasing order of saving while capacity and stops allow.
type SavingsSolver struct{}

// NewSavingsSolver creates a new savings solver
func NewSavingsSolver() *SavingsSolver {
	return &SavingsSolver{}
}

// Name returns the name of the solver
func (s *SavingsSolver) Name() string {
	return "savings"
}

type saving struct {
	from, to int64
	value    int
}

type tour struct {
	customers []int64
	load      int
}

// Solve builds an approximate solution
func (s *SavingsSolver) Solve(ctx context.Context, g *Graph, capacity, maxStops int) (*Solution, error) {
	customers, err := checkInstance(g, capacity, maxStops)
	if err != nil {
		return nil, err
	}

	tours := make(map[int64]*tour, len(customers))
	for _, c := range customers {
		if _, ok := g.Cost(SourceID, c); !ok {
			return nil, fmt.Errorf("%w: node %d is not reachable from the depot", ErrInfeasible, c)
		}
		if _, ok := g.Cost(c, SinkID); !ok {
			return nil, fmt.Errorf("%w: node %d has no edge back to the depot", ErrInfeasible, c)
		}
		tours[c] = &tour{customers: []int64{c}, load: g.Demand(c)}
	}

	var savings []saving
	for _, i := range customers {
		for _, j := range g.Successors(i) {
			if j == SinkID {
				continue
			}
			cij, _ := g.Cost(i, j)
			toSink, _ := g.Cost(i, SinkID)
			fromSource, _ := g.Cost(SourceID, j)
			if v := toSink + fromSource - cij; v > 0 {
				savings = append(savings, saving{from: i, to: j, value: v})
			}
		}
	}
	sort.SliceStable(savings, func(a, b int) bool {
		if savings[a].value != savings[b].value {
			return savings[a].value > savings[b].value
		}
		if savings[a].from != savings[b].from {
			return savings[a].from < savings[b].from
		}
		return savings[a].to < savings[b].to
	})

	for _, sv := range savings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		left, right := tours[sv.from], tours[sv.to]
		if left == right {
			continue
		}
		if left.customers[len(left.customers)-1] != sv.from || right.customers[0] != sv.to {
			continue
		}
		if left.load+right.load > capacity || len(left.customers)+len(right.customers) > maxStops {
			continue
		}

		left.customers = append(left.customers, right.customers...)
		left.load += right.load
		for _, c := range right.customers {
			tours[c] = left
		}
	}

	seen := make(map[*tour]bool)
	var ordered []*tour
	for _, c := range customers {
		t := tours[c]
		if !seen[t] {
			seen[t] = true
			ordered = append(ordered, t)
		}
	}

	sol := &Solution{}
	for _, t := range ordered {
		route, ok := newRoute(g, t.customers)
		if !ok {
			return nil, fmt.Errorf("%w: broken route %v", ErrInfeasible, t.customers)
		}
		sol.Routes = append(sol.Routes, route)
		sol.Cost += route.Cost
	}
	return sol, nil
}
