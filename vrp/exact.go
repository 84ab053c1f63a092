package vrp

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// MaxExactCustomers bounds the set partitioning table at 2^20 entries
const MaxExactCustomers = 20

func init() {
	Register("exact", func() Solver {
		return NewExactSolver()
	})
}

// ExactSolver enumerates every feasible route and picks the cheapest
// partition of the customers among them
type ExactSolver struct{}

// NewExactSolver creates a new exact solver
func NewExactSolver() *ExactSolver {
	return &ExactSolver{}
}

// Name returns the name of the solver
func (s *ExactSolver) Name() string {
	return "exact"
}

// candidate is the cheapest route found for one set of customers
type candidate struct {
	mask      uint32
	cost      int
	customers []int64
}

// Solve finds an optimal solution
func (s *ExactSolver) Solve(ctx context.Context, g *Graph, capacity, maxStops int) (*Solution, error) {
	customers, err := checkInstance(g, capacity, maxStops)
	if err != nil {
		return nil, err
	}
	if len(customers) > MaxExactCustomers {
		return nil, fmt.Errorf("%w: %d customers, exact solver handles at most %d", ErrTooLarge, len(customers), MaxExactCustomers)
	}
	if len(customers) == 0 {
		return &Solution{}, nil
	}

	cands, err := s.enumerateRoutes(ctx, g, customers, capacity, maxStops)
	if err != nil {
		return nil, err
	}

	chosen, err := s.partition(ctx, len(customers), cands)
	if err != nil {
		return nil, err
	}

	sol := &Solution{}
	for _, c := range chosen {
		route, _ := newRoute(g, c.customers)
		sol.Routes = append(sol.Routes, route)
		sol.Cost += route.Cost
	}
	return sol, nil
}

// enumerateRoutes walks every elementary Source..Sink path within the limits
// and keeps the cheapest one per customer set. Ties keep the first path found.
func (s *ExactSolver) enumerateRoutes(ctx context.Context, g *Graph, customers []int64, capacity, maxStops int) ([]candidate, error) {
	bit := make(map[int64]uint32, len(customers))
	for i, c := range customers {
		bit[c] = 1 << uint(i)
	}

	successors := make(map[int64][]int64, len(customers)+1)
	successors[SourceID] = g.Successors(SourceID)
	for _, c := range customers {
		successors[c] = g.Successors(c)
	}

	best := make(map[uint32]candidate)
	path := make([]int64, 0, maxStops)
	steps := 0

	var walk func(node int64, mask uint32, load, cost int) error
	walk = func(node int64, mask uint32, load, cost int) error {
		steps++
		if steps%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		for _, next := range successors[node] {
			w, _ := g.Cost(node, next)
			if next == SinkID {
				if node == SourceID {
					continue
				}
				total := cost + w
				if prev, ok := best[mask]; !ok || total < prev.cost {
					best[mask] = candidate{mask: mask, cost: total, customers: append([]int64(nil), path...)}
				}
				continue
			}

			b, ok := bit[next]
			if !ok || mask&b != 0 {
				continue
			}
			if len(path)+1 > maxStops || load+g.Demand(next) > capacity {
				continue
			}

			path = append(path, next)
			if err := walk(next, mask|b, load+g.Demand(next), cost+w); err != nil {
				return err
			}
			path = path[:len(path)-1]
		}
		return nil
	}

	if err := walk(SourceID, 0, 0, 0); err != nil {
		return nil, err
	}

	cands := make([]candidate, 0, len(best))
	for _, c := range best {
		cands = append(cands, c)
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].mask < cands[j].mask })
	return cands, nil
}

// partition solves the set partitioning problem over the candidates.
// dp[mask] is the cheapest cover of exactly the customers in mask.
func (s *ExactSolver) partition(ctx context.Context, n int, cands []candidate) ([]candidate, error) {
	byLowest := make([][]int, n)
	for i, c := range cands {
		low := bits.TrailingZeros32(c.mask)
		byLowest[low] = append(byLowest[low], i)
	}

	full := uint32(1)<<uint(n) - 1
	dp := make([]int, full+1)
	choice := make([]int32, full+1)
	for i := range dp {
		dp[i] = math.MaxInt
		choice[i] = -1
	}
	dp[0] = 0

	for mask := uint32(0); mask < full; mask++ {
		if mask%65536 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if dp[mask] == math.MaxInt {
			continue
		}
		// the lowest uncovered customer must be the lowest customer of the next route
		low := bits.TrailingZeros32(^mask)
		for _, idx := range byLowest[low] {
			c := cands[idx]
			if c.mask&mask != 0 {
				continue
			}
			next := mask | c.mask
			if v := dp[mask] + c.cost; v < dp[next] {
				dp[next] = v
				choice[next] = int32(idx)
			}
		}
	}

	if dp[full] == math.MaxInt {
		return nil, ErrInfeasible
	}

	var chosen []candidate
	for mask := full; mask != 0; {
		c := cands[choice[mask]]
		chosen = append(chosen, c)
		mask ^= c.mask
	}
	// reconstruction runs backwards; routes are reported by lowest customer
	for i, j := 0, len(chosen)-1; i < j; i, j = i+1, j-1 {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	}
	return chosen, nil
}
