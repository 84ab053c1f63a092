package vrp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrNoSource   = errors.New("graph has no edge leaving the depot")
	ErrNoSink     = errors.New("graph has no edge entering the depot")
	ErrInfeasible = errors.New("no feasible set of routes")
	ErrTooLarge   = errors.New("instance too large for this solver")
)

// Route is one vehicle tour, from Source to Sink
type Route struct {
	Nodes []int64 `json:"nodes"`
	Cost  int     `json:"cost"`
	Load  int     `json:"load"`
}

// Solution is a partition of the customers into routes
type Solution struct {
	Routes []Route `json:"routes"`
	Cost   int     `json:"cost"`
}

// Solver computes a minimum cost set of routes that visits every customer once,
// with at most capacity units of demand and maxStops customers per route
type Solver interface {
	Name() string
	Solve(ctx context.Context, g *Graph, capacity, maxStops int) (*Solution, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Solver)
)

// Register adds a solver factory under name
func Register(name string, factory func() Solver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New creates a registered solver by name
func New(name string) (Solver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("solver %s not found", name)
	}
	return factory(), nil
}

// Registered returns all registered solver names, sorted
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkInstance rejects instances no solver can handle and returns the customers
func checkInstance(g *Graph, capacity, maxStops int) ([]int64, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be greater than 0, got %d", capacity)
	}
	if maxStops <= 0 {
		return nil, fmt.Errorf("max stops must be greater than 0, got %d", maxStops)
	}
	if !g.HasSource() {
		return nil, ErrNoSource
	}
	if !g.HasSink() {
		return nil, ErrNoSink
	}

	customers := g.Customers()
	for _, c := range customers {
		if d := g.Demand(c); d > capacity {
			return nil, fmt.Errorf("%w: demand %d of node %d exceeds capacity %d", ErrInfeasible, d, c, capacity)
		}
	}
	return customers, nil
}

// newRoute closes a customer sequence into a Source..Sink route
func newRoute(g *Graph, customers []int64) (Route, bool) {
	nodes := make([]int64, 0, len(customers)+2)
	nodes = append(nodes, SourceID)
	nodes = append(nodes, customers...)
	nodes = append(nodes, SinkID)

	r := Route{Nodes: nodes}
	for i := 0; i+1 < len(nodes); i++ {
		w, ok := g.Cost(nodes[i], nodes[i+1])
		if !ok {
			return Route{}, false
		}
		r.Cost += w
	}
	for _, c := range customers {
		r.Load += g.Demand(c)
	}
	return r, true
}

// String renders the routes as a numbered mapping, for example
// {1: ['Source', 1, 2, 'Sink'], 2: ['Source', 3, 'Sink']}
func (s *Solution) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, r := range s.Routes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(": ")
		b.WriteString(r.String())
	}
	b.WriteString("}")
	return b.String()
}

func (r Route) String() string {
	parts := make([]string, len(r.Nodes))
	for i, id := range r.Nodes {
		parts[i] = nodeLabel(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func nodeLabel(id int64) string {
	switch id {
	case SourceID:
		return "'Source'"
	case SinkID:
		return "'Sink'"
	default:
		return strconv.FormatInt(id, 10)
	}
}
