package vrp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"route-bench/graphdef"
)

// The depot is split in two: routes leave from Source and end at Sink.
const (
	SourceID int64 = -1
	SinkID   int64 = -2
)

// Graph is the directed, demand-weighted graph handed to a Solver
type Graph struct {
	g       *simple.WeightedDirectedGraph
	demands map[int64]int
}

// NewGraph builds the solver graph from a demand map and an edge list.
// Id 0 becomes Source when it is an origin and Sink when it is a destination.
// Demands of ids that do not appear in any edge are ignored.
func NewGraph(demands map[int]int, edges []graphdef.Edge) *Graph {
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))

	for _, e := range edges {
		from, to := int64(e.Origin), int64(e.Destination)
		if from == 0 {
			from = SourceID
		}
		if to == 0 {
			to = SinkID
		}
		if from == to {
			continue
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(from), simple.Node(to), float64(e.Weight)))
	}

	nodeDemands := make(map[int64]int)
	for id, demand := range demands {
		if g.Node(int64(id)) != nil && id != 0 {
			nodeDemands[int64(id)] = demand
		}
	}

	return &Graph{g: g, demands: nodeDemands}
}

// HasSource reports whether any edge leaves the depot
func (g *Graph) HasSource() bool {
	return g.g.Node(SourceID) != nil
}

// HasSink reports whether any edge enters the depot
func (g *Graph) HasSink() bool {
	return g.g.Node(SinkID) != nil
}

// Customers returns every node id except Source and Sink, ascending
func (g *Graph) Customers() []int64 {
	var ids []int64
	nodes := g.g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		if id != SourceID && id != SinkID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Demand returns the demand of a node, 0 when none was given
func (g *Graph) Demand(id int64) int {
	return g.demands[id]
}

// Cost returns the weight of the edge from -> to
func (g *Graph) Cost(from, to int64) (int, bool) {
	w, ok := g.g.Weight(from, to)
	if !ok || from == to {
		return 0, false
	}
	return int(math.Round(w)), true
}

// Successors returns the heads of the edges leaving id, ascending
func (g *Graph) Successors(id int64) []int64 {
	var ids []int64
	nodes := g.g.From(id)
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeCount returns the number of edges after the depot split
func (g *Graph) EdgeCount() int {
	return g.g.Edges().Len()
}
