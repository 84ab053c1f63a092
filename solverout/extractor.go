package solverout

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Both labels are kept in Portuguese and in English, for the exact search
// and for the heuristic ("approximate") programs.
var (
	costRegex  = regexp.MustCompile(`(?:Menor custo encontrado|Custo da rota|Best cost found|Route cost): (\d+)`)
	routeRegex = regexp.MustCompile(`(?:Rota (?:de menor custo|aproximada de menor custo)|(?:Lowest-cost route|Approximate lowest-cost route)): ([\d\s]+)`)
)

// Claimed is the cost and visiting order an algorithm reported
type Claimed struct {
	Cost  int   `json:"cost"`
	Route []int `json:"route"`
}

// Extract looks for the cost and route lines in a solver output.
// It reports false unless both are present.
func Extract(content string) (*Claimed, bool) {
	costMatch := costRegex.FindStringSubmatch(content)
	routeMatch := routeRegex.FindStringSubmatch(content)
	if costMatch == nil || routeMatch == nil {
		return nil, false
	}

	cost, err := strconv.Atoi(costMatch[1])
	if err != nil {
		return nil, false
	}

	fields := strings.Fields(routeMatch[1])
	route := make([]int, 0, len(fields))
	for _, field := range fields {
		node, err := strconv.Atoi(field)
		if err != nil {
			return nil, false
		}
		route = append(route, node)
	}

	return &Claimed{Cost: cost, Route: route}, true
}

// ExtractFile reads a solver output file and extracts the claimed result
func ExtractFile(path string) (*Claimed, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read output file %s: %w", path, err)
	}
	claimed, ok := Extract(string(data))
	return claimed, ok, nil
}

// RouteString renders the route as a bracketed, comma separated list
func (c *Claimed) RouteString() string {
	parts := make([]string, len(c.Route))
	for i, node := range c.Route {
		parts[i] = strconv.Itoa(node)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
