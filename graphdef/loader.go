package graphdef

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrFormat is returned for any malformed graph definition
var ErrFormat = errors.New("malformed graph definition")

// Edge is a weighted directed edge between two node ids
type Edge struct {
	Origin      int
	Destination int
	Weight      int
}

// Definition holds the demand of every customer and the edge list.
// Node id 0 is the depot.
type Definition struct {
	Demands map[int]int
	Edges   []Edge
}

// Load reads a graph definition file
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file %s: %w", path, err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse reads a graph definition:
//
//	N
//	<id> <demand>                  (N-1 lines)
//	K
//	<origin> <destination> <weight> (K lines)
//
// The first line counts the depot too, so only N-1 demand records follow.
// Lines after the K-th edge are ignored.
func Parse(r io.Reader) (*Definition, error) {
	p := &lineParser{scanner: bufio.NewScanner(r)}

	n, err := p.ints(1)
	if err != nil {
		return nil, err
	}

	def := &Definition{Demands: make(map[int]int)}
	for i := 0; i < n[0]-1; i++ {
		fields, err := p.ints(2)
		if err != nil {
			return nil, err
		}
		def.Demands[fields[0]] = fields[1]
	}

	k, err := p.ints(1)
	if err != nil {
		return nil, err
	}

	def.Edges = make([]Edge, 0, max(k[0], 0))
	for i := 0; i < k[0]; i++ {
		fields, err := p.ints(3)
		if err != nil {
			return nil, err
		}
		def.Edges = append(def.Edges, Edge{Origin: fields[0], Destination: fields[1], Weight: fields[2]})
	}

	return def, nil
}

// NodeCount returns the number of distinct node ids referenced by the edges
func (d *Definition) NodeCount() int {
	seen := make(map[int]struct{})
	for _, e := range d.Edges {
		seen[e.Origin] = struct{}{}
		seen[e.Destination] = struct{}{}
	}
	return len(seen)
}

type lineParser struct {
	scanner *bufio.Scanner
	line    int
}

// ints reads the next line and parses its first want fields as integers
func (p *lineParser) ints(want int) ([]int, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", p.line+1, err)
		}
		return nil, fmt.Errorf("%w: line %d: unexpected end of file", ErrFormat, p.line+1)
	}
	p.line++

	fields := strings.Fields(p.scanner.Text())
	if len(fields) < want {
		return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrFormat, p.line, want, len(fields))
	}

	values := make([]int, want)
	for i := 0; i < want; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not an integer", ErrFormat, p.line, fields[i])
		}
		values[i] = v
	}
	return values, nil
}
