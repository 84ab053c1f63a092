package chart

import (
	"fmt"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"route-bench/timings"
)

// DefaultFile is where the comparison chart is written
const DefaultFile = "execution_times_comparison.png"

// Renderer draws the execution time comparison chart
type Renderer struct {
	width  vg.Length
	height vg.Length
	logger *log.Logger
}

// NewRenderer creates a renderer for a 12x8 inch figure
func NewRenderer(logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		width:  12 * vg.Inch,
		height: 8 * vg.Inch,
		logger: logger,
	}
}

// Render plots one line per variant against the node count and saves the
// figure to path, replacing any existing file. The format follows the
// extension of path.
func (r *Renderer) Render(table *timings.Table, path string) error {
	r.logger.Printf("Generating graphs...")

	p := plot.New()
	p.Title.Text = "Execution Time vs. Number of Nodes"
	p.X.Label.Text = "Number of Nodes"
	p.Y.Label.Text = "Execution Time (ms)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	var lines []interface{}
	for _, v := range timings.Variants {
		lines = append(lines, v.Label, points(table, v.Key))
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("failed to add series: %w", err)
	}

	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}

	r.logger.Printf("Graphs generated and saved to %s", path)
	return nil
}

// points returns the (nodes, time) pairs of a variant; padded entries are left out
func points(table *timings.Table, key string) plotter.XYs {
	pts := make(plotter.XYs, 0, len(table.Rows))
	for _, row := range table.Rows {
		ms := row.Time(key)
		if ms == timings.Missing {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(row.Nodes), Y: float64(ms)})
	}
	return pts
}
