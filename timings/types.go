package timings

// Missing marks an execution time that could not be read, when padding
const Missing int64 = -1

// Variant is one algorithm implementation measured in every run
type Variant struct {
	Key   string
	Label string
}

// Variants in the positional order of the .out files in a run directory
var Variants = []Variant{
	{Key: "global_search", Label: "Global Search"},
	{Key: "heuristic", Label: "Heuristic"},
	{Key: "openmp", Label: "OpenMP"},
	{Key: "mpi_openmp", Label: "MPI + OpenMP"},
}

// ExtensionPolicy decides what a misnamed file in a run directory does
type ExtensionPolicy string

const (
	// ExtensionWarn logs the mismatch and reads the directory anyway
	ExtensionWarn ExtensionPolicy = "warn"
	// ExtensionEnforce logs the mismatch and skips the directory
	ExtensionEnforce ExtensionPolicy = "enforce"
)

// MissingPolicy decides what a run with an unreadable execution time does
type MissingPolicy string

const (
	// MissingDrop drops the whole run
	MissingDrop MissingPolicy = "drop"
	// MissingPad keeps the run and records Missing for the absent times
	MissingPad MissingPolicy = "pad"
)

// Run is one experiment directory: a node count and one time per variant
type Run struct {
	Dir   string
	Nodes int64
	Times [4]int64
}

// Collection holds the parallel time series. Index i of every series
// belongs to the same run.
type Collection struct {
	Nodes        []int64 `json:"nodes"`
	GlobalSearch []int64 `json:"global_search"`
	Heuristic    []int64 `json:"heuristic"`
	OpenMP       []int64 `json:"openmp"`
	MPIOpenMP    []int64 `json:"mpi_openmp"`
}

// Append adds a run to every series
func (c *Collection) Append(r Run) {
	c.Nodes = append(c.Nodes, r.Nodes)
	c.GlobalSearch = append(c.GlobalSearch, r.Times[0])
	c.Heuristic = append(c.Heuristic, r.Times[1])
	c.OpenMP = append(c.OpenMP, r.Times[2])
	c.MPIOpenMP = append(c.MPIOpenMP, r.Times[3])
}

// Len returns the number of runs collected
func (c *Collection) Len() int {
	return len(c.Nodes)
}

// Series returns a series by name, or nil
func (c *Collection) Series(name string) []int64 {
	switch name {
	case "nodes":
		return c.Nodes
	case "global_search":
		return c.GlobalSearch
	case "heuristic":
		return c.Heuristic
	case "openmp":
		return c.OpenMP
	case "mpi_openmp":
		return c.MPIOpenMP
	}
	return nil
}
