package timings

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Row is one run in the table
type Row struct {
	Nodes        int64 `json:"nodes"`
	GlobalSearch int64 `json:"global_search"`
	Heuristic    int64 `json:"heuristic"`
	OpenMP       int64 `json:"openmp"`
	MPIOpenMP    int64 `json:"mpi_openmp"`
}

// Time returns the execution time of a variant by key
func (r Row) Time(key string) int64 {
	switch key {
	case "global_search":
		return r.GlobalSearch
	case "heuristic":
		return r.Heuristic
	case "openmp":
		return r.OpenMP
	case "mpi_openmp":
		return r.MPIOpenMP
	}
	return Missing
}

// Table is the collection laid out as rows, ascending by node count
type Table struct {
	Rows []Row `json:"rows"`
}

// BuildTable aligns the series into rows and stable sorts them by node count.
// Repeated node counts are kept in collection order.
func BuildTable(c *Collection) (*Table, error) {
	n := c.Len()
	for _, v := range Variants {
		if got := len(c.Series(v.Key)); got != n {
			return nil, fmt.Errorf("series %s has %d values, nodes has %d", v.Key, got, n)
		}
	}

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{
			Nodes:        c.Nodes[i],
			GlobalSearch: c.GlobalSearch[i],
			Heuristic:    c.Heuristic[i],
			OpenMP:       c.OpenMP[i],
			MPIOpenMP:    c.MPIOpenMP[i],
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Nodes < rows[j].Nodes })

	return &Table{Rows: rows}, nil
}

// Columns returns the table header in series order
func Columns() []string {
	cols := []string{"nodes"}
	for _, v := range Variants {
		cols = append(cols, v.Key)
	}
	return cols
}

// WriteCSV writes the table with a header line
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return err
	}
	for _, r := range t.Rows {
		record := []string{strconv.FormatInt(r.Nodes, 10)}
		for _, v := range Variants {
			record = append(record, strconv.FormatInt(r.Time(v.Key), 10))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
