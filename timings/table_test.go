package timings

import (
	"strings"
	"testing"
)

func TestBuildTable_StableSort(t *testing.T) {
	c := &Collection{}
	c.Append(Run{Nodes: 30, Times: [4]int64{3, 3, 3, 3}})
	c.Append(Run{Nodes: 10, Times: [4]int64{1, 1, 1, 1}})
	c.Append(Run{Nodes: 30, Times: [4]int64{4, 4, 4, 4}})
	c.Append(Run{Nodes: 20, Times: [4]int64{2, 2, 2, 2}})

	table, err := BuildTable(c)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}

	wantNodes := []int64{10, 20, 30, 30}
	wantGlobal := []int64{1, 2, 3, 4}
	for i, row := range table.Rows {
		if row.Nodes != wantNodes[i] || row.GlobalSearch != wantGlobal[i] {
			t.Errorf("Row %d = %+v, expected nodes %d global %d", i, row, wantNodes[i], wantGlobal[i])
		}
	}
}

func TestBuildTable_Empty(t *testing.T) {
	table, err := BuildTable(&Collection{})
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(table.Rows))
	}
}

func TestBuildTable_MisalignedSeries(t *testing.T) {
	c := &Collection{
		Nodes:        []int64{10, 20},
		GlobalSearch: []int64{1, 2},
		Heuristic:    []int64{1},
		OpenMP:       []int64{1, 2},
		MPIOpenMP:    []int64{1, 2},
	}

	_, err := BuildTable(c)
	if err == nil {
		t.Fatal("Expected error for misaligned series")
	}
	if !strings.Contains(err.Error(), "series heuristic has 1 values, nodes has 2") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRowTime(t *testing.T) {
	row := Row{Nodes: 5, GlobalSearch: 1, Heuristic: 2, OpenMP: 3, MPIOpenMP: 4}
	for i, v := range Variants {
		if got := row.Time(v.Key); got != int64(i+1) {
			t.Errorf("Time(%s) = %d, expected %d", v.Key, got, i+1)
		}
	}
	if got := row.Time("cuda"); got != Missing {
		t.Errorf("Time(cuda) = %d, expected %d", got, Missing)
	}
}

func TestTable_WriteCSV(t *testing.T) {
	table := &Table{Rows: []Row{
		{Nodes: 10, GlobalSearch: 100, Heuristic: 10, OpenMP: 40, MPIOpenMP: 20},
		{Nodes: 20, GlobalSearch: 200, Heuristic: 20, OpenMP: Missing, MPIOpenMP: 40},
	}}

	var b strings.Builder
	if err := table.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "nodes,global_search,heuristic,openmp,mpi_openmp\n" +
		"10,100,10,40,20\n" +
		"20,200,20,-1,40\n"
	if b.String() != want {
		t.Errorf("WriteCSV() =\n%s\nexpected\n%s", b.String(), want)
	}
}
