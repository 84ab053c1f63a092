package chart

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"route-bench/timings"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleTable() *timings.Table {
	return &timings.Table{Rows: []timings.Row{
		{Nodes: 5, GlobalSearch: 40, Heuristic: 2, OpenMP: 15, MPIOpenMP: 12},
		{Nodes: 8, GlobalSearch: 900, Heuristic: 3, OpenMP: 260, MPIOpenMP: 140},
		{Nodes: 10, GlobalSearch: 12000, Heuristic: 5, OpenMP: timings.Missing, MPIOpenMP: 2100},
	}}
}

func TestRenderer_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	r := NewRenderer(log.New(io.Discard, "", 0))
	if err := r.Render(sampleTable(), path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read chart: %v", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		t.Errorf("Expected a PNG file, got %d bytes starting with %q", len(data), data[:min(len(data), 8)])
	}
}

func TestRenderer_RenderEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	r := NewRenderer(log.New(io.Discard, "", 0))
	if err := r.Render(&timings.Table{}, path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected chart file: %v", err)
	}
}

func TestPoints_SkipsPadding(t *testing.T) {
	pts := points(sampleTable(), "openmp")
	if len(pts) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(pts))
	}
	if pts[1].X != 8 || pts[1].Y != 260 {
		t.Errorf("Unexpected point %+v", pts[1])
	}
}

func TestDisplay_NoDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display detection is only environment based on linux")
	}
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	if err := Display("chart.png"); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Display() error = %v, expected ErrNoDisplay", err)
	}
}
