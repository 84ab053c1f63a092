package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-bench/envinfo"
)

type fakeRemote struct {
	files    map[string]string
	commands []string
	listing  string
}

func (f *fakeRemote) Execute(ctx context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if command == "find '/scratch/vrp' -type f" {
		return f.listing, nil
	}
	switch command {
	case "hostname":
		return "head01\n", nil
	case "uname -r":
		return "5.14.0\n", nil
	case "uname -m":
		return "x86_64\n", nil
	}
	return "", fmt.Errorf("unexpected command %q", command)
}

func (f *fakeRemote) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return []byte(content), nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newRemote() *fakeRemote {
	return &fakeRemote{
		files: map[string]string{
			"/scratch/vrp/5nos/grafo.txt":     "2\n1 3\n1\n0 1 4\n",
			"/scratch/vrp/5nos/slurm-101.out": "Menor custo encontrado: 8\n",
			"/scratch/vrp/summary.txt":        "done\n",
		},
		listing: "/scratch/vrp/summary.txt\n/scratch/vrp/5nos/slurm-101.out\n/scratch/vrp/5nos/grafo.txt\n",
	}
}

func TestFetcher_Mirror(t *testing.T) {
	remote := newRemote()
	localDir := t.TempDir()

	result, err := NewFetcher(remote, quietLogger()).Mirror(context.Background(), "/scratch/vrp/", localDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"5nos/grafo.txt", "5nos/slurm-101.out", "summary.txt"}, result.Files)
	assert.Equal(t, "/scratch/vrp", result.RemoteDir)
	assert.EqualValues(t, len("2\n1 3\n1\n0 1 4\n")+len("Menor custo encontrado: 8\n")+len("done\n"), result.Bytes)

	data, err := os.ReadFile(filepath.Join(localDir, "5nos", "slurm-101.out"))
	require.NoError(t, err)
	assert.Equal(t, "Menor custo encontrado: 8\n", string(data))
}

func TestFetcher_MirrorReadFailure(t *testing.T) {
	remote := newRemote()
	delete(remote.files, "/scratch/vrp/summary.txt")

	_, err := NewFetcher(remote, quietLogger()).Mirror(context.Background(), "/scratch/vrp", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read /scratch/vrp/summary.txt")
}

func TestFetcher_MirrorRejectsOutsidePaths(t *testing.T) {
	remote := newRemote()
	remote.listing = "/etc/passwd\n"

	_, err := NewFetcher(remote, quietLogger()).Mirror(context.Background(), "/scratch/vrp", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")
}

func TestFetcher_MirrorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(newRemote(), quietLogger()).Mirror(ctx, "/scratch/vrp", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_SaveEnvironment(t *testing.T) {
	remote := newRemote()
	filename := filepath.Join(t.TempDir(), "env", "cluster_environment.json")
	collector := envinfo.NewCollector(remote, "cluster.example.org", quietLogger())

	env, err := NewFetcher(remote, quietLogger()).SaveEnvironment(context.Background(), collector, filename)
	require.NoError(t, err)
	assert.Equal(t, "head01", env.Hostname)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var decoded envinfo.EnvironmentInfo
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cluster.example.org", decoded.SSHHost)
	assert.True(t, decoded.Remote)
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"nested", "/data/a/b.out", "a/b.out", false},
		{"direct", "/data/b.out", "b.out", false},
		{"sibling prefix", "/database/b.out", "", true},
		{"parent", "/data/../etc/passwd", "", true},
		{"the root itself", "/data", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := relative("/data", tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
