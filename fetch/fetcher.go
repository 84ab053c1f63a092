package fetch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"route-bench/envinfo"
	"route-bench/ssh"
)

// RemoteFS is the part of an SSH client the fetcher needs
type RemoteFS interface {
	Execute(ctx context.Context, command string) (string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Result describes a completed mirror
type Result struct {
	RemoteDir string        `json:"remote_dir"`
	LocalDir  string        `json:"local_dir"`
	Files     []string      `json:"files"`
	Bytes     int64         `json:"bytes"`
	Duration  time.Duration `json:"duration"`
}

// Fetcher copies an experiment tree from the cluster head node
type Fetcher struct {
	remote RemoteFS
	logger *log.Logger
}

// NewFetcher creates a fetcher reading through remote
func NewFetcher(remote RemoteFS, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		remote: remote,
		logger: logger,
	}
}

// Mirror copies every regular file below remoteDir into localDir, keeping
// the relative layout. Existing local files are overwritten.
func (f *Fetcher) Mirror(ctx context.Context, remoteDir, localDir string) (*Result, error) {
	startTime := time.Now()
	remoteDir = path.Clean(remoteDir)

	files, err := f.list(ctx, remoteDir)
	if err != nil {
		return nil, err
	}
	f.logger.Printf("Found %d files under %s", len(files), remoteDir)

	result := &Result{RemoteDir: remoteDir, LocalDir: localDir}
	for i, remotePath := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel, err := relative(remoteDir, remotePath)
		if err != nil {
			return result, err
		}

		data, err := f.remote.ReadFile(ctx, remotePath)
		if err != nil {
			return result, fmt.Errorf("failed to read %s: %w", remotePath, err)
		}

		localPath := filepath.Join(localDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
			return result, fmt.Errorf("failed to create directory for %s: %w", localPath, err)
		}
		if err := os.WriteFile(localPath, data, 0644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", localPath, err)
		}

		f.logger.Printf("  [%d/%d] %s (%d bytes)", i+1, len(files), rel, len(data))
		result.Files = append(result.Files, rel)
		result.Bytes += int64(len(data))
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// SaveEnvironment collects environment information and writes it as JSON
func (f *Fetcher) SaveEnvironment(ctx context.Context, collector *envinfo.Collector, filename string) (*envinfo.EnvironmentInfo, error) {
	env, err := collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	data, err := env.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode environment info: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write environment file %s: %w", filename, err)
	}

	f.logger.Printf("Environment information saved to %s", filename)
	return env, nil
}

func (f *Fetcher) list(ctx context.Context, remoteDir string) ([]string, error) {
	output, err := f.remote.Execute(ctx, "find "+ssh.Quote(remoteDir)+" -type f")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", remoteDir, err)
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files, nil
}

// relative returns remotePath relative to remoteDir in slash form
func relative(remoteDir, remotePath string) (string, error) {
	rel := strings.TrimPrefix(path.Clean(remotePath), remoteDir+"/")
	if rel == remotePath || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", fmt.Errorf("remote file %s is outside %s", remotePath, remoteDir)
	}
	return rel, nil
}
