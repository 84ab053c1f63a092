package timings

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// runFileCount is the number of files in a run directory: one .txt
// description followed by one .out per variant
const runFileCount = 5

// Options control how strictly run directories are read
type Options struct {
	ExtensionCheck ExtensionPolicy
	MissingTime    MissingPolicy
}

// Scanner walks an experiment tree and collects execution times
type Scanner struct {
	opts   Options
	logger *log.Logger
}

// NewScanner creates a new scanner
func NewScanner(opts Options, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	if opts.ExtensionCheck == "" {
		opts.ExtensionCheck = ExtensionWarn
	}
	if opts.MissingTime == "" {
		opts.MissingTime = MissingDrop
	}
	return &Scanner{opts: opts, logger: logger}
}

// Scan visits root and every directory below it, in lexical order
func (s *Scanner) Scan(root string) (*Collection, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to access experiment root %s: %w", root, err)
	}

	collection := &Collection{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Printf("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		files, err := listFiles(path)
		if err != nil {
			s.logger.Printf("Skipping directory: %s, %v", path, err)
			return nil
		}
		if len(files) != runFileCount {
			s.logger.Printf("Skipping directory: %s, does not contain exactly %d files", path, runFileCount)
			return nil
		}

		if run, ok := s.scanRun(path, files); ok {
			collection.Append(*run)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return collection, nil
}

// scanRun reads one qualifying directory. files must be sorted.
func (s *Scanner) scanRun(dir string, files []string) (*Run, bool) {
	s.logger.Printf("Processing directory: %s", dir)

	nodes, ok := NodeCount(dir)
	if !ok {
		s.logger.Printf("No match for nodes in directory name: %s", dir)
		return nil, false
	}
	s.logger.Printf("Number of nodes: %d", nodes)

	if !s.checkExtensions(files) && s.opts.ExtensionCheck == ExtensionEnforce {
		s.logger.Printf("Skipping directory: %s, files are not in the expected order", dir)
		return nil, false
	}

	run := &Run{Dir: dir, Nodes: nodes}
	complete := true
	for i, name := range files[1:] {
		s.logger.Printf("Processing file: %s", name)
		ms, found := s.readTime(filepath.Join(dir, name))
		if !found {
			complete = false
			run.Times[i] = Missing
			continue
		}
		s.logger.Printf("Found execution time: %d ms in file: %s", ms, name)
		run.Times[i] = ms
	}

	if !complete && s.opts.MissingTime == MissingDrop {
		s.logger.Printf("Dropping run %s: execution time missing", dir)
		return nil, false
	}
	return run, true
}

// checkExtensions reports whether files are one .txt followed by .out files.
// Only the first mismatch is logged.
func (s *Scanner) checkExtensions(files []string) bool {
	for i, name := range files {
		if i == 0 {
			if !strings.HasSuffix(name, ".txt") {
				s.logger.Printf("Expected .txt file but found: %s", name)
				return false
			}
			continue
		}
		if !strings.HasSuffix(name, ".out") {
			s.logger.Printf("Expected .out file but found: %s", name)
			return false
		}
	}
	return true
}

func (s *Scanner) readTime(path string) (int64, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".out") {
		return 0, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Printf("Failed to read %s: %v", path, err)
		return 0, false
	}

	ms, ok := ParseExecutionTime(string(data))
	if !ok {
		s.logger.Printf("No execution time found in file: %s", name)
	}
	return ms, ok
}

// listFiles returns the sorted names of the non-directory entries of dir
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
