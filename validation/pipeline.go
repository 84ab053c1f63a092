package validation

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"route-bench/graphdef"
	"route-bench/solverout"
	"route-bench/vrp"
)

// Summary counts what a validation run did
type Summary struct {
	Folders        int        `json:"folders"`
	SkippedFolders int        `json:"skipped_folders"`
	Files          int        `json:"files"`
	SkippedFiles   int        `json:"skipped_files"`
	Matches        int        `json:"matches"`
	Mismatches     int        `json:"mismatches"`
	Outcomes       []*Outcome `json:"outcomes"`
}

// Pipeline validates every folder below a root directory
type Pipeline struct {
	validator *Validator
	graphFile string
	logger    *log.Logger
}

// NewPipeline creates a pipeline that looks for graphFile in every folder
func NewPipeline(validator *Validator, graphFile string, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		validator: validator,
		graphFile: graphFile,
		logger:    logger,
	}
}

// Run processes the immediate subdirectories of root in name order and
// writes one report block per output file that states a cost and a route.
// A malformed graph or a solver failure stops the run.
func (p *Pipeline) Run(ctx context.Context, root string, report *ReportWriter) (*Summary, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		folderPath := filepath.Join(root, entry.Name())
		if info, err := os.Stat(folderPath); err != nil || !info.IsDir() {
			continue
		}

		if err := p.runFolder(ctx, folderPath, report, summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (p *Pipeline) runFolder(ctx context.Context, folderPath string, report *ReportWriter, summary *Summary) error {
	folder := filepath.Base(folderPath)
	graphPath := filepath.Join(folderPath, p.graphFile)
	if _, err := os.Stat(graphPath); err != nil {
		p.logger.Printf("Skipping folder %s: no %s", folder, p.graphFile)
		summary.SkippedFolders++
		return nil
	}

	p.logger.Printf("Processing folder: %s", folder)
	summary.Folders++
	if err := report.Folder(folder); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	def, err := graphdef.Load(graphPath)
	if err != nil {
		return err
	}

	outFiles, err := listOutputs(folderPath)
	if err != nil {
		return err
	}

	// the instance is the same for every file in the folder, so it is solved once
	var best *vrp.Solution
	for _, name := range outFiles {
		claimed, ok, err := solverout.ExtractFile(filepath.Join(folderPath, name))
		if err != nil {
			return err
		}
		if !ok {
			p.logger.Printf("Skipping file %s: no cost and route found", name)
			summary.SkippedFiles++
			continue
		}

		if best == nil {
			p.logger.Printf("Solving %s with %d edges", p.graphFile, len(def.Edges))
			best, err = p.validator.Solve(ctx, def)
			if err != nil {
				return fmt.Errorf("folder %s, file %s: %w", folder, name, err)
			}
		}

		outcome := Compare(claimed, best)
		outcome.Folder = folder
		outcome.File = name
		if err := report.Outcome(outcome); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		summary.Files++
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Match {
			summary.Matches++
		} else {
			summary.Mismatches++
			p.logger.Printf("Cost mismatch in %s/%s: claimed %d, best %d", folder, name, claimed.Cost, best.Cost)
		}
	}

	return nil
}

// listOutputs returns the sorted names of the .out files in dir
func listOutputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".out") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
