package timings

import (
	"regexp"
	"strconv"
)

var (
	nodesRegex         = regexp.MustCompile(`(\d+)nos`)
	executionTimeRegex = regexp.MustCompile(`(?:Tempo total de execução|Total execution time): (\d+) ms`)
)

// NodeCount extracts the node count from the first "<n>nos" in a path
func NodeCount(path string) (int64, bool) {
	matches := nodesRegex.FindStringSubmatch(path)
	if len(matches) < 2 {
		return 0, false
	}
	n, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseExecutionTime extracts the total execution time in milliseconds
func ParseExecutionTime(content string) (int64, bool) {
	matches := executionTimeRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return 0, false
	}
	ms, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
