package steps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var edgePattern = regexp.MustCompile(`^Step (\w+) must be finished before step (\w+) can begin\.$`)

// ParseLine extracts one dependency edge from an input line
func ParseLine(line string) (before, after StepID, err error) {
	m := edgePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, 0, ErrMalformedLine
	}

	ids := make([]StepID, 2)
	for i, raw := range m[1:] {
		if len(raw) != 1 || !StepID(raw[0]).Valid() {
			return 0, 0, ErrUnsupportedStep
		}
		ids[i] = StepID(raw[0])
	}
	return ids[0], ids[1], nil
}

// Parse builds a graph from "Step X must be finished before step Y can begin."
// lines. Blank lines are skipped; any other line that does not match is fatal.
func Parse(r io.Reader) (*Graph, error) {
	g := NewGraph()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		before, after, err := ParseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Cause: err}
		}
		if err := g.AddEdge(before, after); err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Cause: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	return g, nil
}

// ParseFile opens path and parses it with Parse
func ParseFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
