package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ritzau/lockgraph/pkg/model"
)

// Parse reads Depsfile contents: one `requires <Module> [<minVersion>]`
// directive per line, `#` starts a comment, blank lines are ignored.
// Declaration order is preserved; callers rely on it for deterministic
// reporting.
func Parse(r *bufio.Scanner) ([]model.Requirement, error) {
	var declared []model.Requirement
	lineNo := 0

	for r.Scan() {
		lineNo++
		line := r.Text()

		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != "requires" {
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
		switch len(fields) {
		case 2:
			declared = append(declared, model.Requirement{Module: fields[1]})
		case 3:
			declared = append(declared, model.Requirement{Module: fields[1], Minimum: fields[2]})
		default:
			return nil, fmt.Errorf("line %d: want `requires <module> [<version>]`, got %q", lineNo, line)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return declared, nil
}

// Load reads the Depsfile at path. A missing manifest is not an error; it
// yields an empty declaration list, matching a project with no direct
// dependencies.
func Load(path string) ([]model.Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	declared, err := Parse(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return declared, nil
}
