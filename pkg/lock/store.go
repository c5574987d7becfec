package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ritzau/lockgraph/pkg/logging"
	"github.com/ritzau/lockgraph/pkg/model"
)

// ErrNotFound indicates the lock file does not exist at the requested path.
// Callers typically recover by treating the graph as empty or prompting for
// an install; it is never a parse failure.
var ErrNotFound = errors.New("lock file not found")

// ParseError indicates the lock file exists but its contents are malformed.
// The underlying JSON diagnostic is preserved and must be surfaced verbatim;
// a malformed lock is fatal to the operation, never treated as empty.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing lock file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// lockFile is the persisted shape of a lock graph.
type lockFile struct {
	Modules map[string]*model.ModuleRecord `json:"modules"`
}

// Load reads and parses the lock graph at path.
// Returns ErrNotFound if no file exists there, or a *ParseError if the
// contents cannot be decoded.
func Load(path string) (*model.LockGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading lock file %s: %w", path, err)
	}

	graph, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	logging.Debug("loaded lock file", "path", path, "modules", len(graph.Modules))
	return graph, nil
}

// Parse decodes lock file contents into a graph.
func Parse(data []byte) (*model.LockGraph, error) {
	var lf lockFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, err
	}

	graph := model.NewLockGraph()
	for name, rec := range lf.Modules {
		if rec == nil {
			rec = &model.ModuleRecord{}
		}
		rec.Name = name
		graph.AddModule(rec)
	}
	return graph, nil
}

// Serialize renders the graph in its normalized persisted form: two-space
// indentation, lexically sorted keys, trailing newline. Serializing the same
// graph always yields identical bytes.
func Serialize(graph *model.LockGraph) ([]byte, error) {
	lf := lockFile{Modules: graph.Modules}
	if lf.Modules == nil {
		lf.Modules = map[string]*model.ModuleRecord{}
	}

	data, err := json.MarshalIndent(&lf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing lock graph: %w", err)
	}
	return append(data, '\n'), nil
}

// Save atomically persists the graph to path. The contents are written to a
// temporary file in the same directory and renamed into place, so a reader
// never observes a partially written lock.
func Save(path string, graph *model.LockGraph) error {
	data, err := Serialize(graph)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp lock file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp lock file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp lock file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing lock file %s: %w", path, err)
	}

	logging.Debug("saved lock file", "path", path, "modules", len(graph.Modules))
	return nil
}
