package scenario

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/nsdom/internal/errors"
)

// Ext is the scenario file extension.
const Ext = ".json"

// Source lists and loads scenarios.
type Source interface {
	// List returns scenario names in a stable order.
	List(ctx context.Context) ([]string, error)

	// Load reads and decodes one scenario.
	Load(ctx context.Context, name string) (*Scenario, error)
}

// FileSource reads scenarios from *.json files in a directory.
type FileSource struct {
	Dir string
}

// NewFileSource creates a FileSource for dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// List returns the names of the *.json files in the directory.
func (s *FileSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.New("E144").
			WithDetail("cannot read scenario directory " + s.Dir).
			Wrap(err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads <Dir>/<name>.json.
func (s *FileSource) Load(ctx context.Context, name string) (*Scenario, error) {
	name = strings.TrimSuffix(name, Ext)
	data, err := os.ReadFile(filepath.Join(s.Dir, name+Ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithPath(name).
				WithDetail("no " + name + Ext + " in " + s.Dir)
		}
		return nil, errors.New("E144").WithPath(name).Wrap(err)
	}
	return Decode(name, data)
}
