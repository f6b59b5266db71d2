package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the file extensions treated as layouts.
var Extensions = []string{".yaml", ".yml"}

// Loader loads layouts from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every layout under Root, sorted by ID.
// Files that fail to parse are reported together after the walk.
func (l *Loader) LoadAll() ([]Layout, error) {
	var (
		layouts []Layout
		errs    []string
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLayoutFile(path) {
			return nil
		}

		layout, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err.Error())
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	if len(errs) > 0 {
		return layouts, fmt.Errorf("invalid layouts:\n  %s", strings.Join(errs, "\n  "))
	}
	return layouts, nil
}

// LoadByID loads the layout with the given ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil && len(layouts) == 0 {
		return Layout{}, err
	}
	for _, lvl := range layouts {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// LoadFile loads a single layout file. The ID defaults to the file name
// without its extension.
func LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	layout, err := ParseYAML(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if layout.ID == "" {
		layout.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	layout.FilePath = path
	return layout, nil
}

// WriteFile encodes the layout and writes it to path.
func WriteFile(l Layout, path string) error {
	data, err := l.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", l.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isLayoutFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range Extensions {
		if ext == supported {
			return true
		}
	}
	return false
}
