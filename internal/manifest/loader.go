package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/slimboyfat/cargometa/internal/toml"
)

// Loader reads manifest files from a filesystem and turns them into views.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over the OS filesystem.
func NewLoader() *Loader {
	return NewLoaderWithFs(afero.NewOsFs())
}

// NewLoaderWithFs creates a loader over the given filesystem.
func NewLoaderWithFs(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// LoadDocument reads and parses the manifest at path, returning the raw
// document tree without schema interpretation.
func (l *Loader) LoadDocument(path string) (*toml.Table, error) {
	if _, err := l.fs.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	doc, err := toml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load reads, parses and extracts the manifest at path.
func (l *Loader) Load(path string) (*View, error) {
	doc, err := l.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	view, err := Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return view, nil
}

// LoadDir loads the conventionally named manifest inside dir.
func (l *Loader) LoadDir(dir string) (*View, error) {
	return l.Load(filepath.Join(dir, Filename))
}

// Find walks from startDir up to the filesystem root and returns the path
// of the nearest manifest file. The starting directory is always explicit;
// there is no ambient project root.
func (l *Loader) Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, Filename)
		if _, err := l.fs.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s from %s upward", ErrFileNotFound, Filename, startDir)
		}
		dir = parent
	}
}
