package codegen

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrOutputExists indicates the output file already exists and Force is off
var ErrOutputExists = errors.New("output file already exists")

// Writer writes generated snapshots to the filesystem.
type Writer struct {
	fs     afero.Fs
	force  bool
	dryRun bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Fs     afero.Fs
	Force  bool
	DryRun bool
}

// NewWriter creates a new snapshot writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &Writer{
		fs:     opts.Fs,
		force:  opts.Force,
		dryRun: opts.DryRun,
	}
}

// Write saves data to path, creating parent directories as needed. An
// existing file is only overwritten when Force is set; a dry run performs
// every check but writes nothing.
func (w *Writer) Write(path string, data []byte) error {
	if !w.force {
		if _, err := w.fs.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
	}

	if w.dryRun {
		return nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(w.fs, path, data, 0o644)
}
