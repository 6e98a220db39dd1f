// Package codegen turns an extracted manifest view into a build-time
// snapshot: a generated Go constants file, or a JSON or YAML data file.
// Consumers include the snapshot instead of re-parsing the manifest at
// run time.
package codegen

import (
	"github.com/slimboyfat/cargometa/internal/manifest"
	"github.com/slimboyfat/cargometa/internal/toml"
)

// Snapshot is the serializable form of a manifest view: plain maps, slices
// and scalars only, so any embedding strategy can consume it.
type Snapshot struct {
	Name              string              `json:"name" yaml:"name"`
	Version           string              `json:"version" yaml:"version"`
	Description       string              `json:"description,omitempty" yaml:"description,omitempty"`
	Edition           string              `json:"edition,omitempty" yaml:"edition,omitempty"`
	License           string              `json:"license,omitempty" yaml:"license,omitempty"`
	Authors           []string            `json:"authors,omitempty" yaml:"authors,omitempty"`
	Keywords          []string            `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Dependencies      map[string]any      `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DevDependencies   map[string]any      `json:"dev-dependencies,omitempty" yaml:"dev-dependencies,omitempty"`
	BuildDependencies map[string]any      `json:"build-dependencies,omitempty" yaml:"build-dependencies,omitempty"`
	Features          map[string][]string `json:"features,omitempty" yaml:"features,omitempty"`
	Extra             map[string]any      `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// NewSnapshot projects a view onto its serializable form.
func NewSnapshot(view *manifest.View) *Snapshot {
	return &Snapshot{
		Name:              view.Name,
		Version:           view.Version,
		Description:       view.Description,
		Edition:           view.Edition,
		License:           view.License,
		Authors:           view.Authors,
		Keywords:          view.Keywords,
		Dependencies:      toPlainMap(view.Dependencies),
		DevDependencies:   toPlainMap(view.DevDependencies),
		BuildDependencies: toPlainMap(view.BuildDependencies),
		Features:          view.Features,
		Extra:             toPlainMap(view.Rest),
	}
}

func toPlainMap(src map[string]toml.Value) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, v := range src {
		out[key] = toml.ToInterface(v)
	}
	return out
}
