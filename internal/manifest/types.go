package manifest

import "github.com/slimboyfat/cargometa/internal/toml"

// Filename is the conventional manifest file name.
const Filename = "Cargo.toml"

// View is the typed projection of a manifest document. It is constructed
// once by Extract and read-only afterward; it holds no reference to the
// raw manifest text.
type View struct {
	// Required package identity
	Name    string
	Version string

	// Optional package metadata
	Authors     []string
	Description string
	Edition     string
	License     string
	Keywords    []string

	// Dependency requirements by name, raw shapes preserved. A requirement
	// is either a bare version string or an inline table with version,
	// features, path, git and so on; callers query the raw value.
	Dependencies      map[string]toml.Value
	DevDependencies   map[string]toml.Value
	BuildDependencies map[string]toml.Value

	// Feature names to the features and optional dependencies they enable
	Features map[string][]string

	// Rest holds every key not claimed by the recognized schema, keyed by
	// its full dotted path
	Rest map[string]toml.Value
}

// Dependency returns the raw requirement declared for a dependency name,
// searching the regular, dev and build sections in that order.
func (v *View) Dependency(name string) (toml.Value, bool) {
	for _, section := range []map[string]toml.Value{v.Dependencies, v.DevDependencies, v.BuildDependencies} {
		if req, ok := section[name]; ok {
			return req, true
		}
	}
	return nil, false
}
