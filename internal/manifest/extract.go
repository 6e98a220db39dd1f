package manifest

import "github.com/slimboyfat/cargometa/internal/toml"

// packageKeys are the [package] entries claimed by the typed schema.
var packageKeys = map[string]bool{
	"name":        true,
	"version":     true,
	"authors":     true,
	"description": true,
	"edition":     true,
	"license":     true,
	"keywords":    true,
}

// dependencySections maps section names to their place in the view.
var dependencySections = []string{"dependencies", "dev-dependencies", "build-dependencies"}

// Extract projects a parsed document onto a View. Required fields must be
// present and well-typed; optional fields may be absent but not mistyped.
// Extraction is pure and never mutates the document.
func Extract(doc *toml.Table) (*View, error) {
	view := &View{
		Dependencies:      make(map[string]toml.Value),
		DevDependencies:   make(map[string]toml.Value),
		BuildDependencies: make(map[string]toml.Value),
		Features:          make(map[string][]string),
		Rest:              make(map[string]toml.Value),
	}

	pkgVal, ok := doc.Get("package")
	if !ok {
		return nil, NewMissingFieldError("package")
	}
	pkg, ok := pkgVal.(*toml.Table)
	if !ok {
		return nil, NewWrongTypeError("package", toml.KindTable, pkgVal.Kind())
	}

	var err error
	if view.Name, err = requireString(pkg, "name"); err != nil {
		return nil, err
	}
	if view.Version, err = requireString(pkg, "version"); err != nil {
		return nil, err
	}
	if view.Description, err = optionalString(pkg, "description"); err != nil {
		return nil, err
	}
	if view.Edition, err = optionalString(pkg, "edition"); err != nil {
		return nil, err
	}
	if view.License, err = optionalString(pkg, "license"); err != nil {
		return nil, err
	}
	if view.Authors, err = optionalStringArray(pkg, "authors"); err != nil {
		return nil, err
	}
	if view.Keywords, err = optionalStringArray(pkg, "keywords"); err != nil {
		return nil, err
	}

	targets := map[string]map[string]toml.Value{
		"dependencies":       view.Dependencies,
		"dev-dependencies":   view.DevDependencies,
		"build-dependencies": view.BuildDependencies,
	}
	for _, section := range dependencySections {
		if err := collectDependencies(doc, section, targets[section]); err != nil {
			return nil, err
		}
	}

	if err := collectFeatures(doc, view.Features); err != nil {
		return nil, err
	}

	collectRest(doc, pkg, view.Rest)
	return view, nil
}

func requireString(pkg *toml.Table, key string) (string, error) {
	v, ok := pkg.Get(key)
	if !ok {
		return "", NewMissingFieldError(key)
	}
	s, ok := v.(toml.String)
	if !ok {
		return "", NewWrongTypeError("package."+key, toml.KindString, v.Kind())
	}
	return string(s), nil
}

func optionalString(pkg *toml.Table, key string) (string, error) {
	v, ok := pkg.Get(key)
	if !ok {
		return "", nil
	}
	s, ok := v.(toml.String)
	if !ok {
		return "", NewWrongTypeError("package."+key, toml.KindString, v.Kind())
	}
	return string(s), nil
}

func optionalStringArray(pkg *toml.Table, key string) ([]string, error) {
	v, ok := pkg.Get(key)
	if !ok {
		return nil, nil
	}
	return stringArray("package."+key, v)
}

func stringArray(path string, v toml.Value) ([]string, error) {
	arr, ok := v.(toml.Array)
	if !ok {
		return nil, NewWrongTypeError(path, toml.KindArray, v.Kind())
	}
	out := make([]string, len(arr))
	for i, elem := range arr {
		s, ok := elem.(toml.String)
		if !ok {
			return nil, NewWrongTypeError(path, toml.KindString, elem.Kind())
		}
		out[i] = string(s)
	}
	return out, nil
}

func collectDependencies(doc *toml.Table, section string, dst map[string]toml.Value) error {
	v, ok := doc.Get(section)
	if !ok {
		return nil
	}
	tbl, ok := v.(*toml.Table)
	if !ok {
		return NewWrongTypeError(section, toml.KindTable, v.Kind())
	}
	for _, name := range tbl.Keys() {
		req, _ := tbl.Get(name)
		dst[name] = req
	}
	return nil
}

func collectFeatures(doc *toml.Table, dst map[string][]string) error {
	v, ok := doc.Get("features")
	if !ok {
		return nil
	}
	tbl, ok := v.(*toml.Table)
	if !ok {
		return NewWrongTypeError("features", toml.KindTable, v.Kind())
	}
	for _, name := range tbl.Keys() {
		raw, _ := tbl.Get(name)
		list, err := stringArray("features."+name, raw)
		if err != nil {
			return err
		}
		dst[name] = list
	}
	return nil
}

// collectRest gathers every key the typed schema did not claim, flattening
// nested tables to dotted leaf paths so values land verbatim.
func collectRest(doc, pkg *toml.Table, rest map[string]toml.Value) {
	claimed := map[string]bool{
		"package":            true,
		"dependencies":       true,
		"dev-dependencies":   true,
		"build-dependencies": true,
		"features":           true,
	}
	for _, key := range doc.Keys() {
		if claimed[key] {
			continue
		}
		v, _ := doc.Get(key)
		flatten(key, v, rest)
	}
	for _, key := range pkg.Keys() {
		if packageKeys[key] {
			continue
		}
		v, _ := pkg.Get(key)
		flatten("package."+key, v, rest)
	}
}

func flatten(path string, v toml.Value, rest map[string]toml.Value) {
	tbl, ok := v.(*toml.Table)
	if !ok || tbl.Len() == 0 {
		rest[path] = v
		return
	}
	for _, key := range tbl.Keys() {
		child, _ := tbl.Get(key)
		flatten(path+"."+key, child, rest)
	}
}
