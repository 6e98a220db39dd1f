package codegen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/slimboyfat/cargometa/internal/manifest"
)

// ErrUnsupportedExt indicates an output extension with no generator
var ErrUnsupportedExt = errors.New("unsupported output extension (use .go, .json, .yaml, or .yml)")

// DefaultPackageName is the package declared in generated Go files.
const DefaultPackageName = "meta"

// Generate renders a snapshot of view in the format implied by the output
// extension. pkg names the package of a generated Go file and is ignored
// for data formats.
func Generate(view *manifest.View, ext, pkg string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".go":
		return GenerateGo(view, pkg)
	case ".json":
		return GenerateJSON(view)
	case ".yaml", ".yml":
		return GenerateYAML(view)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
}

// GenerateJSON renders the snapshot as indented JSON.
func GenerateJSON(view *manifest.View) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(view), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GenerateYAML renders the snapshot as YAML.
func GenerateYAML(view *manifest.View) ([]byte, error) {
	return yaml.Marshal(NewSnapshot(view))
}

var goTemplate = template.Must(template.New("meta").Parse(`// Code generated by cargometa; DO NOT EDIT.

package {{.Package}}

// Manifest metadata extracted from {{.Source}}.
const (
	Name    = {{.Name}}
	Version = {{.Version}}
{{- if .Description}}
	Description = {{.Description}}
{{- end}}
{{- if .License}}
	License = {{.License}}
{{- end}}
)

{{if .Authors}}// Authors lists the declared package authors.
var Authors = []string{ {{- range .Authors}}
	{{.}},
{{- end}}
}

{{end -}}
// Raw is the full manifest snapshot encoded as JSON.
const Raw = {{.Raw}}
`))

type goTemplateData struct {
	Package     string
	Source      string
	Name        string
	Version     string
	Description string
	License     string
	Authors     []string
	Raw         string
}

// GenerateGo renders the snapshot as a Go source file exposing the core
// identity fields as constants plus the full snapshot as a JSON string.
// The output is gofmt-formatted.
func GenerateGo(view *manifest.View, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = DefaultPackageName
	}
	raw, err := json.Marshal(NewSnapshot(view))
	if err != nil {
		return nil, err
	}

	data := goTemplateData{
		Package: pkg,
		Source:  manifest.Filename,
		Name:    strconv.Quote(view.Name),
		Version: strconv.Quote(view.Version),
		Raw:     strconv.Quote(string(raw)),
	}
	if view.Description != "" {
		data.Description = strconv.Quote(view.Description)
	}
	if view.License != "" {
		data.License = strconv.Quote(view.License)
	}
	for _, author := range view.Authors {
		data.Authors = append(data.Authors, strconv.Quote(author))
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not compile: %w", err)
	}
	return src, nil
}
