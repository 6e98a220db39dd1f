// Package toml implements a parser for the TOML dialect used by package
// manifests. It produces a generic, insertion-ordered value tree with no
// knowledge of manifest semantics; schema-aware interpretation lives in
// the manifest package.
//
// # Supported Syntax
//
// The parser covers the constructs that realistically appear in project
// manifests:
//
//   - bare, quoted and dotted keys
//   - basic and literal strings, single- and multi-line
//   - decimal integers (with underscore separators), floats, booleans
//   - RFC 3339-shaped datetimes, kept as opaque strings
//   - arrays (multi-line, heterogeneous) and inline tables
//   - [table] and [[array-of-tables]] headers
//   - # comments
//
// Full TOML v1.0.0 compliance is a non-goal; unsupported input is always
// reported as an error, never silently misparsed.
//
// # Usage
//
// Parse returns the root table of the document:
//
//	doc, err := toml.Parse(data)
//	if err != nil {
//	    var perr *toml.ParseError
//	    if errors.As(err, &perr) {
//	        // perr.Line and perr.Col pinpoint the offending input
//	    }
//	}
//
//	v, ok := toml.Lookup(doc, "package.name")
//
// Parsing is a pure function of its input: no partial results are returned
// on failure, and the returned tree is never mutated by this package, so it
// may be shared freely across goroutines.
package toml
