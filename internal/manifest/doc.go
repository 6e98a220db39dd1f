// Package manifest projects a parsed Cargo.toml document onto a typed view
// of the well-known package-metadata sections, while preserving everything
// else verbatim.
//
// # Manifest Format
//
// The recognized schema covers the conventional sections:
//
//	[package]
//	name = "demo"          # required
//	version = "0.1.0"      # required
//	authors = ["a@example.com"]
//	description = "A demo crate"
//
//	[dependencies]
//	anyhow = "1.0"
//	serde = { version = "1.0", features = ["derive"] }
//
//	[features]
//	default = ["std"]
//
// Dependency requirement shapes are deliberately not normalized: each entry
// is exposed as its raw parsed value, since version strings, inline tables
// with path/git/features, and so on are all legal. Keys outside the
// recognized schema are retained in the view's catch-all mapping under their
// full dotted path, so no information in the document is ever dropped.
//
// # Usage
//
// Load a manifest from disk:
//
//	loader := manifest.NewLoader()
//	view, err := loader.Load("Cargo.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(view.Name, view.Version)
//
// # Error Handling
//
// File access, parsing and extraction fail distinctly: a missing file
// surfaces ErrFileNotFound, malformed syntax surfaces *toml.ParseError, and
// schema violations surface *MissingFieldError or *WrongTypeError.
package manifest
