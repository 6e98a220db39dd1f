package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RoundTripBuiltDocument(t *testing.T) {
	pkg := NewTable()
	pkg.Set("name", String("demo"))
	pkg.Set("version", String("0.1.0"))
	pkg.Set("authors", Array{String("a@example.com"), String("b@example.com")})
	pkg.Set("edition", String("2021"))

	serde := NewTable()
	serde.Set("version", String("1.0"))
	serde.Set("features", Array{String("derive")})

	deps := NewTable()
	deps.Set("anyhow", String("1.0"))
	deps.Set("serde", serde)

	bin1 := NewTable()
	bin1.Set("name", String("main"))
	bin2 := NewTable()
	bin2.Set("name", String("alt"))
	bin2.Set("bench", Boolean(false))

	doc := NewTable()
	doc.Set("package", pkg)
	doc.Set("dependencies", deps)
	doc.Set("bin", Array{bin1, bin2})

	reparsed, err := Parse(Marshal(doc))
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed), "round trip changed document:\n%s", Marshal(doc))
}

func TestMarshal_RoundTripParsedManifest(t *testing.T) {
	input := `
[package]
name = "demo"
version = "0.1.0"
description = "A demo crate"
authors = ["a@example.com"]
keywords = ["macro", "cargo"]
count = 3
ratio = 1.5
published = 2024-01-15T10:30:00Z
release = true

[dependencies]
anyhow = "1.0"
serde = { version = "1.0", features = ["derive"], default-features = false }

[features]
default = ["std"]
std = []

[lib]
proc-macro = true

[[bench]]
name = "speed"
harness = false
`

	doc := mustParse(t, input)
	reparsed, err := Parse(Marshal(doc))
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed))
}

func TestMarshal_ScalarFormats(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("hi"), `k = "hi"` + "\n"},
		{"string escapes", String("a\"b\\c\nd"), `k = "a\"b\\c\nd"` + "\n"},
		{"integer", Integer(42), "k = 42\n"},
		{"whole float keeps point", Float(3), "k = 3.0\n"},
		{"float", Float(0.5), "k = 0.5\n"},
		{"bool", Boolean(true), "k = true\n"},
		{"datetime unquoted", Datetime("1979-05-27T07:32:00Z"), "k = 1979-05-27T07:32:00Z\n"},
		{"array", Array{Integer(1), Integer(2)}, "k = [1, 2]\n"},
		{"empty array", Array{}, "k = []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewTable()
			doc.Set("k", tt.v)
			assert.Equal(t, tt.want, string(Marshal(doc)))
		})
	}
}

func TestMarshal_QuotesNonBareKeys(t *testing.T) {
	inner := NewTable()
	inner.Set("version", String("1.0"))
	deps := NewTable()
	deps.Set("my crate", inner)
	doc := NewTable()
	doc.Set("dependencies", deps)

	out := string(Marshal(doc))
	assert.Contains(t, out, `[dependencies."my crate"]`)

	reparsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed))
}

func TestMarshal_MixedArrayStaysInline(t *testing.T) {
	inner := NewTable()
	inner.Set("a", Integer(1))
	doc := NewTable()
	doc.Set("k", Array{inner, Integer(2)})

	out := string(Marshal(doc))
	assert.Equal(t, "k = [{a = 1}, 2]\n", out)

	reparsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed))
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "x = 1\ny = [1, 2]")
	b := mustParse(t, "y = [1, 2]\nx = 1")
	c := mustParse(t, "x = 1\ny = [2, 1]")
	d := mustParse(t, "x = 1")

	assert.True(t, Equal(a, b), "table equality ignores key order")
	assert.False(t, Equal(a, c), "array equality is order-sensitive")
	assert.False(t, Equal(a, d))
	assert.False(t, Equal(String("1"), Integer(1)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(String("x"), nil))
}
