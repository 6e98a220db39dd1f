package toml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *Table {
	t.Helper()
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestParse_PackageSection(t *testing.T) {
	doc := mustParse(t, `
[package]
name = "demo"
version = "0.1.0"
authors = ["a@example.com"]
`)

	v, ok := doc.GetPath("package", "name")
	require.True(t, ok)
	assert.Equal(t, String("demo"), v)

	v, ok = doc.GetPath("package", "version")
	require.True(t, ok)
	assert.Equal(t, String("0.1.0"), v)

	v, ok = doc.GetPath("package", "authors")
	require.True(t, ok)
	assert.Equal(t, Array{String("a@example.com")}, v)
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"basic string", `k = "hello"`, String("hello")},
		{"literal string", `k = 'C:\path\to'`, String(`C:\path\to`)},
		{"escapes", `k = "a\tb\nc\"d\\e"`, String("a\tb\nc\"d\\e")},
		{"unicode escape", `k = "\u00E9\U0001F600"`, String("é😀")},
		{"integer", `k = 42`, Integer(42)},
		{"negative integer", `k = -17`, Integer(-17)},
		{"signed integer", `k = +5`, Integer(5)},
		{"underscored integer", `k = 1_000_000`, Integer(1000000)},
		{"float", `k = 3.14`, Float(3.14)},
		{"exponent float", `k = 6.022e23`, Float(6.022e23)},
		{"negative float", `k = -0.01`, Float(-0.01)},
		{"bool true", `k = true`, Boolean(true)},
		{"bool false", `k = false`, Boolean(false)},
		{"datetime", `k = 1979-05-27T07:32:00Z`, Datetime("1979-05-27T07:32:00Z")},
		{"local date", `k = 1979-05-27`, Datetime("1979-05-27")},
		{"local time", `k = 07:32:00`, Datetime("07:32:00")},
		{"fractional datetime", `k = 1979-05-27T00:32:00.999999-07:00`, Datetime("1979-05-27T00:32:00.999999-07:00")},
		{"empty array", `k = []`, Array{}},
		{"heterogeneous array", `k = [1, "two", true]`, Array{Integer(1), String("two"), Boolean(true)}},
		{"nested array", `k = [[1, 2], [3]]`, Array{Array{Integer(1), Integer(2)}, Array{Integer(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			v, ok := doc.Get("k")
			require.True(t, ok)
			assert.True(t, Equal(tt.want, v), "got %#v, want %#v", v, tt.want)
		})
	}
}

func TestParse_MultilineStrings(t *testing.T) {
	doc := mustParse(t, `
basic = """
line one
line two"""
joined = """\
  one \
  two"""
literal = '''
raw \n text'''
quotes = """contains ""two"" quotes"""
`)

	v, _ := doc.Get("basic")
	assert.Equal(t, String("line one\nline two"), v)

	v, _ = doc.Get("joined")
	assert.Equal(t, String("one two"), v)

	v, _ = doc.Get("literal")
	assert.Equal(t, String(`raw \n text`), v)

	v, _ = doc.Get("quotes")
	assert.Equal(t, String(`contains ""two"" quotes`), v)
}

func TestParse_DottedKeys(t *testing.T) {
	doc := mustParse(t, `
a.b.c = 1
a.d = "x"
`)

	v, ok := doc.GetPath("a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, Integer(1), v)

	v, ok = doc.GetPath("a", "d")
	require.True(t, ok)
	assert.Equal(t, String("x"), v)
}

func TestParse_QuotedKeys(t *testing.T) {
	doc := mustParse(t, `
"with.dot" = 1
'single quoted' = 2
[deps."serde_json"]
version = "1.0"
`)

	v, ok := doc.Get("with.dot")
	require.True(t, ok)
	assert.Equal(t, Integer(1), v)

	v, ok = doc.Get("single quoted")
	require.True(t, ok)
	assert.Equal(t, Integer(2), v)

	v, ok = doc.GetPath("deps", "serde_json", "version")
	require.True(t, ok)
	assert.Equal(t, String("1.0"), v)
}

func TestParse_InlineTables(t *testing.T) {
	doc := mustParse(t, `
[dependencies]
foo = "1.0"
bar = { version = "2.0", features = ["x"] }
empty = {}
`)

	v, ok := doc.GetPath("dependencies", "foo")
	require.True(t, ok)
	assert.Equal(t, String("1.0"), v)

	v, ok = doc.GetPath("dependencies", "bar", "version")
	require.True(t, ok)
	assert.Equal(t, String("2.0"), v)

	v, ok = doc.GetPath("dependencies", "bar", "features")
	require.True(t, ok)
	assert.True(t, Equal(Array{String("x")}, v))

	v, ok = doc.GetPath("dependencies", "empty")
	require.True(t, ok)
	assert.Equal(t, 0, v.(*Table).Len())
}

func TestParse_ArrayOfTables(t *testing.T) {
	doc := mustParse(t, `
[[bin]]
name = "first"

[[bin]]
name = "second"
path = "src/second.rs"
`)

	v, ok := doc.Get("bin")
	require.True(t, ok)
	arr, ok := v.(Array)
	require.True(t, ok)
	require.Len(t, arr, 2)

	name, _ := arr[0].(*Table).Get("name")
	assert.Equal(t, String("first"), name)
	name, _ = arr[1].(*Table).Get("name")
	assert.Equal(t, String("second"), name)
}

func TestParse_ArrayOfTablesSubtable(t *testing.T) {
	doc := mustParse(t, `
[[target]]
triple = "x86_64"

[target.env]
cc = "gcc"

[[target]]
triple = "aarch64"

[target.env]
cc = "clang"
`)

	arr, _ := doc.Get("target")
	require.Len(t, arr.(Array), 2)

	cc, ok := arr.(Array)[0].(*Table).GetPath("env", "cc")
	require.True(t, ok)
	assert.Equal(t, String("gcc"), cc)

	cc, ok = arr.(Array)[1].(*Table).GetPath("env", "cc")
	require.True(t, ok)
	assert.Equal(t, String("clang"), cc)
}

func TestParse_ImplicitTableDeclaredLater(t *testing.T) {
	doc := mustParse(t, `
[a.b]
x = 1

[a]
y = 2
`)

	v, ok := doc.GetPath("a", "b", "x")
	require.True(t, ok)
	assert.Equal(t, Integer(1), v)

	v, ok = doc.GetPath("a", "y")
	require.True(t, ok)
	assert.Equal(t, Integer(2), v)
}

func TestParse_CommentsAndWhitespace(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		"# leading comment",
		"key = \"value\" # trailing comment",
		"",
		"  indented = 1",
		"arr = [ # comment inside array",
		"  1, # one",
		"  2,",
		"]",
	}, "\n"))

	v, _ := doc.Get("key")
	assert.Equal(t, String("value"), v)
	v, _ = doc.Get("indented")
	assert.Equal(t, Integer(1), v)
	v, _ = doc.Get("arr")
	assert.True(t, Equal(Array{Integer(1), Integer(2)}, v))
}

func TestParse_CRLF(t *testing.T) {
	doc := mustParse(t, "[package]\r\nname = \"demo\"\r\nversion = \"0.1.0\"\r\n")

	v, ok := doc.GetPath("package", "name")
	require.True(t, ok)
	assert.Equal(t, String("demo"), v)
}

func TestParse_KeyOrderPreserved(t *testing.T) {
	doc := mustParse(t, `
zebra = 1
alpha = 2
middle = 3
`)

	assert.Equal(t, []string{"zebra", "alpha", "middle"}, doc.Keys())
}

func TestParse_Idempotent(t *testing.T) {
	input := []byte(`
[package]
name = "demo"
version = "0.1.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
`)

	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	assert.True(t, Equal(first, second))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"duplicate key", "name = \"a\"\nname = \"b\"", DuplicateKey},
		{"duplicate key in table", "[t]\nx = 1\nx = 2", DuplicateKey},
		{"duplicate table header", "[a]\nx = 1\n[a]\ny = 2", DuplicateKey},
		{"duplicate via dotted key", "a.b = 1\na.b = 2", DuplicateKey},
		{"duplicate in inline table", `k = { a = 1, a = 2 }`, DuplicateKey},
		{"header over value", "a = 1\n[a]", TypeConflict},
		{"dotted key through value", "a = 1\na.b = 2", TypeConflict},
		{"table header over array of tables", "[[a]]\nx = 1\n[a]", TypeConflict},
		{"array of tables over table", "[a]\nx = 1\n[[a]]", TypeConflict},
		{"unterminated basic string", `k = "abc`, UnterminatedString},
		{"unterminated literal string", `k = 'abc`, UnterminatedString},
		{"unterminated multiline", `k = """abc`, UnterminatedString},
		{"string with raw newline", "k = \"ab\nc\"", UnterminatedString},
		{"trailing underscore", `k = 1000_`, InvalidNumber},
		{"double underscore", `k = 1__0`, InvalidNumber},
		{"bad float", `k = 1.2.3`, InvalidNumber},
		{"inf not supported", `k = inf`, InvalidNumber},
		{"nan not supported", `k = nan`, InvalidNumber},
		{"bad datetime", `k = 1979-13-99T07:32:00Z`, InvalidDateTime},
		{"missing equals", "k 1", UnexpectedToken},
		{"missing value", "k =", UnexpectedToken},
		{"bare word value", "k = yes", UnexpectedToken},
		{"unclosed header", "[package\nname = \"x\"", UnexpectedToken},
		{"unclosed array", "k = [1, 2", UnexpectedToken},
		{"garbage after value", `k = 1 extra`, UnexpectedToken},
		{"newline in inline table", "k = { a = 1,\nb = 2 }", UnexpectedToken},
		{"invalid escape", `k = "a\qb"`, UnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, doc)

			perr, ok := err.(*ParseError)
			require.True(t, ok, "expected *ParseError, got %T", err)
			assert.Equal(t, tt.kind, perr.Kind, "got %v: %s", perr.Kind, perr.Message)
			assert.Greater(t, perr.Line, 0)
			assert.Greater(t, perr.Col, 0)
		})
	}
}

func TestParse_DuplicateKeyPosition(t *testing.T) {
	input := "[package]\nname = \"demo\"\nname = \"dup\"\nversion = \"1\"\n"

	doc, err := Parse([]byte(input))
	require.Error(t, err)
	assert.Nil(t, doc)

	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, DuplicateKey, perr.Kind)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, 1, perr.Col)
}

func TestParse_NoPartialResultOnFailure(t *testing.T) {
	doc, err := Parse([]byte("good = 1\nbad = \"unterminated"))
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(`k = 1`))
	require.NoError(t, err)
	v, _ := doc.Get("k")
	assert.Equal(t, Integer(1), v)
}

func TestLookup(t *testing.T) {
	doc := mustParse(t, `
[package]
name = "demo"
keywords = ["macro", "version", "cargo-toml"]

[dependencies]
serde = { version = "1.0" }
`)

	tests := []struct {
		path string
		want Value
		ok   bool
	}{
		{"package.name", String("demo"), true},
		{"package.keywords.2", String("cargo-toml"), true},
		{"dependencies.serde.version", String("1.0"), true},
		{"package.missing", nil, false},
		{"package.keywords.9", nil, false},
		{"package.keywords.x", nil, false},
		{"package.name.deeper", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := Lookup(doc, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, v)
			}
		})
	}

	v, ok := Lookup(doc, "")
	assert.True(t, ok)
	assert.Equal(t, doc, v)
}

func TestToInterface(t *testing.T) {
	doc := mustParse(t, `
[package]
name = "demo"
count = 2
ratio = 0.5
flag = true
tags = ["a", "b"]
`)

	got := ToInterface(doc)
	want := map[string]any{
		"package": map[string]any{
			"name":  "demo",
			"count": int64(2),
			"ratio": 0.5,
			"flag":  true,
			"tags":  []any{"a", "b"},
		},
	}
	assert.Equal(t, want, got)
}
