package toml

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Parse parses a TOML document and returns its root table. On failure the
// returned error is a *ParseError and no partial tree is produced.
func Parse(data []byte) (*Table, error) {
	p := &parser{
		src:      string(data),
		line:     1,
		col:      1,
		root:     NewTable(),
		declared: make(map[string]bool),
		implicit: make(map[string]bool),
		arrays:   make(map[string]bool),
	}
	p.cur = p.root
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.root, nil
}

// ParseReader reads all of r and parses it as a TOML document.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

type parser struct {
	src  string
	pos  int
	line int
	col  int

	root *Table
	cur  *Table

	// declared tracks header paths opened with an explicit [x] header,
	// implicit tracks tables created as intermediates of a deeper header,
	// arrays tracks paths populated by [[x]] headers. Path components are
	// joined with NUL so quoted keys containing dots cannot collide.
	declared map[string]bool
	implicit map[string]bool
	arrays   map[string]bool
}

func (p *parser) parse() *ParseError {
	for {
		p.skipTrivia()
		if p.eof() {
			return nil
		}
		if p.peek() == '[' {
			if err := p.parseHeader(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseKeyValue(p.cur); err != nil {
			return err
		}
		if err := p.expectLineEnd(); err != nil {
			return err
		}
	}
}

// --- low-level cursor ---

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.next()
	}
}

// skipTrivia skips whitespace, newlines and comments between expressions.
func (p *parser) skipTrivia() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		case '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

// expectLineEnd consumes trailing whitespace and an optional comment, then
// requires a newline or end of input.
func (p *parser) expectLineEnd() *ParseError {
	p.skipSpace()
	if p.peek() == '#' {
		for !p.eof() && p.peek() != '\n' {
			p.next()
		}
	}
	if p.eof() {
		return nil
	}
	if p.peek() == '\r' && p.peekAt(1) == '\n' {
		p.next()
		p.next()
		return nil
	}
	if p.peek() == '\n' {
		p.next()
		return nil
	}
	return p.errf(UnexpectedToken, p.line, p.col, "expected end of line, found %q", p.peek())
}

func (p *parser) errf(kind ErrorKind, line, col int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

// --- keys ---

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

// parseKeyPath parses a possibly dotted key and returns its segments.
func (p *parser) parseKeyPath() ([]string, *ParseError) {
	var parts []string
	for {
		p.skipSpace()
		line, col := p.line, p.col
		var key string
		switch c := p.peek(); {
		case c == '"':
			s, err := p.parseBasicString()
			if err != nil {
				return nil, err
			}
			key = s
		case c == '\'':
			s, err := p.parseLiteralString()
			if err != nil {
				return nil, err
			}
			key = s
		case isBareKeyChar(c):
			start := p.pos
			for !p.eof() && isBareKeyChar(p.peek()) {
				p.next()
			}
			key = p.src[start:p.pos]
		default:
			return nil, p.errf(UnexpectedToken, line, col, "expected key")
		}
		parts = append(parts, key)
		p.skipSpace()
		if p.peek() != '.' {
			return parts, nil
		}
		p.next()
	}
}

// --- headers ---

func (p *parser) parseHeader() *ParseError {
	line, col := p.line, p.col
	p.next() // '['
	aot := p.peek() == '['
	if aot {
		p.next()
	}
	parts, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() != ']' {
		return p.errf(UnexpectedToken, p.line, p.col, "expected ']' in table header")
	}
	p.next()
	if aot {
		if p.peek() != ']' {
			return p.errf(UnexpectedToken, p.line, p.col, "expected ']]' in array-of-tables header")
		}
		p.next()
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}
	if aot {
		return p.openArrayTable(parts, line, col)
	}
	return p.openTable(parts, line, col)
}

// walkHeaderPrefix descends to the parent table of a header path, creating
// implicit intermediate tables as needed. It returns the parent and the
// joined path key of the prefix.
func (p *parser) walkHeaderPrefix(parts []string, line, col int) (*Table, string, *ParseError) {
	t := p.root
	key := ""
	for _, part := range parts[:len(parts)-1] {
		key = joinPath(key, part)
		existing, ok := t.Get(part)
		if !ok {
			next := NewTable()
			t.Set(part, next)
			p.implicit[key] = true
			t = next
			continue
		}
		switch node := existing.(type) {
		case *Table:
			t = node
		case Array:
			if !p.arrays[key] || len(node) == 0 {
				return nil, "", p.errf(TypeConflict, line, col, "key %q is not a table", part)
			}
			// descend into the most recent element of the array of tables
			key = joinPath(key, "#"+strconv.Itoa(len(node)-1))
			t = node[len(node)-1].(*Table)
		default:
			return nil, "", p.errf(TypeConflict, line, col, "key %q already defined as a %s", part, existing.Kind())
		}
	}
	return t, key, nil
}

func (p *parser) openTable(parts []string, line, col int) *ParseError {
	t, key, err := p.walkHeaderPrefix(parts, line, col)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	key = joinPath(key, last)
	existing, ok := t.Get(last)
	if !ok {
		next := NewTable()
		t.Set(last, next)
		p.declared[key] = true
		p.cur = next
		return nil
	}
	tbl, isTable := existing.(*Table)
	if !isTable {
		return p.errf(TypeConflict, line, col, "key %q already defined as a %s", last, existing.Kind())
	}
	if !p.implicit[key] || p.declared[key] {
		return p.errf(DuplicateKey, line, col, "table %q already defined", strings.Join(parts, "."))
	}
	p.declared[key] = true
	p.cur = tbl
	return nil
}

func (p *parser) openArrayTable(parts []string, line, col int) *ParseError {
	t, key, err := p.walkHeaderPrefix(parts, line, col)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	key = joinPath(key, last)
	existing, ok := t.Get(last)
	if !ok {
		next := NewTable()
		t.Set(last, Array{next})
		p.arrays[key] = true
		p.cur = next
		return nil
	}
	arr, isArray := existing.(Array)
	if !isArray || !p.arrays[key] {
		return p.errf(TypeConflict, line, col, "key %q already defined as a %s", last, existing.Kind())
	}
	next := NewTable()
	t.Set(last, append(arr, next))
	p.cur = next
	return nil
}

func joinPath(prefix, part string) string {
	if prefix == "" {
		return part
	}
	return prefix + "\x00" + part
}

// --- key/value pairs ---

func (p *parser) parseKeyValue(dst *Table) *ParseError {
	line, col := p.line, p.col
	parts, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() != '=' {
		return p.errf(UnexpectedToken, p.line, p.col, "expected '=' after key")
	}
	p.next()
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return err
	}
	return p.insert(dst, parts, v, line, col)
}

// insert stores v under a possibly dotted key, creating intermediate tables.
func (p *parser) insert(dst *Table, parts []string, v Value, line, col int) *ParseError {
	t := dst
	for _, part := range parts[:len(parts)-1] {
		existing, ok := t.Get(part)
		if !ok {
			next := NewTable()
			t.Set(part, next)
			t = next
			continue
		}
		tbl, isTable := existing.(*Table)
		if !isTable {
			return p.errf(TypeConflict, line, col, "key %q already defined as a %s", part, existing.Kind())
		}
		t = tbl
	}
	last := parts[len(parts)-1]
	if t.Has(last) {
		return p.errf(DuplicateKey, line, col, "key %q already defined", last)
	}
	t.Set(last, v)
	return nil
}

// --- values ---

func (p *parser) parseValue() (Value, *ParseError) {
	if p.eof() {
		return nil, p.errf(UnexpectedToken, p.line, p.col, "expected value, found end of input")
	}
	switch c := p.peek(); {
	case c == '"':
		if p.peekAt(1) == '"' && p.peekAt(2) == '"' {
			return p.parseMultilineBasic()
		}
		s, err := p.parseBasicString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == '\'':
		if p.peekAt(1) == '\'' && p.peekAt(2) == '\'' {
			return p.parseMultilineLiteral()
		}
		s, err := p.parseLiteralString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseInlineTable()
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'i' || c == 'n':
		line, col := p.line, p.col
		word := p.bareWord()
		if word == "inf" || word == "nan" {
			return nil, p.errf(InvalidNumber, line, col, "%s is not supported", word)
		}
		return nil, p.errf(UnexpectedToken, line, col, "unexpected value %q", word)
	case c == '+' || c == '-' || c >= '0' && c <= '9':
		return p.parseNumberOrDatetime()
	default:
		return nil, p.errf(UnexpectedToken, p.line, p.col, "expected value, found %q", c)
	}
}

func (p *parser) bareWord() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.next()
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) parseBool() (Value, *ParseError) {
	line, col := p.line, p.col
	switch word := p.bareWord(); word {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	default:
		return nil, p.errf(UnexpectedToken, line, col, "unexpected value %q", word)
	}
}

// parseBasicString parses a single-line "..." string with escapes.
func (p *parser) parseBasicString() (string, *ParseError) {
	line, col := p.line, p.col
	p.next() // '"'
	var sb strings.Builder
	for {
		if p.eof() || p.peek() == '\n' {
			return "", p.errf(UnterminatedString, line, col, "basic string not closed")
		}
		c := p.next()
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			if err := p.unescape(&sb, line, col); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
		}
	}
}

// parseLiteralString parses a single-line '...' string with no escapes.
func (p *parser) parseLiteralString() (string, *ParseError) {
	line, col := p.line, p.col
	p.next() // '\''
	start := p.pos
	for {
		if p.eof() || p.peek() == '\n' {
			return "", p.errf(UnterminatedString, line, col, "literal string not closed")
		}
		if p.peek() == '\'' {
			s := p.src[start:p.pos]
			p.next()
			return s, nil
		}
		p.next()
	}
}

func (p *parser) parseMultilineBasic() (Value, *ParseError) {
	line, col := p.line, p.col
	p.next()
	p.next()
	p.next() // opening """
	p.trimFirstNewline()
	var sb strings.Builder
	for {
		if p.eof() {
			return nil, p.errf(UnterminatedString, line, col, "multi-line basic string not closed")
		}
		c := p.peek()
		switch c {
		case '"':
			q := 0
			for !p.eof() && p.peek() == '"' {
				p.next()
				q++
			}
			if q >= 3 {
				sb.WriteString(strings.Repeat(`"`, q-3))
				return String(sb.String()), nil
			}
			sb.WriteString(strings.Repeat(`"`, q))
		case '\\':
			p.next()
			if p.atLineEndingBackslash() {
				for !p.eof() {
					c := p.peek()
					if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
						break
					}
					p.next()
				}
				continue
			}
			if err := p.unescape(&sb, line, col); err != nil {
				return nil, err
			}
		default:
			sb.WriteByte(p.next())
		}
	}
}

// atLineEndingBackslash reports whether the cursor, positioned just after a
// backslash, sits on whitespace running to the end of the line. Such a
// backslash joins the next non-blank content.
func (p *parser) atLineEndingBackslash() bool {
	for i := 0; ; i++ {
		switch p.peekAt(i) {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
}

func (p *parser) parseMultilineLiteral() (Value, *ParseError) {
	line, col := p.line, p.col
	p.next()
	p.next()
	p.next() // opening '''
	p.trimFirstNewline()
	var sb strings.Builder
	for {
		if p.eof() {
			return nil, p.errf(UnterminatedString, line, col, "multi-line literal string not closed")
		}
		if p.peek() == '\'' {
			q := 0
			for !p.eof() && p.peek() == '\'' {
				p.next()
				q++
			}
			if q >= 3 {
				sb.WriteString(strings.Repeat(`'`, q-3))
				return String(sb.String()), nil
			}
			sb.WriteString(strings.Repeat(`'`, q))
			continue
		}
		sb.WriteByte(p.next())
	}
}

// trimFirstNewline discards a newline immediately following an opening
// multi-line delimiter.
func (p *parser) trimFirstNewline() {
	if p.peek() == '\r' && p.peekAt(1) == '\n' {
		p.next()
		p.next()
		return
	}
	if p.peek() == '\n' {
		p.next()
	}
}

// unescape consumes one escape sequence (the backslash is already consumed)
// and appends the decoded text to sb.
func (p *parser) unescape(sb *strings.Builder, line, col int) *ParseError {
	if p.eof() {
		return p.errf(UnterminatedString, line, col, "string not closed")
	}
	eline, ecol := p.line, p.col
	switch c := p.next(); c {
	case 'b':
		sb.WriteByte('\b')
	case 't':
		sb.WriteByte('\t')
	case 'n':
		sb.WriteByte('\n')
	case 'f':
		sb.WriteByte('\f')
	case 'r':
		sb.WriteByte('\r')
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case 'u':
		return p.unescapeUnicode(sb, 4, eline, ecol)
	case 'U':
		return p.unescapeUnicode(sb, 8, eline, ecol)
	default:
		return p.errf(UnexpectedToken, eline, ecol, "invalid escape sequence \\%c", c)
	}
	return nil
}

func (p *parser) unescapeUnicode(sb *strings.Builder, digits int, line, col int) *ParseError {
	if p.pos+digits > len(p.src) {
		return p.errf(UnexpectedToken, line, col, "truncated unicode escape")
	}
	hex := p.src[p.pos : p.pos+digits]
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return p.errf(UnexpectedToken, line, col, "invalid unicode escape %q", hex)
	}
	for i := 0; i < digits; i++ {
		p.next()
	}
	sb.WriteRune(rune(code))
	return nil
}

func (p *parser) parseArray() (Value, *ParseError) {
	p.next() // '['
	arr := Array{}
	for {
		p.skipTrivia()
		if p.eof() {
			return nil, p.errf(UnexpectedToken, p.line, p.col, "array not closed")
		}
		if p.peek() == ']' {
			p.next()
			return arr, nil
		}
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, elem)
		p.skipTrivia()
		switch p.peek() {
		case ',':
			p.next()
		case ']':
			p.next()
			return arr, nil
		default:
			return nil, p.errf(UnexpectedToken, p.line, p.col, "expected ',' or ']' in array")
		}
	}
}

func (p *parser) parseInlineTable() (Value, *ParseError) {
	p.next() // '{'
	t := NewTable()
	p.skipSpace()
	if p.peek() == '}' {
		p.next()
		return t, nil
	}
	for {
		line, col := p.line, p.col
		parts, err := p.parseKeyPath()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != '=' {
			return nil, p.errf(UnexpectedToken, p.line, p.col, "expected '=' in inline table")
		}
		p.next()
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.insert(t, parts, v, line, col); err != nil {
			return nil, err
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.next()
			p.skipSpace()
		case '}':
			p.next()
			return t, nil
		default:
			return nil, p.errf(UnexpectedToken, p.line, p.col, "expected ',' or '}' in inline table")
		}
	}
}

// --- numbers and datetimes ---

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNumberChar(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c == '_' || c == '+' || c == '-' || c == ':' || c == '.'
}

func (p *parser) parseNumberOrDatetime() (Value, *ParseError) {
	line, col := p.line, p.col
	start := p.pos
	for !p.eof() && isNumberChar(p.peek()) {
		p.next()
	}
	token := p.src[start:p.pos]
	if looksLikeDatetime(token) {
		if !validDatetime(token) {
			return nil, p.errf(InvalidDateTime, line, col, "malformed datetime %q", token)
		}
		return Datetime(token), nil
	}
	if !validUnderscores(token) {
		return nil, p.errf(InvalidNumber, line, col, "misplaced underscore in %q", token)
	}
	clean := strings.ReplaceAll(token, "_", "")
	if strings.ContainsAny(clean, ".eE") {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, p.errf(InvalidNumber, line, col, "malformed float %q", token)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return nil, p.errf(InvalidNumber, line, col, "malformed integer %q", token)
	}
	return Integer(i), nil
}

func validUnderscores(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

// looksLikeDatetime reports whether a token has the leading shape of a date
// (dddd-dd-dd) or a time (dd:dd:dd).
func looksLikeDatetime(s string) bool {
	if len(s) >= 10 && allDigits(s[0:4]) && s[4] == '-' && allDigits(s[5:7]) && s[7] == '-' && allDigits(s[8:10]) {
		return true
	}
	if len(s) >= 8 && allDigits(s[0:2]) && s[2] == ':' && allDigits(s[3:5]) && s[5] == ':' {
		return true
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"15:04:05.999999999",
}

func validDatetime(s string) bool {
	// TOML permits a lowercase t separator and z offset
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case 't':
			return 'T'
		case 'z':
			return 'Z'
		}
		return r
	}, s)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, normalized); err == nil {
			return true
		}
	}
	return false
}
