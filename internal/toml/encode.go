package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Marshal renders a document back to TOML text. Within each table, plain
// values are written before subtables so that they stay attached to the
// enclosing header; reparsing the output yields a structurally equal tree.
func Marshal(t *Table) []byte {
	var sb strings.Builder
	encodeTable(&sb, t, nil)
	return []byte(sb.String())
}

func encodeTable(sb *strings.Builder, t *Table, path []string) {
	var sections []string
	for _, key := range t.Keys() {
		v, _ := t.Get(key)
		if isSection(v) {
			sections = append(sections, key)
			continue
		}
		sb.WriteString(encodeKey(key))
		sb.WriteString(" = ")
		encodeValue(sb, v)
		sb.WriteByte('\n')
	}
	for _, key := range sections {
		v, _ := t.Get(key)
		child := append(append([]string(nil), path...), key)
		switch node := v.(type) {
		case *Table:
			sb.WriteByte('\n')
			writeHeader(sb, child, false)
			encodeTable(sb, node, child)
		case Array:
			for _, elem := range node {
				sb.WriteByte('\n')
				writeHeader(sb, child, true)
				encodeTable(sb, elem.(*Table), child)
			}
		}
	}
}

// isSection reports whether a value is rendered with its own header: a
// nested table, or a non-empty array consisting solely of tables.
func isSection(v Value) bool {
	switch node := v.(type) {
	case *Table:
		return true
	case Array:
		if len(node) == 0 {
			return false
		}
		for _, elem := range node {
			if elem.Kind() != KindTable {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func writeHeader(sb *strings.Builder, path []string, aot bool) {
	opening, closing := "[", "]"
	if aot {
		opening, closing = "[[", "]]"
	}
	sb.WriteString(opening)
	for i, key := range path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(encodeKey(key))
	}
	sb.WriteString(closing)
	sb.WriteByte('\n')
}

func encodeValue(sb *strings.Builder, v Value) {
	switch node := v.(type) {
	case String:
		sb.WriteString(quoteString(string(node)))
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(node), 10))
	case Float:
		s := strconv.FormatFloat(float64(node), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	case Boolean:
		sb.WriteString(strconv.FormatBool(bool(node)))
	case Datetime:
		sb.WriteString(string(node))
	case Array:
		sb.WriteByte('[')
		for i, elem := range node {
			if i > 0 {
				sb.WriteString(", ")
			}
			encodeValue(sb, elem)
		}
		sb.WriteByte(']')
	case *Table:
		sb.WriteByte('{')
		for i, key := range node.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(encodeKey(key))
			sb.WriteString(" = ")
			elem, _ := node.Get(key)
			encodeValue(sb, elem)
		}
		sb.WriteByte('}')
	default:
		panic(fmt.Sprintf("toml: cannot encode %T", v))
	}
}

func encodeKey(key string) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		if !isBareKeyChar(key[i]) {
			return quoteString(key)
		}
	}
	return key
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
