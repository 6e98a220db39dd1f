package toml

import "strconv"

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindTable
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a single node of a parsed document tree.
type Value interface {
	Kind() Kind
}

// String is a TOML string value.
type String string

// Integer is a TOML integer value.
type Integer int64

// Float is a TOML float value.
type Float float64

// Boolean is a TOML boolean value.
type Boolean bool

// Datetime holds the raw RFC 3339-shaped text of a datetime. Consumers
// never compute on datetimes, so the text is kept verbatim.
type Datetime string

// Array is an ordered sequence of values.
type Array []Value

func (String) Kind() Kind   { return KindString }
func (Integer) Kind() Kind  { return KindInteger }
func (Float) Kind() Kind    { return KindFloat }
func (Boolean) Kind() Kind  { return KindBoolean }
func (Datetime) Kind() Kind { return KindDatetime }
func (Array) Kind() Kind    { return KindArray }

// Table is a key/value mapping that preserves insertion order.
type Table struct {
	keys  []string
	items map[string]Value
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{items: make(map[string]Value)}
}

func (*Table) Kind() Kind { return KindTable }

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.items[key]
	return ok
}

// Set stores v under key, appending the key if it is new.
func (t *Table) Set(key string, v Value) {
	if _, ok := t.items[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

// GetPath descends through nested tables following the given key sequence.
func (t *Table) GetPath(path ...string) (Value, bool) {
	var cur Value = t
	for _, key := range path {
		tbl, ok := cur.(*Table)
		if !ok {
			return nil, false
		}
		cur, ok = tbl.Get(key)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Equal reports structural equality of two value trees. Arrays compare
// element-wise in order; tables compare by key set, since serialization
// may lay a table's entries out in a different order than they were
// inserted.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Integer:
		return av == b.(Integer)
	case Float:
		return av == b.(Float)
	case Boolean:
		return av == b.(Boolean)
	case Datetime:
		return av == b.(Datetime)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Table:
		bv := b.(*Table)
		if av.Len() != bv.Len() {
			return false
		}
		for key, val := range av.items {
			other, ok := bv.items[key]
			if !ok || !Equal(val, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToInterface projects a value tree onto plain Go types (string, int64,
// float64, bool, []any, map[string]any) so that any serializer can consume
// a document without knowing the Value types.
func ToInterface(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Integer:
		return int64(val)
	case Float:
		return float64(val)
	case Boolean:
		return bool(val)
	case Datetime:
		return string(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToInterface(elem)
		}
		return out
	case *Table:
		out := make(map[string]any, val.Len())
		for _, key := range val.keys {
			out[key] = ToInterface(val.items[key])
		}
		return out
	default:
		return nil
	}
}

// Lookup resolves a dotted path against a value tree. Path segments index
// tables by key; a segment consisting of digits indexes an array, so
// "package.keywords.2" selects the third keyword.
func Lookup(v Value, path string) (Value, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range splitPath(path) {
		switch node := cur.(type) {
		case *Table:
			next, ok := node.Get(seg)
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func splitPath(path string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			segs = append(segs, path[start:i])
			start = i + 1
		}
	}
	return append(segs, path[start:])
}
