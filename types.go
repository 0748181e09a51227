package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Fields holds the JSON members of a record, excluding its id.
type Fields map[string]any

// Record is one item in a kind's collection.
// It encodes as a flat JSON object with "id" first, then the kind's declared
// fields in declaration order, then any other members in lexical order.
type Record struct {
	ID     int
	Fields Fields

	order []string
}

// NewRecord returns a record whose declared fields are encoded in the given order.
func NewRecord(id int, fields Fields, order []string) Record {
	if fields == nil {
		fields = Fields{}
	}
	return Record{ID: id, Fields: fields, order: order}
}

// Clone returns a shallow copy of the record. Nested values are shared.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Fields: maps.Clone(r.Fields), order: r.order}
}

// String returns the named field as a string, or "" if absent or not a string.
func (r Record) String(key string) string {
	s, _ := r.Fields[key].(string)
	return s
}

// Keys returns the member names in encoding order, excluding "id".
func (r Record) Keys() []string {
	seen := make(map[string]bool, len(r.Fields))
	keys := make([]string, 0, len(r.Fields))
	for _, k := range r.order {
		if _, ok := r.Fields[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	extra := make([]string, 0, len(r.Fields)-len(keys))
	for k := range r.Fields {
		if !seen[k] && k != "id" {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	return append(keys, extra...)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	buf.WriteString(strconv.Itoa(r.ID))

	for _, k := range r.Keys() {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal record %d: %w", r.ID, err)
		}
		val, err := json.Marshal(r.Fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal record %d field %s: %w", r.ID, k, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat record object. Numbers are kept as
// json.Number. A JSON null leaves the record unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if raw == nil {
		return errors.New("unmarshal record: not an object")
	}

	r.ID = 0
	if v, ok := raw["id"]; ok {
		n, isNum := v.(json.Number)
		if !isNum {
			return fmt.Errorf("unmarshal record: id must be a number, got %T", v)
		}
		id, err := strconv.Atoi(n.String())
		if err != nil {
			return fmt.Errorf("unmarshal record: invalid id %s: %w", n, err)
		}
		r.ID = id
		delete(raw, "id")
	}

	r.Fields = Fields(raw)
	r.order = nil
	return nil
}

// Kind describes a resource type served under /{Name}.
type Kind struct {
	// Name is the route segment, e.g. "users".
	Name string
	// Label prefixes the not-found message, e.g. "user" gives "user not found".
	Label string
	// Fields lists the declared members in display order.
	Fields []string
	// Seed holds the records loaded at startup; ids are assigned 1..n.
	Seed []Fields
}

// NotFoundMessage is the message returned when a record of this kind is missing.
func (k Kind) NotFoundMessage() string {
	return k.Label + " not found"
}

// Validate checks that the kind can be registered.
func (k Kind) Validate() error {
	if !IsValidKindName(k.Name) {
		return fmt.Errorf("validate kind: invalid name: %q (must match ^[a-z][a-z0-9_-]*$ and be <= 63 chars)", k.Name)
	}
	if k.Label == "" {
		return fmt.Errorf("validate kind %s: label cannot be empty", k.Name)
	}
	return nil
}

// Kinds is an ordered set of registered kinds.
type Kinds []Kind

// Lookup returns the kind with the given name.
func (ks Kinds) Lookup(name string) (Kind, bool) {
	for _, k := range ks {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Names returns the kind names in registration order.
func (ks Kinds) Names() []string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.Name
	}
	return names
}

// Validate checks every kind and rejects duplicate names.
func (ks Kinds) Validate() error {
	if len(ks) == 0 {
		return errors.New("validate kinds: at least one kind is required")
	}
	seen := make(map[string]bool, len(ks))
	for _, k := range ks {
		if err := k.Validate(); err != nil {
			return err
		}
		if seen[k.Name] {
			return fmt.Errorf("validate kinds: duplicate kind: %s", k.Name)
		}
		seen[k.Name] = true
	}
	return nil
}

// Select returns the subset of kinds named in names, in the order given.
func (ks Kinds) Select(names []string) (Kinds, error) {
	selected := make(Kinds, 0, len(names))
	for _, name := range names {
		k, ok := ks.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("select kinds: %w: %s (available: %v)", ErrUnknownKind, name, ks.Names())
		}
		selected = append(selected, k)
	}
	return selected, nil
}

// IDStrategy controls how a collection assigns ids to new records.
type IDStrategy string

const (
	// IDSequence assigns ids from a counter that never goes backwards.
	IDSequence IDStrategy = "sequence"
	// IDLength assigns len(collection)+1. Ids can repeat after a deletion.
	IDLength IDStrategy = "length"
)

func (s IDStrategy) IsValid() bool {
	switch s {
	case IDSequence, IDLength:
		return true
	default:
		return false
	}
}

func ParseIDStrategy(s string) (IDStrategy, error) {
	strategy := IDStrategy(s)
	if !strategy.IsValid() {
		return "", fmt.Errorf("invalid id strategy: %s (valid strategies: sequence, length)", s)
	}
	return strategy, nil
}
