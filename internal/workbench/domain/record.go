package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Origin records who last wrote a field.
type Origin uint8

const (
	OriginUnset Origin = iota
	OriginUser
	OriginDefault
	OriginDerived
	OriginImported
)

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginDefault:
		return "default"
	case OriginDerived:
		return "derived"
	case OriginImported:
		return "imported"
	default:
		return "unset"
	}
}

// Field is one attribute value as entered, kept as raw text.
type Field struct {
	Name   string
	Value  string
	Origin Origin
}

// Blank reports whether the field holds no value.
func (f Field) Blank() bool {
	return strings.TrimSpace(f.Value) == ""
}

// Record is an ordered attribute set bound to a single schema. Attributes
// outside the names it was created with cannot be stored.
type Record struct {
	fields []Field
	index  map[string]int
}

func NewRecord(names ...string) *Record {
	r := &Record{
		fields: make([]Field, 0, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for _, n := range names {
		if _, dup := r.index[n]; dup {
			continue
		}
		r.index[n] = len(r.fields)
		r.fields = append(r.fields, Field{Name: n})
	}
	return r
}

func (r *Record) Len() int { return len(r.fields) }

func (r *Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

func (r *Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *Record) Field(name string) (Field, bool) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

// Value returns the raw value of name, or "" when absent.
func (r *Record) Value(name string) string {
	f, _ := r.Field(name)
	return f.Value
}

// Float parses name as a number. Blank or non-numeric values report false.
func (r *Record) Float(name string) (float64, bool) {
	v := strings.TrimSpace(r.Value(name))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (r *Record) Set(name, value string, origin Origin) error {
	i, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	r.fields[i].Value = value
	r.fields[i].Origin = origin
	return nil
}

// Clear blanks name and forgets who wrote it, making it fillable again.
func (r *Record) Clear(name string) error {
	return r.Set(name, "", OriginUnset)
}

func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *Record) Values() map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		out[f.Name] = f.Value
	}
	return out
}

func (r *Record) Clone() *Record {
	c := &Record{
		fields: make([]Field, len(r.fields)),
		index:  make(map[string]int, len(r.index)),
	}
	copy(c.fields, r.fields)
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

// Equal compares attribute names, their order and values. Origins are
// ignored.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i].Name != o.fields[i].Name || r.fields[i].Value != o.fields[i].Value {
			return false
		}
	}
	return true
}
