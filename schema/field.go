// Package schema describes record shapes as explicit per-field tables and provides
// the generic codecs (JSON, XML, Arrow) that consume them
package schema

import (
	"fmt"
	"reflect"
)

// Kind is the value kind stored behind a Field
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDecimal
	KindStrings
	KindStringTable
	KindStringMap
	KindRecords
)

// String returns the kind name used in schema descriptions
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindStrings:
		return "string_list"
	case KindStringTable:
		return "string_table"
	case KindStringMap:
		return "string_map"
	case KindRecords:
		return "record_list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Presence controls whether a field is written when it holds its default value
type Presence int

const (
	// Always fields are written even when empty or zero
	Always Presence = iota
	// OmitDefault fields are left out entirely when empty or zero
	OmitDefault
)

// Field is one entry of a record's serialization policy table.
// Value must be a non-nil pointer to the backing struct field.
type Field struct {
	Name     string
	Kind     Kind
	Presence Presence
	// Item names list elements in XML output; "value" when empty
	Item string
	// Parallel names a list field whose length must match this one
	Parallel string
	Value    any
}

// Record is implemented by every type that exposes a policy table.
// Fields must return pointers into the receiver so decoders can fill it.
type Record interface {
	Fields() []Field
}

// String builds an always-emitted string field
func String(name string, p *string) Field {
	return Field{Name: name, Kind: KindString, Presence: Always, Value: p}
}

// OptString builds an omit-if-empty string field
func OptString(name string, p *string) Field {
	return Field{Name: name, Kind: KindString, Presence: OmitDefault, Value: p}
}

// Int builds an always-emitted integer field; p may point to any integer-kinded type
func Int(name string, p any) Field {
	return Field{Name: name, Kind: KindInt, Presence: Always, Value: p}
}

// OptInt builds an omit-if-zero integer field
func OptInt(name string, p any) Field {
	return Field{Name: name, Kind: KindInt, Presence: OmitDefault, Value: p}
}

// OptDecimal builds an omit-if-zero decimal field
func OptDecimal(name string, p *float64) Field {
	return Field{Name: name, Kind: KindDecimal, Presence: OmitDefault, Value: p}
}

func (f Field) itemName() string {
	if f.Item == "" {
		return "value"
	}
	return f.Item
}

func (f Field) value() (reflect.Value, error) {
	rv := reflect.ValueOf(f.Value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("field %s: storage must be a non-nil pointer, got %T", f.Name, f.Value)
	}
	return rv.Elem(), nil
}

// isDefault reports whether v holds the zero value of its kind; empty lists and maps count as default
func isDefault(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

// recordAt returns the element at index i of a record slice as a Record
func recordAt(slice reflect.Value, i int) (Record, error) {
	elem := slice.Index(i)
	if elem.Kind() == reflect.Pointer {
		if rec, ok := elem.Interface().(Record); ok && !elem.IsNil() {
			return rec, nil
		}
		return nil, fmt.Errorf("element %d of %s is not a record", i, slice.Type())
	}
	if rec, ok := elem.Addr().Interface().(Record); ok {
		return rec, nil
	}
	return nil, fmt.Errorf("element type %s does not implement schema.Record", elem.Type())
}

// newElement allocates a fresh slice element and returns it with its Record view
func newElement(sliceType reflect.Type) (reflect.Value, Record, error) {
	elemType := sliceType.Elem()
	if elemType.Kind() == reflect.Pointer {
		ptr := reflect.New(elemType.Elem())
		rec, ok := ptr.Interface().(Record)
		if !ok {
			return reflect.Value{}, nil, fmt.Errorf("element type %s does not implement schema.Record", elemType)
		}
		return ptr, rec, nil
	}
	ptr := reflect.New(elemType)
	rec, ok := ptr.Interface().(Record)
	if !ok {
		return reflect.Value{}, nil, fmt.Errorf("element type %s does not implement schema.Record", elemType)
	}
	return ptr.Elem(), rec, nil
}

// Lookup returns the field with the given wire name
func Lookup(r Record, name string) (Field, bool) {
	for _, f := range r.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Emitted lists the wire names a record would write, in table order
func Emitted(r Record) ([]string, error) {
	var names []string
	for _, f := range r.Fields() {
		v, err := f.value()
		if err != nil {
			return nil, err
		}
		if f.Presence == OmitDefault && isDefault(v) {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// ParallelMismatches reports every pair of parallel list fields whose lengths differ,
// descending into nested records. The codecs never enforce this; it is for callers that lint.
func ParallelMismatches(r Record) []string {
	var issues []string
	collectMismatches(r, "", &issues)
	return issues
}

func collectMismatches(r Record, prefix string, issues *[]string) {
	fields := r.Fields()
	lengths := make(map[string]int, len(fields))
	for _, f := range fields {
		v, err := f.value()
		if err != nil {
			continue
		}
		if f.Kind == KindStrings || f.Kind == KindStringTable || f.Kind == KindRecords {
			lengths[f.Name] = v.Len()
		}
		if f.Kind == KindRecords {
			for i := 0; i < v.Len(); i++ {
				child, err := recordAt(v, i)
				if err != nil {
					continue
				}
				collectMismatches(child, fmt.Sprintf("%s%s[%d].", prefix, f.Name, i), issues)
			}
		}
	}
	for _, f := range fields {
		if f.Parallel == "" {
			continue
		}
		other, ok := lengths[f.Parallel]
		if !ok {
			continue
		}
		if lengths[f.Name] != other {
			*issues = append(*issues, fmt.Sprintf("%s%s has %d entries but %s%s has %d",
				prefix, f.Parallel, other, prefix, f.Name, lengths[f.Name]))
		}
	}
}

// Elem returns the settable value behind the field's storage pointer
func (f Field) Elem() (reflect.Value, error) {
	return f.value()
}

// IsDefault reports whether the field currently holds its default value
func (f Field) IsDefault() (bool, error) {
	v, err := f.value()
	if err != nil {
		return false, err
	}
	return isDefault(v), nil
}
