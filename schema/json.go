package schema

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes a record as a JSON object following its policy table
func MarshalJSON(r Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, r Record) error {
	buf.WriteByte('{')
	first := true
	for _, f := range r.Fields() {
		v, err := f.value()
		if err != nil {
			return err
		}
		if f.Presence == OmitDefault && isDefault(v) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(f.Name)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		if err := writeJSONValue(buf, f, v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, f Field, v reflect.Value) error {
	switch f.Kind {
	case KindString:
		b, err := json.Marshal(v.String())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindDecimal:
		b, err := json.Marshal(v.Float())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindStrings, KindStringTable:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindStringMap:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindRecords:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			rec, err := recordAt(v, i)
			if err != nil {
				return err
			}
			if err := writeJSON(buf, rec); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind)
	}
	return nil
}

// UnmarshalJSON decodes a JSON object into a record. Absent and null keys leave the
// field at its default; unknown keys are ignored.
func UnmarshalJSON(data []byte, r Record) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, f := range r.Fields() {
		msg, ok := raw[f.Name]
		if !ok || isJSONNull(msg) {
			continue
		}
		v, err := f.value()
		if err != nil {
			return err
		}
		if err := readJSONValue(msg, f, v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

func readJSONValue(msg json.RawMessage, f Field, v reflect.Value) error {
	switch f.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return err
		}
		v.SetString(s)
	case KindInt:
		if len(msg) > 0 && msg[0] == '"' {
			var name string
			if err := json.Unmarshal(msg, &name); err != nil {
				return err
			}
			return setIntFromText(v, name)
		}
		var n int64
		if err := json.Unmarshal(msg, &n); err != nil {
			return err
		}
		v.SetInt(n)
	case KindDecimal:
		var x float64
		if err := json.Unmarshal(msg, &x); err != nil {
			return err
		}
		v.SetFloat(x)
	case KindStrings, KindStringTable, KindStringMap:
		ptr := reflect.New(v.Type())
		if err := json.Unmarshal(msg, ptr.Interface()); err != nil {
			return err
		}
		if ptr.Elem().Len() > 0 {
			v.Set(ptr.Elem())
		}
	case KindRecords:
		var items []json.RawMessage
		if err := json.Unmarshal(msg, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		slice := reflect.MakeSlice(v.Type(), 0, len(items))
		for i, item := range items {
			elem, rec, err := newElement(v.Type())
			if err != nil {
				return err
			}
			if err := UnmarshalJSON(item, rec); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
			slice = reflect.Append(slice, elem)
		}
		v.Set(slice)
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind)
	}
	return nil
}

// setIntFromText fills an integer field from text, using the type's own
// TextUnmarshaler (named enum constants) before falling back to a decimal parse
func setIntFromText(v reflect.Value, text string) error {
	if v.CanAddr() {
		if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return tu.UnmarshalText([]byte(text))
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", text)
	}
	v.SetInt(n)
	return nil
}

func isJSONNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

// MarshalFieldJSON encodes only the value of one field
func MarshalFieldJSON(f Field) ([]byte, error) {
	v, err := f.value()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, f, v); err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalFieldJSON decodes a JSON value into one field
func UnmarshalFieldJSON(data []byte, f Field) error {
	if isJSONNull(data) {
		return nil
	}
	v, err := f.value()
	if err != nil {
		return err
	}
	if err := readJSONValue(data, f, v); err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	return nil
}
