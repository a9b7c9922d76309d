package schema

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const mapKeyAttr = "key"

// MarshalXML writes a record as the children of start following its policy table.
// Lists are wrapped in an element named after the field with one child per item.
func MarshalXML(e *xml.Encoder, start xml.StartElement, r Record) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range r.Fields() {
		v, err := f.value()
		if err != nil {
			return err
		}
		if f.Presence == OmitDefault && isDefault(v) {
			continue
		}
		if err := writeXMLValue(e, f, v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return e.EncodeToken(start.End())
}

func writeXMLValue(e *xml.Encoder, f Field, v reflect.Value) error {
	el := xml.StartElement{Name: xml.Name{Local: f.Name}}
	item := xml.StartElement{Name: xml.Name{Local: f.itemName()}}

	switch f.Kind {
	case KindString:
		if err := checkXMLText(v.String()); err != nil {
			return err
		}
		return e.EncodeElement(v.String(), el)
	case KindInt:
		return e.EncodeElement(strconv.FormatInt(v.Int(), 10), el)
	case KindDecimal:
		return e.EncodeElement(strconv.FormatFloat(v.Float(), 'g', -1, 64), el)
	}

	if err := e.EncodeToken(el); err != nil {
		return err
	}
	switch f.Kind {
	case KindStrings:
		for i := 0; i < v.Len(); i++ {
			if err := checkXMLText(v.Index(i).String()); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
			if err := e.EncodeElement(v.Index(i).String(), item); err != nil {
				return err
			}
		}
	case KindStringTable:
		cell := xml.StartElement{Name: xml.Name{Local: "value"}}
		for i := 0; i < v.Len(); i++ {
			if err := e.EncodeToken(item); err != nil {
				return err
			}
			row := v.Index(i)
			for j := 0; j < row.Len(); j++ {
				if err := checkXMLText(row.Index(j).String()); err != nil {
					return fmt.Errorf("row %d cell %d: %w", i, j, err)
				}
				if err := e.EncodeElement(row.Index(j).String(), cell); err != nil {
					return err
				}
			}
			if err := e.EncodeToken(item.End()); err != nil {
				return err
			}
		}
	case KindStringMap:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			val := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
			if err := checkXMLText(k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			if err := checkXMLText(val.String()); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			entry := item.Copy()
			entry.Attr = []xml.Attr{{Name: xml.Name{Local: mapKeyAttr}, Value: k}}
			if err := e.EncodeElement(val.String(), entry); err != nil {
				return err
			}
		}
	case KindRecords:
		for i := 0; i < v.Len(); i++ {
			rec, err := recordAt(v, i)
			if err != nil {
				return err
			}
			if err := MarshalXML(e, item, rec); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind)
	}
	return e.EncodeToken(el.End())
}

// UnmarshalXML reads the children of start into a record. Unknown elements are skipped.
func UnmarshalXML(d *xml.Decoder, start xml.StartElement, r Record) error {
	fields := r.Fields()
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			f, ok := byName[t.Name.Local]
			if !ok {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			v, err := f.value()
			if err != nil {
				return err
			}
			if err := readXMLValue(d, t, f, v); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func readXMLValue(d *xml.Decoder, start xml.StartElement, f Field, v reflect.Value) error {
	switch f.Kind {
	case KindString:
		var s string
		if err := d.DecodeElement(&s, &start); err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case KindInt:
		var s string
		if err := d.DecodeElement(&s, &start); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			v.SetInt(n)
			return nil
		}
		return setIntFromText(v, s)
	case KindDecimal:
		var s string
		if err := d.DecodeElement(&s, &start); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid decimal %q", s)
		}
		v.SetFloat(x)
		return nil
	case KindStrings:
		slice := reflect.MakeSlice(v.Type(), 0, 0)
		err := readChildren(d, func(item xml.StartElement) error {
			var s string
			if err := d.DecodeElement(&s, &item); err != nil {
				return err
			}
			slice = reflect.Append(slice, reflect.ValueOf(s).Convert(v.Type().Elem()))
			return nil
		})
		if err != nil {
			return err
		}
		if slice.Len() > 0 {
			v.Set(slice)
		}
		return nil
	case KindStringTable:
		slice := reflect.MakeSlice(v.Type(), 0, 0)
		rowType := v.Type().Elem()
		err := readChildren(d, func(xml.StartElement) error {
			row := reflect.MakeSlice(rowType, 0, 0)
			err := readChildren(d, func(cell xml.StartElement) error {
				var s string
				if err := d.DecodeElement(&s, &cell); err != nil {
					return err
				}
				row = reflect.Append(row, reflect.ValueOf(s).Convert(rowType.Elem()))
				return nil
			})
			if err != nil {
				return err
			}
			slice = reflect.Append(slice, row)
			return nil
		})
		if err != nil {
			return err
		}
		if slice.Len() > 0 {
			v.Set(slice)
		}
		return nil
	case KindStringMap:
		m := reflect.MakeMap(v.Type())
		err := readChildren(d, func(item xml.StartElement) error {
			key := ""
			for _, a := range item.Attr {
				if a.Name.Local == mapKeyAttr {
					key = a.Value
				}
			}
			var s string
			if err := d.DecodeElement(&s, &item); err != nil {
				return err
			}
			m.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), reflect.ValueOf(s).Convert(v.Type().Elem()))
			return nil
		})
		if err != nil {
			return err
		}
		if m.Len() > 0 {
			v.Set(m)
		}
		return nil
	case KindRecords:
		slice := reflect.MakeSlice(v.Type(), 0, 0)
		err := readChildren(d, func(item xml.StartElement) error {
			elem, rec, err := newElement(v.Type())
			if err != nil {
				return err
			}
			if err := UnmarshalXML(d, item, rec); err != nil {
				return fmt.Errorf("index %d: %w", slice.Len(), err)
			}
			slice = reflect.Append(slice, elem)
			return nil
		})
		if err != nil {
			return err
		}
		if slice.Len() > 0 {
			v.Set(slice)
		}
		return nil
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind)
	}
}

// checkXMLText rejects text that XML 1.0 cannot carry; encoding/xml would
// otherwise replace it with U+FFFD
func checkXMLText(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// readChildren calls fn for every child element until the enclosing end element.
// fn must consume the whole child.
func readChildren(d *xml.Decoder, fn func(xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t.Copy()); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}
