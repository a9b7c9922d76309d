package schema

import (
	"encoding/xml"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// level exercises named integer decoding
type level int

func (l *level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "LOW":
		*l = 1
	case "HIGH":
		*l = 2
	default:
		return fmt.Errorf("unknown level %q", text)
	}
	return nil
}

type child struct {
	Name string
}

func (c *child) Fields() []Field {
	return []Field{String("name", &c.Name)}
}

type item struct {
	ID       string
	Label    string
	Code     level
	Rate     float64
	Tags     []string
	TagIDs   []string
	Grid     [][]string
	Props    map[string]string
	Children []child
}

func (r *item) Fields() []Field {
	return []Field{
		String("id", &r.ID),
		OptString("label", &r.Label),
		OptInt("code", &r.Code),
		OptDecimal("rate", &r.Rate),
		{Name: "tags", Kind: KindStrings, Presence: Always, Value: &r.Tags},
		{Name: "tagIDs", Kind: KindStrings, Presence: Always, Parallel: "tags", Value: &r.TagIDs},
		{Name: "grid", Kind: KindStringTable, Presence: OmitDefault, Item: "row", Value: &r.Grid},
		{Name: "props", Kind: KindStringMap, Presence: OmitDefault, Item: "prop", Value: &r.Props},
		{Name: "children", Kind: KindRecords, Presence: Always, Item: "child", Value: &r.Children},
	}
}

func (r item) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return MarshalXML(e, start, &r)
}

func (r *item) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return UnmarshalXML(d, start, r)
}

func populatedItem() item {
	return item{
		ID:       "a",
		Label:    "A",
		Code:     2,
		Rate:     1.5,
		Tags:     []string{"x", "y"},
		TagIDs:   []string{"1", "2"},
		Grid:     [][]string{{"p", "q"}},
		Props:    map[string]string{"k": "v"},
		Children: []child{{Name: "c"}},
	}
}

func TestEmitted(t *testing.T) {
	t.Run("default record emits only always fields", func(t *testing.T) {
		var r item
		names, err := Emitted(&r)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "tags", "tagIDs", "children"}, names)
	})

	t.Run("populated record emits every field in table order", func(t *testing.T) {
		r := populatedItem()
		names, err := Emitted(&r)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "label", "code", "rate", "tags", "tagIDs", "grid", "props", "children"}, names)
	})

	t.Run("nil storage is an error", func(t *testing.T) {
		_, err := Emitted(badRecord{})
		assert.Error(t, err)
	})
}

type badRecord struct{}

func (badRecord) Fields() []Field {
	return []Field{{Name: "broken", Kind: KindString}}
}

func TestLookup(t *testing.T) {
	r := populatedItem()

	f, ok := Lookup(&r, "rate")
	require.True(t, ok)
	assert.Equal(t, KindDecimal, f.Kind)
	assert.Equal(t, OmitDefault, f.Presence)

	isDefault, err := f.IsDefault()
	require.NoError(t, err)
	assert.False(t, isDefault)

	_, ok = Lookup(&r, "missing")
	assert.False(t, ok)
}

func TestParallelMismatches(t *testing.T) {
	t.Run("equal lengths", func(t *testing.T) {
		r := populatedItem()
		assert.Empty(t, ParallelMismatches(&r))
	})

	t.Run("different lengths are reported", func(t *testing.T) {
		r := populatedItem()
		r.TagIDs = []string{"1"}
		assert.Equal(t, []string{"tags has 2 entries but tagIDs has 1"}, ParallelMismatches(&r))
	})

	t.Run("both empty", func(t *testing.T) {
		var r item
		assert.Empty(t, ParallelMismatches(&r))
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "integer", KindInt.String())
	assert.Equal(t, "record_list", KindRecords.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
