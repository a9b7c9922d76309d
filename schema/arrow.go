package schema

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/goccy/go-json"
)

// Field metadata keys carried on Arrow fields
const (
	MetaKind     = "esd.kind"
	MetaPresence = "esd.presence"
)

// ArrowSchemaManager derives Apache Arrow schemas from record policy tables
type ArrowSchemaManager struct{}

// NewArrowSchemaManager creates a new Arrow schema manager
func NewArrowSchemaManager() *ArrowSchemaManager {
	return &ArrowSchemaManager{}
}

// RecordSchema builds the Arrow schema of one row of r. Always-emitted scalars are
// non-nullable; everything that may be omitted on the wire is nullable.
func (m *ArrowSchemaManager) RecordSchema(r Record, metadata map[string]string) (*arrow.Schema, error) {
	fields := r.Fields()
	arrowFields := make([]arrow.Field, 0, len(fields))
	for _, f := range fields {
		dataType, err := m.kindToArrowType(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		presence := "always"
		if f.Presence == OmitDefault {
			presence = "omit_default"
		}
		arrowFields = append(arrowFields, arrow.Field{
			Name:     f.Name,
			Type:     dataType,
			Nullable: f.Presence == OmitDefault || f.Kind == KindRecords || f.Kind == KindStrings || f.Kind == KindStringTable,
			Metadata: arrow.NewMetadata(
				[]string{MetaKind, MetaPresence},
				[]string{f.Kind.String(), presence},
			),
		})
	}

	var md *arrow.Metadata
	if len(metadata) > 0 {
		keys := make([]string, 0, len(metadata))
		values := make([]string, 0, len(metadata))
		for k, v := range metadata {
			keys = append(keys, k)
			values = append(values, v)
		}
		meta := arrow.NewMetadata(keys, values)
		md = &meta
	}
	return arrow.NewSchema(arrowFields, md), nil
}

// kindToArrowType maps a field kind to its column type. Nested records travel as JSON text.
func (m *ArrowSchemaManager) kindToArrowType(kind Kind) (arrow.DataType, error) {
	switch kind {
	case KindString, KindRecords:
		return arrow.BinaryTypes.String, nil
	case KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case KindDecimal:
		return arrow.PrimitiveTypes.Float64, nil
	case KindStrings:
		return arrow.ListOf(arrow.BinaryTypes.String), nil
	case KindStringTable:
		return arrow.ListOf(arrow.ListOf(arrow.BinaryTypes.String)), nil
	default:
		return nil, fmt.Errorf("kind %s has no column mapping", kind)
	}
}

// SchemaToJSON converts an Arrow schema to a JSON description
func (m *ArrowSchemaManager) SchemaToJSON(schema *arrow.Schema) (string, error) {
	type fieldJSON struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Kind     string `json:"kind,omitempty"`
		Presence string `json:"presence,omitempty"`
		Nullable bool   `json:"nullable"`
	}

	fields := make([]fieldJSON, 0, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		field := schema.Field(i)
		fj := fieldJSON{
			Name:     field.Name,
			Type:     m.arrowTypeToJSONType(field.Type),
			Nullable: field.Nullable,
		}
		if idx := field.Metadata.FindKey(MetaKind); idx >= 0 {
			fj.Kind = field.Metadata.Values()[idx]
		}
		if idx := field.Metadata.FindKey(MetaPresence); idx >= 0 {
			fj.Presence = field.Metadata.Values()[idx]
		}
		fields = append(fields, fj)
	}

	jsonBytes, err := json.MarshalIndent(map[string]interface{}{
		"type":   "object",
		"fields": fields,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// arrowTypeToJSONType converts Arrow types to JSON schema types
func (m *ArrowSchemaManager) arrowTypeToJSONType(arrowType arrow.DataType) string {
	switch arrowType.ID() {
	case arrow.STRING:
		return "string"
	case arrow.INT64:
		return "integer"
	case arrow.FLOAT64:
		return "number"
	case arrow.LIST:
		return "array"
	default:
		return "string"
	}
}

// ArrowSchemaToBytes serializes an Arrow schema to bytes for storage in payload
func (m *ArrowSchemaManager) ArrowSchemaToBytes(schema *arrow.Schema) ([]byte, error) {
	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(schema))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize Arrow schema: %w", err)
	}
	return buf.Bytes(), nil
}

// ArrowSchemaFromBytes deserializes an Arrow schema from bytes
func (m *ArrowSchemaManager) ArrowSchemaFromBytes(data []byte) (*arrow.Schema, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create Arrow reader: %w", err)
	}
	defer reader.Release()
	return reader.Schema(), nil
}
