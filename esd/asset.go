package esd

import "github.com/data-power-io/esd-documents/schema"

// AssetComponent links a child asset into a parent asset
type AssetComponent struct {
	KeyAssetID      string
	KeyCategoryID   string
	KeyChildAssetID string
	Attributes      []AttributeValue
	Drop            Drop
	InternalID      string
}

// Fields returns the serialization policy table
func (r *AssetComponent) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyAssetID", &r.KeyAssetID),
		schema.OptString("keyCategoryID", &r.KeyCategoryID),
		schema.OptString("keyChildAssetID", &r.KeyChildAssetID),
		{Name: "attributes", Kind: schema.KindRecords, Presence: schema.OmitDefault, Item: "attribute", Value: &r.Attributes},
		schema.OptInt("drop", &r.Drop),
		schema.OptString("internalID", &r.InternalID),
	}
}

// AttributeValue is the value one entity holds for a custom attribute
type AttributeValue struct {
	KeyAttributeID string
	StringValue    string
	NumberValue    float64
}

// Fields returns the serialization policy table
func (r *AttributeValue) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyAttributeID", &r.KeyAttributeID),
		schema.OptString("stringValue", &r.StringValue),
		schema.OptDecimal("numberValue", &r.NumberValue),
	}
}

// Attribute defines a typed custom field
type Attribute struct {
	KeyAttributeID string
	Name           string
	DataType       DataType
	Drop           Drop
	InternalID     string
}

// NewAttribute creates an attribute definition
func NewAttribute(keyAttributeID, name string, dataType DataType) Attribute {
	return Attribute{
		KeyAttributeID: keyAttributeID,
		Name:           name,
		DataType:       dataType,
	}
}

// Fields returns the serialization policy table
func (r *Attribute) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyAttributeID", &r.KeyAttributeID),
		schema.OptString("name", &r.Name),
		{Name: "dataType", Kind: schema.KindString, Presence: schema.OmitDefault, Value: &r.DataType},
		schema.OptInt("drop", &r.Drop),
		schema.OptString("internalID", &r.InternalID),
	}
}
