package esd

import "github.com/data-power-io/esd-documents/schema"

// CombinationProfile groups the combination fields used to build labour or download variants
type CombinationProfile struct {
	KeyComboProfileID string
	ProfileName       string
	Description       string
	CombinationFields []CombinationProfileField
	Drop              Drop
	InternalID        string
}

// Fields returns the serialization policy table
func (r *CombinationProfile) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyComboProfileID", &r.KeyComboProfileID),
		schema.OptString("profileName", &r.ProfileName),
		schema.OptString("description", &r.Description),
		{Name: "combinationFields", Kind: schema.KindRecords, Presence: schema.Always, Item: "combinationField", Value: &r.CombinationFields},
		schema.OptInt("drop", &r.Drop),
		schema.OptString("internalID", &r.InternalID),
	}
}

// CombinationProfileField is one named field of a combination profile.
// FieldValues[i] is the label of FieldValueIDs[i]; callers keep both the same length.
type CombinationProfileField struct {
	KeyComboProfileFieldID string
	FieldName              string
	Ordering               int
	FieldValues            []string
	FieldValueIDs          []string
	Drop                   Drop
}

// Fields returns the serialization policy table
func (r *CombinationProfileField) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyComboProfileFieldID", &r.KeyComboProfileFieldID),
		schema.OptString("fieldName", &r.FieldName),
		schema.OptInt("ordering", &r.Ordering),
		{Name: "fieldValues", Kind: schema.KindStrings, Presence: schema.Always, Value: &r.FieldValues},
		{Name: "fieldValueIDs", Kind: schema.KindStrings, Presence: schema.Always, Parallel: "fieldValues", Value: &r.FieldValueIDs},
		schema.OptInt("drop", &r.Drop),
	}
}

// ProductCombination maps a product to the values it takes in each combination field
type ProductCombination struct {
	KeyProductID             string
	KeyProductComboProfileID string
	// FieldValueCombinations holds [field ID, value ID] style pairs
	FieldValueCombinations [][]string
	Drop                   Drop
}

// Fields returns the serialization policy table
func (r *ProductCombination) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyProductID", &r.KeyProductID),
		schema.OptString("keyProductComboProfileID", &r.KeyProductComboProfileID),
		{Name: "fieldValueCombinations", Kind: schema.KindStringTable, Presence: schema.OmitDefault, Item: "combination", Value: &r.FieldValueCombinations},
		schema.OptInt("drop", &r.Drop),
	}
}

// ProductCombinationProfile is the combination schema a product's variants are built from
type ProductCombinationProfile struct {
	KeyProductComboProfileID string
	ProfileName              string
	Description              string
	CombinationFields        []ProductCombinationProfileField
	Drop                     Drop
}

// Fields returns the serialization policy table
func (r *ProductCombinationProfile) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyProductComboProfileID", &r.KeyProductComboProfileID),
		schema.OptString("profileName", &r.ProfileName),
		schema.OptString("description", &r.Description),
		{Name: "combinationFields", Kind: schema.KindRecords, Presence: schema.Always, Item: "combinationField", Value: &r.CombinationFields},
		schema.OptInt("drop", &r.Drop),
	}
}

// ProductCombinationProfileField is one named field of a product combination profile.
// FieldValues[i] is the label of FieldValueIDs[i]; callers keep both the same length.
type ProductCombinationProfileField struct {
	KeyProductComboProfileFieldID string
	FieldName                     string
	Ordering                      int
	FieldValues                   []string
	FieldValueIDs                 []string
	Drop                          Drop
}

// Fields returns the serialization policy table
func (r *ProductCombinationProfileField) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyProductComboProfileFieldID", &r.KeyProductComboProfileFieldID),
		schema.OptString("fieldName", &r.FieldName),
		schema.OptInt("ordering", &r.Ordering),
		{Name: "fieldValues", Kind: schema.KindStrings, Presence: schema.Always, Value: &r.FieldValues},
		{Name: "fieldValueIDs", Kind: schema.KindStrings, Presence: schema.Always, Parallel: "fieldValues", Value: &r.FieldValueIDs},
		schema.OptInt("drop", &r.Drop),
	}
}
