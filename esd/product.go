package esd

import "github.com/data-power-io/esd-documents/schema"

// FlagMapping attaches a flag to exactly one product, labour or download
type FlagMapping struct {
	KeyFlagID     string
	KeyProductID  string
	KeyLabourID   string
	KeyDownloadID string
	Drop          Drop
}

// NewFlagMapping creates a mapping of a flag onto a product
func NewFlagMapping(keyFlagID, keyProductID string) FlagMapping {
	return FlagMapping{KeyFlagID: keyFlagID, KeyProductID: keyProductID}
}

// Fields returns the serialization policy table
func (r *FlagMapping) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyFlagID", &r.KeyFlagID),
		schema.OptString("keyProductID", &r.KeyProductID),
		schema.OptString("keyLabourID", &r.KeyLabourID),
		schema.OptString("keyDownloadID", &r.KeyDownloadID),
		schema.OptInt("drop", &r.Drop),
	}
}

// PriceLevel is a named pricing tier
type PriceLevel struct {
	KeyPriceLevelID string
	Label           string
	Drop            Drop
}

// NewPriceLevel creates a price level
func NewPriceLevel(keyPriceLevelID, label string) PriceLevel {
	return PriceLevel{KeyPriceLevelID: keyPriceLevelID, Label: label}
}

// Fields returns the serialization policy table
func (r *PriceLevel) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyPriceLevelID", &r.KeyPriceLevelID),
		schema.String("label", &r.Label),
		schema.OptInt("drop", &r.Drop),
	}
}

// ProductAttachment describes a file attached to a product; it never carries file content
type ProductAttachment struct {
	KeyProductAttachmentID string
	KeyProductID           string
	FileName               string
	FileExtension          string
	FullFilePath           string
	Title                  string
	Drop                   Drop
}

// Fields returns the serialization policy table
func (r *ProductAttachment) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyProductAttachmentID", &r.KeyProductAttachmentID),
		schema.OptString("keyProductID", &r.KeyProductID),
		schema.OptString("fileName", &r.FileName),
		schema.OptString("fileExtension", &r.FileExtension),
		schema.OptString("fullFilePath", &r.FullFilePath),
		schema.OptString("title", &r.Title),
		schema.OptInt("drop", &r.Drop),
	}
}

// ProductKitComponent is one bill-of-materials edge from a kit to a component product
type ProductKitComponent struct {
	KeyKitProductID       string
	KeyComponentProductID string
	Quantity              float64
	Ordering              int
	Drop                  Drop
}

// NewProductKitComponent creates a kit component
func NewProductKitComponent(keyKitProductID, keyComponentProductID string, quantity float64, ordering int) ProductKitComponent {
	return ProductKitComponent{
		KeyKitProductID:       keyKitProductID,
		KeyComponentProductID: keyComponentProductID,
		Quantity:              quantity,
		Ordering:              ordering,
	}
}

// Fields returns the serialization policy table
func (r *ProductKitComponent) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyKitProductID", &r.KeyKitProductID),
		schema.String("keyComponentProductID", &r.KeyComponentProductID),
		schema.OptDecimal("quantity", &r.Quantity),
		schema.OptInt("ordering", &r.Ordering),
		schema.OptInt("drop", &r.Drop),
	}
}

// Taxcode defines a tax rate
type Taxcode struct {
	KeyTaxcodeID          string
	Taxcode               string
	TaxcodeLabel          string
	Description           string
	TaxcodePercentageRate float64
	Drop                  Drop
	InternalID            string
}

// NewTaxcode creates a taxcode
func NewTaxcode(keyTaxcodeID, taxcode, taxcodeLabel, description string, taxcodePercentageRate float64) Taxcode {
	return Taxcode{
		KeyTaxcodeID:          keyTaxcodeID,
		Taxcode:               taxcode,
		TaxcodeLabel:          taxcodeLabel,
		Description:           description,
		TaxcodePercentageRate: taxcodePercentageRate,
	}
}

// Fields returns the serialization policy table
func (r *Taxcode) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyTaxcodeID", &r.KeyTaxcodeID),
		schema.OptString("taxcode", &r.Taxcode),
		schema.OptString("taxcodeLabel", &r.TaxcodeLabel),
		schema.OptString("description", &r.Description),
		schema.OptDecimal("taxcodePercentageRate", &r.TaxcodePercentageRate),
		schema.OptInt("drop", &r.Drop),
		schema.OptString("internalID", &r.InternalID),
	}
}

// CustomerAccountEnquiryProductPrice is the price a customer account pays for a product
type CustomerAccountEnquiryProductPrice struct {
	KeyCustomerAccountID string
	KeyProductID         string
	KeyPriceLevelID      string
	KeySellUnitID        string
	ProductCode          string
	Price                float64
	// Quantity is the minimum quantity the price applies from
	Quantity   float64
	InternalID string
}

// Fields returns the serialization policy table
func (r *CustomerAccountEnquiryProductPrice) Fields() []schema.Field {
	return []schema.Field{
		schema.String("keyCustomerAccountID", &r.KeyCustomerAccountID),
		schema.String("keyProductID", &r.KeyProductID),
		schema.OptString("keyPriceLevelID", &r.KeyPriceLevelID),
		schema.OptString("keySellUnitID", &r.KeySellUnitID),
		schema.OptString("productCode", &r.ProductCode),
		schema.OptDecimal("price", &r.Price),
		schema.OptDecimal("quantity", &r.Quantity),
		schema.OptString("internalID", &r.InternalID),
	}
}
