// Package esd defines the Ecommerce Standards Documents record catalogue and the
// document envelope that carries records between systems
package esd

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/data-power-io/esd-documents/schema"
)

// ErrUnknownDocumentType is returned for document type slugs missing from the registry
var ErrUnknownDocumentType = errors.New("unknown document type")

// Document wraps an ordered array of one record type with the producer's outcome metadata.
// *T must implement schema.Record; every record type in this package does.
type Document[T any] struct {
	ResultStatus ResultStatus
	Message      string
	Configs      map[string]string
	DataRecords  []T
}

// NewDocument stores its arguments as given. records and configs are neither copied nor modified.
func NewDocument[T any](resultStatus ResultStatus, message string, records []T, configs map[string]string) Document[T] {
	return Document[T]{
		ResultStatus: resultStatus,
		Message:      message,
		Configs:      configs,
		DataRecords:  records,
	}
}

// Fields returns the serialization policy table
func (d *Document[T]) Fields() []schema.Field {
	return []schema.Field{
		schema.Int("resultStatus", &d.ResultStatus),
		schema.OptString("message", &d.Message),
		{Name: "configs", Kind: schema.KindStringMap, Presence: schema.OmitDefault, Item: "config", Value: &d.Configs},
		{Name: "dataRecords", Kind: schema.KindRecords, Presence: schema.Always, Item: "dataRecord", Value: &d.DataRecords},
	}
}

func (d Document[T]) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&d) }

func (d *Document[T]) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, d) }

// MarshalXML writes the document; a generic type name is not a valid XML name, so the
// root element falls back to "document" when no explicit name was given
func (d Document[T]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" || strings.ContainsAny(start.Name.Local, "[]") {
		start.Name = xml.Name{Local: "document"}
	}
	return schema.MarshalXML(e, start, &d)
}

func (d *Document[T]) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(dec, start, d)
}

// Status returns the document result status
func (d *Document[T]) Status() ResultStatus { return d.ResultStatus }

// Text returns the document message
func (d *Document[T]) Text() string { return d.Message }

// Metadata returns the document configs map
func (d *Document[T]) Metadata() map[string]string { return d.Configs }

// SetMeta replaces result status, message and configs
func (d *Document[T]) SetMeta(status ResultStatus, message string, configs map[string]string) {
	d.ResultStatus = status
	d.Message = message
	d.Configs = configs
}

// Len returns the number of data records
func (d *Document[T]) Len() int { return len(d.DataRecords) }

// Records returns a Record view of every data record, in order. The views alias the slice.
func (d *Document[T]) Records() []schema.Record {
	out := make([]schema.Record, 0, len(d.DataRecords))
	for i := range d.DataRecords {
		if rec, ok := any(&d.DataRecords[i]).(schema.Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

// NewRecord allocates an empty record of the document's record type
func (d *Document[T]) NewRecord() schema.Record {
	rec, _ := any(new(T)).(schema.Record)
	return rec
}

// Append adds a record allocated by NewRecord to the end of the document
func (d *Document[T]) Append(r schema.Record) error {
	p, ok := any(r).(*T)
	if !ok {
		return fmt.Errorf("cannot append %T to document of %T", r, *new(T))
	}
	d.DataRecords = append(d.DataRecords, *p)
	return nil
}

// Envelope is the type-erased view of a Document used by tooling that works across
// document types
type Envelope interface {
	schema.Record
	Status() ResultStatus
	Text() string
	Metadata() map[string]string
	SetMeta(status ResultStatus, message string, configs map[string]string)
	Len() int
	Records() []schema.Record
	NewRecord() schema.Record
	Append(r schema.Record) error
}

// One document type per record family
type (
	AssetComponentDocument                     = Document[AssetComponent]
	AttributeDocument                          = Document[Attribute]
	CombinationProfileDocument                 = Document[CombinationProfile]
	FlagMappingDocument                        = Document[FlagMapping]
	PriceLevelDocument                         = Document[PriceLevel]
	ProductAttachmentDocument                  = Document[ProductAttachment]
	ProductCombinationDocument                 = Document[ProductCombination]
	ProductCombinationProfileDocument          = Document[ProductCombinationProfile]
	ProductKitComponentDocument                = Document[ProductKitComponent]
	TaxcodeDocument                            = Document[Taxcode]
	CustomerAccountEnquiryProductPriceDocument = Document[CustomerAccountEnquiryProductPrice]
)

// NewCustomerAccountEnquiryProductPriceDocument creates a customer account enquiry product price document
func NewCustomerAccountEnquiryProductPriceDocument(resultStatus ResultStatus, message string, records []CustomerAccountEnquiryProductPrice, configs map[string]string) CustomerAccountEnquiryProductPriceDocument {
	return NewDocument(resultStatus, message, records, configs)
}

// DocumentType identifies a document family by slug
type DocumentType string

const (
	DocumentAssetComponents                     DocumentType = "asset-component"
	DocumentAttributes                          DocumentType = "attribute"
	DocumentCombinationProfiles                 DocumentType = "combination-profile"
	DocumentFlagMappings                        DocumentType = "flag-mapping"
	DocumentPriceLevels                         DocumentType = "price-level"
	DocumentProductAttachments                  DocumentType = "product-attachment"
	DocumentProductCombinations                 DocumentType = "product-combination"
	DocumentProductCombinationProfiles          DocumentType = "product-combination-profile"
	DocumentProductKitComponents                DocumentType = "product-kit-component"
	DocumentTaxcodes                            DocumentType = "taxcode"
	DocumentCustomerAccountEnquiryProductPrices DocumentType = "customer-account-enquiry-product-price"
)

// SupportedDocumentTypes lists every registered document type
var SupportedDocumentTypes = []DocumentType{
	DocumentAssetComponents,
	DocumentAttributes,
	DocumentCombinationProfiles,
	DocumentFlagMappings,
	DocumentPriceLevels,
	DocumentProductAttachments,
	DocumentProductCombinations,
	DocumentProductCombinationProfiles,
	DocumentProductKitComponents,
	DocumentTaxcodes,
	DocumentCustomerAccountEnquiryProductPrices,
}

// NewEnvelope returns an empty document of the given type
func NewEnvelope(t DocumentType) (Envelope, error) {
	switch t {
	case DocumentAssetComponents:
		return &AssetComponentDocument{}, nil
	case DocumentAttributes:
		return &AttributeDocument{}, nil
	case DocumentCombinationProfiles:
		return &CombinationProfileDocument{}, nil
	case DocumentFlagMappings:
		return &FlagMappingDocument{}, nil
	case DocumentPriceLevels:
		return &PriceLevelDocument{}, nil
	case DocumentProductAttachments:
		return &ProductAttachmentDocument{}, nil
	case DocumentProductCombinations:
		return &ProductCombinationDocument{}, nil
	case DocumentProductCombinationProfiles:
		return &ProductCombinationProfileDocument{}, nil
	case DocumentProductKitComponents:
		return &ProductKitComponentDocument{}, nil
	case DocumentTaxcodes:
		return &TaxcodeDocument{}, nil
	case DocumentCustomerAccountEnquiryProductPrices:
		return &CustomerAccountEnquiryProductPriceDocument{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(t))
	}
}
