package esd

import (
	"encoding/xml"

	"github.com/data-power-io/esd-documents/schema"
)

// The methods below route encoding/json, goccy/go-json and encoding/xml through the
// policy tables, so omit-if-default rules hold whichever encoder a caller picks.

func (r AssetComponent) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *AssetComponent) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r AssetComponent) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *AssetComponent) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r AttributeValue) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *AttributeValue) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r AttributeValue) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *AttributeValue) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r Attribute) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *Attribute) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r Attribute) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *Attribute) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r CombinationProfile) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *CombinationProfile) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r CombinationProfile) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *CombinationProfile) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r CombinationProfileField) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *CombinationProfileField) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r CombinationProfileField) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *CombinationProfileField) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r FlagMapping) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *FlagMapping) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r FlagMapping) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *FlagMapping) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r PriceLevel) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *PriceLevel) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r PriceLevel) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *PriceLevel) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r ProductAttachment) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *ProductAttachment) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r ProductAttachment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *ProductAttachment) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r ProductCombination) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *ProductCombination) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r ProductCombination) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *ProductCombination) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r ProductCombinationProfile) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *ProductCombinationProfile) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r ProductCombinationProfile) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *ProductCombinationProfile) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r ProductCombinationProfileField) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *ProductCombinationProfileField) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r ProductCombinationProfileField) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *ProductCombinationProfileField) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r ProductKitComponent) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *ProductKitComponent) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r ProductKitComponent) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *ProductKitComponent) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r Taxcode) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *Taxcode) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r Taxcode) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *Taxcode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}

func (r CustomerAccountEnquiryProductPrice) MarshalJSON() ([]byte, error) { return schema.MarshalJSON(&r) }

func (r *CustomerAccountEnquiryProductPrice) UnmarshalJSON(data []byte) error { return schema.UnmarshalJSON(data, r) }

func (r CustomerAccountEnquiryProductPrice) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return schema.MarshalXML(e, start, &r)
}

func (r *CustomerAccountEnquiryProductPrice) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return schema.UnmarshalXML(d, start, r)
}
