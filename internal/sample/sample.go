// Package sample builds populated example documents for every document type
package sample

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/data-power-io/esd-documents/esd"
	"github.com/data-power-io/esd-documents/schema"
)

// Generator produces sample documents. Keys come from newID so tests can pin them.
type Generator struct {
	newID func() string
}

// NewGenerator creates a generator keyed by random UUIDs
func NewGenerator() *Generator {
	return &Generator{newID: uuid.NewString}
}

// NewGeneratorWithIDs creates a generator with a caller-supplied key source
func NewGeneratorWithIDs(newID func() string) *Generator {
	return &Generator{newID: newID}
}

// Document returns a success document of the given type holding n records
func (g *Generator) Document(t esd.DocumentType, n int) (esd.Envelope, error) {
	env, err := esd.NewEnvelope(t)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if err := env.Append(g.record(t, i)); err != nil {
			return nil, fmt.Errorf("sample %s[%d]: %w", t, i, err)
		}
	}
	env.SetMeta(esd.ResultSuccess, "sample data", map[string]string{
		"generator": "esd sample",
		"count":     strconv.Itoa(n),
	})
	return env, nil
}

func (g *Generator) record(t esd.DocumentType, i int) schema.Record {
	n := strconv.Itoa(i + 1)
	switch t {
	case esd.DocumentAssetComponents:
		return &esd.AssetComponent{
			KeyAssetID:      g.newID(),
			KeyCategoryID:   g.newID(),
			KeyChildAssetID: g.newID(),
			Attributes: []esd.AttributeValue{
				{KeyAttributeID: g.newID(), StringValue: "Serial " + n},
				{KeyAttributeID: g.newID(), NumberValue: float64(i) + 0.5},
			},
			InternalID: "asset-" + n,
		}
	case esd.DocumentAttributes:
		attr := esd.NewAttribute(g.newID(), "Attribute "+n, esd.DataTypeString)
		if i%2 == 1 {
			attr.DataType = esd.DataTypeNumber
		}
		return &attr
	case esd.DocumentCombinationProfiles:
		return &esd.CombinationProfile{
			KeyComboProfileID: g.newID(),
			ProfileName:       "Service Options " + n,
			CombinationFields: []esd.CombinationProfileField{{
				KeyComboProfileFieldID: g.newID(),
				FieldName:              "Duration",
				Ordering:               1,
				FieldValues:            []string{"1 Hour", "2 Hours"},
				FieldValueIDs:          []string{"1H", "2H"},
			}},
		}
	case esd.DocumentFlagMappings:
		m := esd.NewFlagMapping(g.newID(), g.newID())
		return &m
	case esd.DocumentPriceLevels:
		p := esd.NewPriceLevel(g.newID(), "Level "+n)
		return &p
	case esd.DocumentProductAttachments:
		return &esd.ProductAttachment{
			KeyProductAttachmentID: g.newID(),
			KeyProductID:           g.newID(),
			FileName:               "manual-" + n,
			FileExtension:          "pdf",
			FullFilePath:           "/attachments/manual-" + n + ".pdf",
			Title:                  "Product Manual " + n,
		}
	case esd.DocumentProductCombinations:
		return &esd.ProductCombination{
			KeyProductID:             g.newID(),
			KeyProductComboProfileID: "COLOUR-SIZE",
			FieldValueCombinations:   [][]string{{"COLOUR", "R"}, {"SIZE", "L"}},
		}
	case esd.DocumentProductCombinationProfiles:
		return &esd.ProductCombinationProfile{
			KeyProductComboProfileID: g.newID(),
			ProfileName:              "Colour and Size " + n,
			CombinationFields: []esd.ProductCombinationProfileField{
				{
					KeyProductComboProfileFieldID: g.newID(),
					FieldName:                     "Colour",
					Ordering:                      1,
					FieldValues:                   []string{"Red", "Blue"},
					FieldValueIDs:                 []string{"R", "B"},
				},
				{
					KeyProductComboProfileFieldID: g.newID(),
					FieldName:                     "Size",
					Ordering:                      2,
					FieldValues:                   []string{"Small", "Large"},
					FieldValueIDs:                 []string{"S", "L"},
				},
			},
		}
	case esd.DocumentProductKitComponents:
		k := esd.NewProductKitComponent(g.newID(), g.newID(), float64(i+1), i+1)
		return &k
	case esd.DocumentTaxcodes:
		tc := esd.NewTaxcode(g.newID(), "GST"+n, "GST "+n, "Goods and services tax", 10)
		return &tc
	case esd.DocumentCustomerAccountEnquiryProductPrices:
		return &esd.CustomerAccountEnquiryProductPrice{
			KeyCustomerAccountID: g.newID(),
			KeyProductID:         g.newID(),
			KeyPriceLevelID:      "RETAIL",
			ProductCode:          "PROD-" + n,
			Price:                9.95 + float64(i),
			Quantity:             1,
		}
	default:
		return nil
	}
}
