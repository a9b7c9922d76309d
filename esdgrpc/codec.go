// Package esdgrpc lets gRPC services carry documents as JSON or XML message bodies.
// Importing the package registers both codecs; clients select one per call with
// JSONCallOption or XMLCallOption.
package esdgrpc

import (
	"encoding/xml"
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/data-power-io/esd-documents/schema"
)

// Content subtypes; they appear on the wire as application/grpc+<name>
const (
	JSONCodecName = "esdjson"
	XMLCodecName  = "esdxml"
)

func init() {
	encoding.RegisterCodec(JSONCodec{})
	encoding.RegisterCodec(XMLCodec{})
}

// JSONCodec marshals documents and records with their JSON policy tables
type JSONCodec struct{}

// Name implements encoding.Codec
func (JSONCodec) Name() string { return JSONCodecName }

// Marshal implements encoding.Codec
func (JSONCodec) Marshal(v any) ([]byte, error) {
	if r, ok := v.(schema.Record); ok {
		return schema.MarshalJSON(r)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("esdjson: %w", err)
	}
	return data, nil
}

// Unmarshal implements encoding.Codec
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if r, ok := v.(schema.Record); ok {
		return schema.UnmarshalJSON(data, r)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("esdjson: %w", err)
	}
	return nil
}

// XMLCodec marshals documents and records with their XML policy tables
type XMLCodec struct{}

// Name implements encoding.Codec
func (XMLCodec) Name() string { return XMLCodecName }

// Marshal implements encoding.Codec
func (XMLCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("esdxml: %w", err)
	}
	return data, nil
}

// Unmarshal implements encoding.Codec
func (XMLCodec) Unmarshal(data []byte, v any) error {
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("esdxml: %w", err)
	}
	return nil
}

// JSONCallOption selects the JSON codec for a call
func JSONCallOption() grpc.CallOption {
	return grpc.CallContentSubtype(JSONCodecName)
}

// XMLCallOption selects the XML codec for a call
func XMLCallOption() grpc.CallOption {
	return grpc.CallContentSubtype(XMLCodecName)
}
