package streaming

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/data-power-io/esd-documents/esd"
	"github.com/data-power-io/esd-documents/schema"
)

func writeStream[T any](t *testing.T, records []T, md map[string]string, batchSize int) (*bytes.Buffer, *RecordWriter) {
	t.Helper()

	var doc esd.Document[T]
	sch, err := schema.NewArrowSchemaManager().RecordSchema(doc.NewRecord(), md)
	require.NoError(t, err)

	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, sch, nil, zap.NewNop())
	rw.SetBatchSize(batchSize)
	for i := range records {
		rec, ok := any(&records[i]).(schema.Record)
		require.True(t, ok)
		require.NoError(t, rw.Write(rec))
	}
	require.NoError(t, rw.Close())
	return &buf, rw
}

func readStream[T any](t *testing.T, buf *bytes.Buffer) (esd.Document[T], map[string]string) {
	t.Helper()

	var doc esd.Document[T]
	md, err := ReadRecords(buf, doc.NewRecord, doc.Append)
	require.NoError(t, err)
	return doc, md
}

func TestRecordWriter_RoundTrip(t *testing.T) {
	t.Run("taxcodes", func(t *testing.T) {
		want := []esd.Taxcode{
			esd.NewTaxcode("GST", "GST", "GST 10%", "Goods and services tax", 10),
			{KeyTaxcodeID: "FREE", Drop: esd.DropDelete},
		}
		buf, rw := writeStream(t, want, nil, 1)
		assert.Equal(t, int64(2), rw.RecordsWritten())
		assert.Equal(t, int64(2), rw.BatchesWritten())

		doc, _ := readStream[esd.Taxcode](t, buf)
		assert.Equal(t, want, doc.DataRecords)
	})

	t.Run("lists and tables", func(t *testing.T) {
		want := []esd.ProductCombination{
			{
				KeyProductID:             "P1",
				KeyProductComboProfileID: "CS",
				FieldValueCombinations:   [][]string{{"COLOUR", "R"}, {"SIZE", "L"}},
			},
			{KeyProductID: "P2"},
		}
		buf, _ := writeStream(t, want, nil, 10)

		doc, _ := readStream[esd.ProductCombination](t, buf)
		assert.Equal(t, want, doc.DataRecords)
	})

	t.Run("nested records", func(t *testing.T) {
		want := []esd.ProductCombinationProfile{
			{
				KeyProductComboProfileID: "CS",
				CombinationFields: []esd.ProductCombinationProfileField{{
					KeyProductComboProfileFieldID: "COLOUR",
					FieldValues:                   []string{"Red", "Blue"},
					FieldValueIDs:                 []string{"R", "B"},
				}},
			},
			{KeyProductComboProfileID: "EMPTY"},
		}
		buf, _ := writeStream(t, want, nil, 10)

		doc, _ := readStream[esd.ProductCombinationProfile](t, buf)
		assert.Equal(t, want, doc.DataRecords)
	})

	t.Run("metadata travels with the schema", func(t *testing.T) {
		md := EncodeMetadata(1, "OK", map[string]string{"page": "1"})
		buf, _ := writeStream(t, []esd.PriceLevel{esd.NewPriceLevel("R", "Retail")}, md, 10)

		_, got := readStream[esd.PriceLevel](t, buf)
		status, message, configs, err := DecodeMetadata(got)
		require.NoError(t, err)
		assert.Equal(t, 1, status)
		assert.Equal(t, "OK", message)
		assert.Equal(t, map[string]string{"page": "1"}, configs)
	})

	t.Run("no records", func(t *testing.T) {
		buf, rw := writeStream[esd.PriceLevel](t, nil, nil, 10)
		assert.Equal(t, int64(0), rw.BatchesWritten())

		doc, _ := readStream[esd.PriceLevel](t, buf)
		assert.Empty(t, doc.DataRecords)
	})
}

func TestRecordWriter_SchemaMismatch(t *testing.T) {
	var doc esd.PriceLevelDocument
	sch, err := schema.NewArrowSchemaManager().RecordSchema(doc.NewRecord(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, sch, nil, nil)
	err = rw.Write(&esd.Taxcode{})
	assert.Error(t, err)
}

func TestDecodeMetadata(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		status, message, configs, err := DecodeMetadata(map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, 0, status)
		assert.Empty(t, message)
		assert.Nil(t, configs)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, _, _, err := DecodeMetadata(map[string]string{MetaResultStatus: "ok"})
		assert.Error(t, err)
	})

	t.Run("message omitted when empty", func(t *testing.T) {
		md := EncodeMetadata(2, "", nil)
		assert.Equal(t, map[string]string{MetaResultStatus: "2"}, md)
	})
}
