package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecMetrics_Encode(t *testing.T) {
	m := NewCodecMetrics("test-encode")
	m.RecordEncode("taxcode", "json", 3, 120, 5*time.Millisecond)
	m.RecordEncode("taxcode", "json", 2, 80, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(DocumentsEncoded.WithLabelValues("test-encode", "taxcode", "json")))
	assert.Equal(t, 5.0, testutil.ToFloat64(RecordsProcessed.WithLabelValues("test-encode", "taxcode", DirectionEncode)))
	assert.Equal(t, 200.0, testutil.ToFloat64(BytesProcessed.WithLabelValues("test-encode", "taxcode", "json", DirectionEncode)))
}

func TestCodecMetrics_Decode(t *testing.T) {
	m := NewCodecMetrics("test-decode")
	m.RecordDecode("price-level", "xml", 4, 512, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(DocumentsDecoded.WithLabelValues("test-decode", "price-level", "xml")))
	assert.Equal(t, 4.0, testutil.ToFloat64(RecordsProcessed.WithLabelValues("test-decode", "price-level", DirectionDecode)))
	assert.Equal(t, 0.0, testutil.ToFloat64(RecordsProcessed.WithLabelValues("test-decode", "price-level", DirectionEncode)))
}

func TestCodecMetrics_ErrorsAndQuality(t *testing.T) {
	m := NewCodecMetrics("test-errors")
	m.RecordError("taxcode", "arrow", "decode")
	m.RecordDataQualityIssue("product-combination-profile", "parallel_array_length")
	m.RecordDataQualityIssue("product-combination-profile", "parallel_array_length")

	assert.Equal(t, 1.0, testutil.ToFloat64(ErrorsTotal.WithLabelValues("test-errors", "taxcode", "arrow", "decode")))
	assert.Equal(t, 2.0, testutil.ToFloat64(DataQualityIssues.WithLabelValues("test-errors", "product-combination-profile", "parallel_array_length")))
}

func TestWriteTextfile(t *testing.T) {
	NewCodecMetrics("test-textfile").RecordEncode("attribute", "json", 1, 10, time.Millisecond)

	path := filepath.Join(t.TempDir(), "esd.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `esd_documents_encoded_total{component="test-textfile",document="attribute",format="json"} 1`)
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}
