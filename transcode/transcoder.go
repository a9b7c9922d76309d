// Package transcode decodes and encodes documents across the supported wire formats,
// recording metrics and data quality findings along the way
package transcode

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/data-power-io/esd-documents/esd"
	"github.com/data-power-io/esd-documents/logging"
	"github.com/data-power-io/esd-documents/metrics"
	"github.com/data-power-io/esd-documents/schema"
	"github.com/data-power-io/esd-documents/streaming"
)

// Format is a document wire format
type Format string

const (
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatArrow Format = "arrow"
)

// SupportedFormats lists every format the transcoder reads and writes
var SupportedFormats = []Format{FormatJSON, FormatXML, FormatArrow}

// ErrUnsupportedFormat is returned for unknown format names
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SupportedFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Issue type recorded for parallel arrays of different lengths
const IssueParallelArrayLength = "parallel_array_length"

// Options tunes encoding output
type Options struct {
	XMLIndent      bool
	ArrowBatchSize int
}

// Transcoder moves documents between formats
type Transcoder struct {
	logger  *logging.Logger
	metrics *metrics.CodecMetrics
	schemas *schema.ArrowSchemaManager
	opts    Options
}

// NewTranscoder creates a transcoder; a nil logger discards log output
func NewTranscoder(logger *logging.Logger, m *metrics.CodecMetrics, opts Options) *Transcoder {
	if logger == nil {
		logger = logging.NewNop()
	}
	if m == nil {
		m = metrics.NewCodecMetrics("transcode")
	}
	if opts.ArrowBatchSize <= 0 {
		opts.ArrowBatchSize = streaming.DefaultBatchSize
	}
	return &Transcoder{
		logger:  logger,
		metrics: m,
		schemas: schema.NewArrowSchemaManager(),
		opts:    opts,
	}
}

// Decode reads one document of docType from r
func (t *Transcoder) Decode(ctx context.Context, docType esd.DocumentType, format Format, r io.Reader) (esd.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := esd.NewEnvelope(docType)
	if err != nil {
		return nil, err
	}

	timer := metrics.NewTimer()
	counter := &countingReader{r: r}

	switch format {
	case FormatJSON, FormatXML:
		data, readErr := io.ReadAll(counter)
		if readErr != nil {
			err = fmt.Errorf("failed to read %s payload: %w", format, readErr)
			break
		}
		if format == FormatJSON {
			err = schema.UnmarshalJSON(data, env)
		} else {
			err = xml.Unmarshal(data, env)
		}
	case FormatArrow:
		err = t.decodeArrow(counter, env)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if err != nil {
		t.metrics.RecordError(string(docType), string(format), "decode")
		return nil, fmt.Errorf("failed to decode %s document as %s: %w", docType, format, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	duration := timer.Duration()
	t.metrics.RecordDecode(string(docType), string(format), env.Len(), counter.n, duration)

	logger := t.logger.WithDocument(string(docType))
	logger.LogCodecEvent("decoded", map[string]interface{}{
		"format":  string(format),
		"records": env.Len(),
		"bytes":   counter.n,
		"status":  env.Status().String(),
	})
	logger.LogPerformanceMetric("decode_duration", duration.Seconds(), "seconds")

	t.CheckDataQuality(docType, env)
	return env, nil
}

func (t *Transcoder) decodeArrow(r io.Reader, env esd.Envelope) error {
	md, err := streaming.ReadRecords(r, env.NewRecord, env.Append)
	if err != nil {
		return err
	}
	status, message, configs, err := streaming.DecodeMetadata(md)
	if err != nil {
		return err
	}
	env.SetMeta(esd.ResultStatus(status), message, configs)
	return nil
}

// Encode writes env to w in the given format
func (t *Transcoder) Encode(ctx context.Context, docType esd.DocumentType, env esd.Envelope, format Format, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := metrics.NewTimer()
	counter := &countingWriter{w: w}

	var err error
	switch format {
	case FormatJSON:
		err = t.encodeJSON(counter, env)
	case FormatXML:
		err = t.encodeXML(counter, env)
	case FormatArrow:
		err = t.encodeArrow(counter, env)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if err != nil {
		t.metrics.RecordError(string(docType), string(format), "encode")
		return fmt.Errorf("failed to encode %s document as %s: %w", docType, format, err)
	}

	duration := timer.Duration()
	t.metrics.RecordEncode(string(docType), string(format), env.Len(), counter.n, duration)

	logger := t.logger.WithDocument(string(docType))
	logger.LogCodecEvent("encoded", map[string]interface{}{
		"format":  string(format),
		"records": env.Len(),
		"bytes":   counter.n,
	})
	logger.LogPerformanceMetric("encode_duration", duration.Seconds(), "seconds")
	return nil
}

func (t *Transcoder) encodeJSON(w io.Writer, env esd.Envelope) error {
	data, err := schema.MarshalJSON(env)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func (t *Transcoder) encodeXML(w io.Writer, env esd.Envelope) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if t.opts.XMLIndent {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(env); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (t *Transcoder) encodeArrow(w io.Writer, env esd.Envelope) error {
	md := streaming.EncodeMetadata(int(env.Status()), env.Text(), env.Metadata())
	sch, err := t.schemas.RecordSchema(env.NewRecord(), md)
	if err != nil {
		return err
	}

	rw := streaming.NewRecordWriter(w, sch, nil, t.logger.Logger)
	rw.SetBatchSize(t.opts.ArrowBatchSize)
	for i, rec := range env.Records() {
		if err := rw.Write(rec); err != nil {
			_ = rw.Close()
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return rw.Close()
}

// Convert decodes r as from and re-encodes the same document to w as to
func (t *Transcoder) Convert(ctx context.Context, docType esd.DocumentType, from, to Format, r io.Reader, w io.Writer) error {
	env, err := t.Decode(ctx, docType, from, r)
	if err != nil {
		return err
	}
	return t.Encode(ctx, docType, env, to, w)
}

// CheckDataQuality logs, counts and returns parallel-array length mismatches; it never fails
func (t *Transcoder) CheckDataQuality(docType esd.DocumentType, env esd.Envelope) []string {
	var issues []string
	for i, rec := range env.Records() {
		for _, issue := range schema.ParallelMismatches(rec) {
			issues = append(issues, fmt.Sprintf("dataRecords[%d].%s", i, issue))
		}
	}

	if len(issues) > 0 {
		logger := t.logger.WithDocument(string(docType))
		for _, issue := range issues {
			logger.LogDataQualityEvent(string(docType), issue, "warning")
			t.metrics.RecordDataQualityIssue(string(docType), IssueParallelArrayLength)
		}
		logger.Warn("Document has data quality issues", zap.Int("issues", len(issues)))
	}
	return issues
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
