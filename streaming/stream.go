// Package streaming writes document records as Apache Arrow IPC streams and reads them back
package streaming

import (
	"fmt"
	"io"
	"reflect"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/data-power-io/esd-documents/schema"
)

// DefaultBatchSize is the number of rows buffered before a record batch is flushed
const DefaultBatchSize = 1000

// RecordWriter buffers rows in an Arrow record builder and flushes them as IPC record batches
type RecordWriter struct {
	schema    *arrow.Schema
	builder   *array.RecordBuilder
	writer    *ipc.Writer
	logger    *zap.Logger
	batchSize int
	pending   int

	recordsWritten int64
	batchesWritten int64
}

// NewRecordWriter creates a writer that streams rows shaped by schema to w
func NewRecordWriter(w io.Writer, sch *arrow.Schema, pool memory.Allocator, logger *zap.Logger) *RecordWriter {
	if pool == nil {
		pool = memory.NewGoAllocator()
	}
	return &RecordWriter{
		schema:    sch,
		builder:   array.NewRecordBuilder(pool, sch),
		writer:    ipc.NewWriter(w, ipc.WithSchema(sch), ipc.WithAllocator(pool)),
		logger:    logger,
		batchSize: DefaultBatchSize,
	}
}

// SetBatchSize sets the batch size for record streaming
func (rw *RecordWriter) SetBatchSize(size int) {
	if size > 0 {
		rw.batchSize = size
	}
}

// Write appends one row; its policy table must match the writer's schema
func (rw *RecordWriter) Write(r schema.Record) error {
	fields := r.Fields()
	if len(fields) != rw.schema.NumFields() {
		return fmt.Errorf("record has %d fields, schema has %d", len(fields), rw.schema.NumFields())
	}

	for i, f := range fields {
		if name := rw.schema.Field(i).Name; name != f.Name {
			return fmt.Errorf("field %d is %s, schema expects %s", i, f.Name, name)
		}
		if err := appendValue(rw.builder.Field(i), f); err != nil {
			return fmt.Errorf("failed to append value for field %s: %w", f.Name, err)
		}
	}

	rw.pending++
	rw.recordsWritten++
	if rw.pending >= rw.batchSize {
		return rw.Flush()
	}
	return nil
}

// Flush writes the buffered rows as one record batch
func (rw *RecordWriter) Flush() error {
	if rw.pending == 0 {
		return nil
	}

	rec := rw.builder.NewRecord()
	defer rec.Release()

	if err := rw.writer.Write(rec); err != nil {
		return fmt.Errorf("failed to write record batch: %w", err)
	}

	rw.batchesWritten++
	if rw.logger != nil {
		rw.logger.Debug("Flushed record batch",
			zap.Int("rows", rw.pending),
			zap.Int64("batches_written", rw.batchesWritten))
	}
	rw.pending = 0
	return nil
}

// Close flushes pending rows and finishes the IPC stream
func (rw *RecordWriter) Close() error {
	defer rw.builder.Release()
	if err := rw.Flush(); err != nil {
		return err
	}
	if err := rw.writer.Close(); err != nil {
		return fmt.Errorf("failed to close IPC writer: %w", err)
	}
	return nil
}

// RecordsWritten returns the number of rows accepted so far
func (rw *RecordWriter) RecordsWritten() int64 {
	return rw.recordsWritten
}

// BatchesWritten returns the number of record batches flushed so far
func (rw *RecordWriter) BatchesWritten() int64 {
	return rw.batchesWritten
}

// appendValue appends a field value to its column builder. Omit-if-default fields
// at their default become nulls.
func appendValue(builder array.Builder, f schema.Field) error {
	v, err := f.Elem()
	if err != nil {
		return err
	}
	if f.Presence == schema.OmitDefault {
		isDefault, err := f.IsDefault()
		if err != nil {
			return err
		}
		if isDefault {
			builder.AppendNull()
			return nil
		}
	}

	switch f.Kind {
	case schema.KindString:
		sb, ok := builder.(*array.StringBuilder)
		if !ok {
			return fmt.Errorf("expected string builder, got %T", builder)
		}
		sb.Append(v.String())
	case schema.KindInt:
		ib, ok := builder.(*array.Int64Builder)
		if !ok {
			return fmt.Errorf("expected int64 builder, got %T", builder)
		}
		ib.Append(v.Int())
	case schema.KindDecimal:
		fb, ok := builder.(*array.Float64Builder)
		if !ok {
			return fmt.Errorf("expected float64 builder, got %T", builder)
		}
		fb.Append(v.Float())
	case schema.KindStrings:
		lb, ok := builder.(*array.ListBuilder)
		if !ok {
			return fmt.Errorf("expected list builder, got %T", builder)
		}
		lb.Append(true)
		sb := lb.ValueBuilder().(*array.StringBuilder)
		for i := 0; i < v.Len(); i++ {
			sb.Append(v.Index(i).String())
		}
	case schema.KindStringTable:
		lb, ok := builder.(*array.ListBuilder)
		if !ok {
			return fmt.Errorf("expected list builder, got %T", builder)
		}
		lb.Append(true)
		rows := lb.ValueBuilder().(*array.ListBuilder)
		cells := rows.ValueBuilder().(*array.StringBuilder)
		for i := 0; i < v.Len(); i++ {
			rows.Append(true)
			row := v.Index(i)
			for j := 0; j < row.Len(); j++ {
				cells.Append(row.Index(j).String())
			}
		}
	case schema.KindRecords:
		sb, ok := builder.(*array.StringBuilder)
		if !ok {
			return fmt.Errorf("expected string builder, got %T", builder)
		}
		data, err := schema.MarshalFieldJSON(f)
		if err != nil {
			return err
		}
		sb.Append(string(data))
	default:
		return fmt.Errorf("kind %s cannot be stored in a column", f.Kind)
	}
	return nil
}

// ReadRecords reads an IPC stream, calling newRecord for each row and emit once the
// row is filled. It returns the stream's schema metadata.
func ReadRecords(r io.Reader, newRecord func() schema.Record, emit func(schema.Record) error) (map[string]string, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create Arrow reader: %w", err)
	}
	defer reader.Release()

	sch := reader.Schema()
	md := sch.Metadata()
	metadata := make(map[string]string, md.Len())
	for i, k := range md.Keys() {
		metadata[k] = md.Values()[i]
	}

	for reader.Next() {
		rec := reader.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			target := newRecord()
			for _, f := range target.Fields() {
				indices := sch.FieldIndices(f.Name)
				if len(indices) == 0 {
					continue
				}
				col := rec.Column(indices[0])
				if col.IsNull(row) {
					continue
				}
				if err := readValue(col, row, f); err != nil {
					return nil, fmt.Errorf("row %d: field %s: %w", row, f.Name, err)
				}
			}
			if err := emit(target); err != nil {
				return nil, err
			}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record batch: %w", err)
	}

	return metadata, nil
}

// readValue copies one cell into the field's storage
func readValue(col arrow.Array, row int, f schema.Field) error {
	v, err := f.Elem()
	if err != nil {
		return err
	}

	switch f.Kind {
	case schema.KindString:
		a, ok := col.(*array.String)
		if !ok {
			return fmt.Errorf("expected string column, got %T", col)
		}
		v.SetString(a.Value(row))
	case schema.KindInt:
		a, ok := col.(*array.Int64)
		if !ok {
			return fmt.Errorf("expected int64 column, got %T", col)
		}
		v.SetInt(a.Value(row))
	case schema.KindDecimal:
		a, ok := col.(*array.Float64)
		if !ok {
			return fmt.Errorf("expected float64 column, got %T", col)
		}
		v.SetFloat(a.Value(row))
	case schema.KindStrings:
		a, ok := col.(*array.List)
		if !ok {
			return fmt.Errorf("expected list column, got %T", col)
		}
		values := a.ListValues().(*array.String)
		start, end := a.ValueOffsets(row)
		if end == start {
			return nil
		}
		out := reflect.MakeSlice(v.Type(), 0, int(end-start))
		for j := start; j < end; j++ {
			out = reflect.Append(out, reflect.ValueOf(values.Value(int(j))).Convert(v.Type().Elem()))
		}
		v.Set(out)
	case schema.KindStringTable:
		a, ok := col.(*array.List)
		if !ok {
			return fmt.Errorf("expected list column, got %T", col)
		}
		rows := a.ListValues().(*array.List)
		cells := rows.ListValues().(*array.String)
		start, end := a.ValueOffsets(row)
		if end == start {
			return nil
		}
		rowType := v.Type().Elem()
		out := reflect.MakeSlice(v.Type(), 0, int(end-start))
		for j := start; j < end; j++ {
			cellStart, cellEnd := rows.ValueOffsets(int(j))
			r := reflect.MakeSlice(rowType, 0, int(cellEnd-cellStart))
			for k := cellStart; k < cellEnd; k++ {
				r = reflect.Append(r, reflect.ValueOf(cells.Value(int(k))).Convert(rowType.Elem()))
			}
			out = reflect.Append(out, r)
		}
		v.Set(out)
	case schema.KindRecords:
		a, ok := col.(*array.String)
		if !ok {
			return fmt.Errorf("expected string column, got %T", col)
		}
		return schema.UnmarshalFieldJSON([]byte(a.Value(row)), f)
	default:
		return fmt.Errorf("kind %s cannot be read from a column", f.Kind)
	}
	return nil
}
