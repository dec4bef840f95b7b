package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// ToArrow converts res into an Arrow table. Each column's type is inferred
// from its non-null values; columns holding mixed kinds become strings.
// The caller must Release the returned table.
func ToArrow(res *types.TabularResult, mem memory.Allocator) (arrow.Table, error) {
	fields := make([]arrow.Field, len(res.Columns))
	cols := make([]arrow.Column, 0, len(res.Columns))
	defer func() {
		for i := range cols {
			cols[i].Release()
		}
	}()

	for i, name := range res.Columns {
		dt := inferType(res, i)
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: true}

		arr, err := buildArray(mem, dt, res, i)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		chunked := arrow.NewChunked(dt, []arrow.Array{arr})
		cols = append(cols, *arrow.NewColumn(fields[i], chunked))
		chunked.Release()
		arr.Release()
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, cols, int64(len(res.Rows))), nil
}

// WriteParquet writes res as a Snappy-compressed Parquet file.
func WriteParquet(w io.Writer, res *types.TabularResult) error {
	table, err := ToArrow(res, memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(table, max(table.NumRows(), 1)); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return writer.Close()
}

func inferType(res *types.TabularResult, col int) arrow.DataType {
	var dt arrow.DataType
	for _, row := range res.Rows {
		var next arrow.DataType
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			next = arrow.PrimitiveTypes.Int64
		case float64:
			next = arrow.PrimitiveTypes.Float64
		case bool:
			next = arrow.FixedWidthTypes.Boolean
		case []byte:
			next = arrow.BinaryTypes.Binary
		default:
			next = arrow.BinaryTypes.String
		}
		if dt == nil {
			dt = next
		} else if !arrow.TypeEqual(dt, next) {
			return arrow.BinaryTypes.String
		}
	}
	if dt == nil {
		return arrow.BinaryTypes.String
	}
	return dt
}

func buildArray(mem memory.Allocator, dt arrow.DataType, res *types.TabularResult, col int) (arrow.Array, error) {
	b := array.NewBuilder(mem, dt)
	defer b.Release()

	for _, row := range res.Rows {
		v := row[col]
		if v == nil {
			b.AppendNull()
			continue
		}
		switch bb := b.(type) {
		case *array.Int64Builder:
			bb.Append(v.(int64))
		case *array.Float64Builder:
			bb.Append(v.(float64))
		case *array.BooleanBuilder:
			bb.Append(v.(bool))
		case *array.BinaryBuilder:
			bb.Append(v.([]byte))
		case *array.StringBuilder:
			bb.Append(formatValue(v, ""))
		default:
			return nil, fmt.Errorf("unsupported arrow type %s", dt)
		}
	}
	return b.NewArray(), nil
}
