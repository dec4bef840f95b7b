// Package export renders a TabularResult as text, CSV or Parquet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// Format names accepted by Write.
const (
	FormatText    = "text"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Write renders res in the named format.
func Write(w io.Writer, res *types.TabularResult, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatParquet:
		return WriteParquet(w, res)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteText prints an aligned grid with a leading row index.
func WriteText(w io.Writer, res *types.TabularResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(res.Columns, "\t"))
	for i, row := range res.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatValue(v, "NULL")
		}
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// WriteCSV writes a header row followed by one record per row. NULL becomes
// an empty field.
func WriteCSV(w io.Writer, res *types.TabularResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range res.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v, "")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any, null string) string {
	switch x := v.(type) {
	case nil:
		return null
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
