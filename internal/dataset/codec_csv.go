package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/abertrand/dsadd/internal/ndarray"
)

// CSVCodec reads and writes two-dimensional datasets as comma-separated
// values: one record per row, axes Y (rows) then X (columns). Rank-1 arrays
// are written as a single record.
type CSVCodec struct{}

// Name returns the codec identifier.
func (*CSVCodec) Name() string { return "csv" }

// Extensions returns the handled file extensions.
func (*CSVCodec) Extensions() []string { return []string{".csv"} }

// Decode reads a 2-D dataset from r. All records must have the same number
// of fields; the csv reader enforces this.
func (*CSVCodec) Decode(r io.Reader) (*ndarray.Array[float64], error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv dataset")
	}

	rows, cols := len(records), len(records[0])
	arr, err := ndarray.New[float64](ndarray.Shape{rows, cols}, []ndarray.Axis{ndarray.AxisY, ndarray.AxisX})
	if err != nil {
		return nil, err
	}

	data := arr.Data()
	for y, record := range records {
		for x, field := range record {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			data[y*cols+x] = value
		}
	}
	return arr, nil
}

// Encode writes a rank-1 or rank-2 array as csv. Higher ranks have no csv
// representation and are rejected.
func (*CSVCodec) Encode(w io.Writer, v ndarray.View) error {
	var rows, cols int
	switch v.Rank() {
	case 1:
		rows, cols = 1, v.Extent(0)
	case 2:
		rows, cols = v.Extent(0), v.Extent(1)
	default:
		return fmt.Errorf("csv cannot represent a rank-%d array", v.Rank())
	}

	cw := csv.NewWriter(w)
	record := make([]string, cols)
	pos := make([]int, v.Rank())
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if v.Rank() == 1 {
				pos[0] = x
			} else {
				pos[0], pos[1] = y, x
			}
			record[x] = strconv.FormatFloat(v.RealAt(pos), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
