// Package export writes sweep results as CSV tables and scatter charts.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/soypat/cavity"
)

// Header is the first record of every results table. A fourth
// "error" column is appended when at least one shape failed.
var Header = []string{"m", "n", "volume/cm3"}

const errorColumn = "error"

// WriteCSV writes one record per result in table order. Failed shapes keep
// their row with a NaN volume and their failure reason in the error column.
func WriteCSV(w io.Writer, table cavity.Table) error {
	withErr := table.Failures() > 0
	cw := csv.NewWriter(w)
	header := Header
	if withErr {
		header = append(append([]string(nil), Header...), errorColumn)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	record := make([]string, len(header))
	for _, r := range table {
		record[0] = formatFloat(r.M)
		record[1] = formatFloat(r.N)
		record[2] = formatFloat(r.Volume)
		if withErr {
			record[3] = ""
			if r.Err != nil {
				record[3] = r.Err.Error()
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %v", cavity.ErrExport, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	return nil
}

// CreateCSV writes table to the file at path, truncating it if it exists.
func CreateCSV(path string, table cavity.Table) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	defer func() {
		if cerr := fp.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", cavity.ErrExport, cerr)
		}
	}()
	return WriteCSV(fp, table)
}

// ReadCSV parses a table written by WriteCSV. Failure reasons are restored
// as plain errors carrying only their message.
func ReadCSV(r io.Reader) (cavity.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty table")
	}
	header := records[0]
	withErr := len(header) == len(Header)+1 && header[len(Header)] == errorColumn
	if !withErr && len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("unexpected header %q", header)
		}
	}
	table := make(cavity.Table, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("record %d: got %d fields, want %d", i+1, len(rec), len(header))
		}
		var values [3]float64
		for j := range values {
			values[j], err = strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
		}
		res := cavity.Result{Shape: cavity.Shape{M: values[0], N: values[1]}, Volume: values[2]}
		if withErr && rec[3] != "" {
			res.Err = errors.New(rec[3])
		}
		table = append(table, res)
	}
	return table, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
