package checkpoint

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decimals is the fixed number of decimal places written per value.
const Decimals = 6

// WriteMatrix writes ny rows of nx space-separated values, row 0 first,
// each value with Decimals decimal places. vals is row-major.
func WriteMatrix(w io.Writer, vals []float64, nx, ny int) error {
	if len(vals) != nx*ny {
		return formatErrorf(0, "have %d values for a %dx%d matrix", len(vals), ny, nx)
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			buf = appendValue(buf[:0], vals[i*nx+j])
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// appendValue formats like printf's %.6f, spelling non-finite values in
// lower case so other readers of the format accept them.
func appendValue(buf []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(buf, "nan"...)
	case math.IsInf(v, 1):
		return append(buf, "inf"...)
	case math.IsInf(v, -1):
		return append(buf, "-inf"...)
	}
	return strconv.AppendFloat(buf, v, 'f', Decimals, 64)
}

// ReadMatrix parses a whitespace-delimited matrix. Blank lines and lines
// starting with '#' are skipped. Every row must have the same number of
// values.
func ReadMatrix(r io.Reader) (vals []float64, nx, ny int, err error) {
	err = scanRows(r, func(line int, fields []string) error {
		if ny == 0 {
			nx = len(fields)
		} else if len(fields) != nx {
			return columnError(line, nx, len(fields))
		}
		row, err := parseRow(line, fields)
		if err != nil {
			return err
		}
		vals = append(vals, row...)
		ny++
		return nil
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return vals, nx, ny, nil
}

// scanRows calls fn with the fields of every non-blank, non-comment line.
func scanRows(r io.Reader, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseRow(line int, fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for k, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, formatErrorf(line, "value %d: %v", k+1, err)
		}
		row[k] = v
	}
	return row, nil
}
