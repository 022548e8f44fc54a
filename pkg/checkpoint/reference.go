package checkpoint

import (
	"fmt"
	"io"
	"os"
)

// ReferenceName returns the file name of the reference solution for step.
func ReferenceName(step int) string { return fmt.Sprintf("%05d.txt", step) }

// Reference is one reference solution: u, v and p stacked as three blocks of
// NumY rows each, in that order.
type Reference struct {
	NumX, NumY int
	U, V, P    []float64
}

// ReadReference parses a stacked reference file for an nx by ny grid. At
// least 3*ny rows of nx values are required; rows after the third block
// are ignored.
func ReadReference(r io.Reader, nx, ny int) (*Reference, error) {
	want := 3 * ny
	vals := make([]float64, 0, want*nx)
	rows := 0
	err := scanRows(r, func(line int, fields []string) error {
		rows++
		if rows > want {
			return nil
		}
		if len(fields) != nx {
			return columnError(line, nx, len(fields))
		}
		row, err := parseRow(line, fields)
		if err != nil {
			return err
		}
		vals = append(vals, row...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows < want {
		fe := formatErrorf(0, "expected at least %d rows but found %d rows", want, rows)
		fe.Want, fe.Got = want, rows
		return nil, fe
	}

	block := nx * ny
	return &Reference{
		NumX: nx,
		NumY: ny,
		U:    vals[:block],
		V:    vals[block : 2*block],
		P:    vals[2*block : 3*block],
	}, nil
}

// ReadReferenceFile opens path and parses it with ReadReference.
func ReadReferenceFile(path string, nx, ny int) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ref, err := ReadReference(f, nx, ny)
	return ref, withPath(err, path)
}
