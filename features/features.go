// Package features implements dense feature tables: fixed-dimensionality
// numeric vectors indexed by node (or edge-feature row) id.
//
// A Table is a rank-2 row-major block of float32 values, the working dtype of
// the library. For large node tables there is also the half-precision Half
// form, which halves memory at rest and converts losslessly back and forth
// within float16 precision.
package features

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/gographml/messagepassing/internal/xslices"
)

var (
	// ErrDimensionMismatch indicates feature vectors that disagree in length,
	// or a table whose dimensionality doesn't match what an operation
	// requires. Check with errors.Is.
	ErrDimensionMismatch = errors.New("features: dimension mismatch")

	// ErrMissingFeature indicates a referenced node or edge-feature row that
	// has no entry in its table. Check with errors.Is.
	ErrMissingFeature = errors.New("features: missing feature")
)

// Table is a dense feature table: NumRows() vectors, all of dimension Dim(),
// stored contiguously row-major.
type Table struct {
	data []float32
	rows int
	dim  int
}

// Zeros creates a Table of the given size with all values zero.
// Negative sizes are a programming error and panic. A dim of zero is valid,
// it makes a table of empty vectors.
func Zeros(rows, dim int) *Table {
	if rows < 0 || dim < 0 {
		Panicf("Zeros(rows=%d, dim=%d): sizes must be non-negative", rows, dim)
	}
	return &Table{
		data: make([]float32, rows*dim),
		rows: rows,
		dim:  dim,
	}
}

// FromSlices creates a Table from one slice per row.
// All rows must have the same length, otherwise it returns an error matching
// ErrDimensionMismatch. The input is copied, not retained.
func FromSlices(values [][]float32) (*Table, error) {
	return FromNumeric(values)
}

// FromNumeric is the generic form of FromSlices: it accepts rows of any
// float type and converts them to the Table's float32 working dtype.
func FromNumeric[T constraints.Float](values [][]T) (*Table, error) {
	if len(values) == 0 {
		return Zeros(0, 0), nil
	}
	dim := len(values[0])
	t := Zeros(len(values), dim)
	for row, vector := range values {
		if len(vector) != dim {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"row %d has %d values, but row 0 has %d", row, len(vector), dim)
		}
		rowData := t.Row(int32(row))
		for col, value := range vector {
			rowData[col] = float32(value)
		}
	}
	return t, nil
}

// NumRows of the table.
func (t *Table) NumRows() int { return t.rows }

// Dim is the length shared by every row vector.
func (t *Table) Dim() int { return t.dim }

// Row returns the vector at the given row as a view: modifying it modifies
// the Table. An out-of-range row is a programming error and panics -- use
// NumRows to check coverage first.
func (t *Table) Row(row int32) []float32 {
	if row < 0 || int(row) >= t.rows {
		Panicf("invalid row %d for Table with %d rows", row, t.rows)
	}
	start := int(row) * t.dim
	return t.data[start : start+t.dim]
}

// SetRow copies values into the given row.
// It returns an error matching ErrDimensionMismatch if the length differs
// from the Table's dimension.
func (t *Table) SetRow(row int32, values []float32) error {
	if len(values) != t.dim {
		return errors.Wrapf(ErrDimensionMismatch,
			"SetRow(row=%d) got %d values for a Table of dimension %d", row, len(values), t.dim)
	}
	copy(t.Row(row), values)
	return nil
}

// Check returns nil if the Table has exactly the given size, and an error
// matching ErrDimensionMismatch otherwise.
func (t *Table) Check(rows, dim int) error {
	if t.rows != rows || t.dim != dim {
		return errors.Wrapf(ErrDimensionMismatch,
			"Table is %dx%d, wanted %dx%d", t.rows, t.dim, rows, dim)
	}
	return nil
}

// Clone returns a deep copy of the Table.
func (t *Table) Clone() *Table {
	return &Table{
		data: xslices.Copy(t.data),
		rows: t.rows,
		dim:  t.dim,
	}
}

// String returns a one-line description of the Table size.
func (t *Table) String() string {
	return fmt.Sprintf("features.Table: %s rows of dim %d", humanize.Comma(int64(t.rows)), t.dim)
}
