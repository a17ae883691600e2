package features

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/x448/float16"
)

// Half is a feature table stored in IEEE 754 half-precision, at half the
// memory of a Table. It is a storage form only: convert back with ToFloat32
// before aggregating.
type Half struct {
	data []float16.Float16
	rows int
	dim  int
}

// ToHalf converts the Table to half-precision storage.
// Values outside the float16 range become +/-Inf, and precision beyond ~3
// decimal digits is lost.
func (t *Table) ToHalf() *Half {
	h := &Half{
		data: make([]float16.Float16, len(t.data)),
		rows: t.rows,
		dim:  t.dim,
	}
	for ii, value := range t.data {
		h.data[ii] = float16.Fromfloat32(value)
	}
	return h
}

// ToFloat32 converts back to the float32 working dtype.
func (h *Half) ToFloat32() *Table {
	t := Zeros(h.rows, h.dim)
	for ii, value := range h.data {
		t.data[ii] = value.Float32()
	}
	return t
}

// NumRows of the table.
func (h *Half) NumRows() int { return h.rows }

// Dim is the length shared by every row vector.
func (h *Half) Dim() int { return h.dim }

// String returns a one-line description of the Half table size.
func (h *Half) String() string {
	return fmt.Sprintf("features.Half: %s rows of dim %d", humanize.Comma(int64(h.rows)), h.dim)
}
