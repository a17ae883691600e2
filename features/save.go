package features

import (
	"encoding/gob"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// tableGob is the exported on-disk form of a Table.
type tableGob struct {
	Rows, Dim int
	Data      []float32
}

// Save the Table to the given file, gob-encoded inside a zstd frame.
// Node feature tables are large and repetitive, compression typically pays
// for itself.
func (t *Table) Save(filePath string) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		err = errors.Wrapf(err, "creating %q to save Table", filePath)
		return
	}
	compressor, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		err = errors.Wrapf(err, "creating zstd writer for %q", filePath)
		return
	}
	enc := gob.NewEncoder(compressor)
	err = enc.Encode(tableGob{Rows: t.rows, Dim: t.dim, Data: t.data})
	if err != nil {
		err = errors.WithMessagef(err, "encoding Table to save to %q", filePath)
		return
	}
	err = compressor.Close()
	if err != nil {
		err = errors.Wrapf(err, "flushing zstd frame to %q", filePath)
		return
	}
	err = f.Close()
	if err != nil {
		err = errors.Wrapf(err, "closing file %q, where Table was saved", filePath)
		return
	}
	return
}

// LoadTable loads a Table previously saved with Save.
// If filePath doesn't exist, it returns an error that can be checked with
// [os.IsNotExist].
func LoadTable(filePath string) (t *Table, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		err = errors.Wrapf(err, "trying to load Table from %q", filePath)
		return
	}
	defer func() { _ = f.Close() }()
	decompressor, err := zstd.NewReader(f)
	if err != nil {
		err = errors.Wrapf(err, "creating zstd reader for %q", filePath)
		return
	}
	defer decompressor.Close()
	dec := gob.NewDecoder(decompressor)
	var stored tableGob
	err = dec.Decode(&stored)
	if err != nil {
		err = errors.Wrapf(err, "trying to decode Table from %q", filePath)
		return
	}
	t = &Table{data: stored.Data, rows: stored.Rows, dim: stored.Dim}
	return
}
