package graphs

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

func initGob() {
	gob.Register(&Graph{})
}

// Save the Graph to the given file: it includes the edge indices, so it can
// be reloaded ready to use.
func (g *Graph) Save(filePath string) (err error) {
	initGob()
	f, err := os.Create(filePath)
	if err != nil {
		err = errors.Wrapf(err, "creating %q to save Graph", filePath)
		return
	}
	enc := gob.NewEncoder(f)
	err = enc.Encode(g)
	if err != nil {
		err = errors.WithMessagef(err, "encoding Graph to save to %q", filePath)
		return
	}
	err = f.Close()
	if err != nil {
		err = errors.Wrapf(err, "closing file %q, where Graph was saved", filePath)
		return
	}
	return
}

// Load a previously saved Graph.
// If filePath doesn't exist, it returns an error that can be checked with
// [os.IsNotExist].
func Load(filePath string) (g *Graph, err error) {
	initGob()
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		err = errors.Wrapf(err, "trying to load Graph from %q", filePath)
		return
	}
	dec := gob.NewDecoder(f)
	g = &Graph{}
	err = dec.Decode(g)
	if err != nil {
		g = nil
		err = errors.Wrapf(err, "trying to decode Graph from %q", filePath)
		return
	}
	_ = f.Close()
	return
}
