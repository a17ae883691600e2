package xslices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopy(t *testing.T) {
	original := []float32{1, 2, 3}
	duplicate := Copy(original)
	duplicate[0] = 9
	assert.Equal(t, []float32{1, 2, 3}, original)
	assert.Equal(t, []float32{9, 2, 3}, duplicate)
	assert.Nil(t, Copy([]int(nil)))
}

func TestMap(t *testing.T) {
	assert.Equal(t, []float64{1, 4, 9}, Map([]int{1, 2, 3}, func(e int) float64 { return float64(e * e) }))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"zebra": 0, "alpha": 1, "mid": 2}
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, SortedKeys(m))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 7, Max([]int{3, 7, 1}))
	assert.Equal(t, 0, Max([]int(nil)))
}
