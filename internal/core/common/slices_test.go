package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatMap_PreservesOrder(t *testing.T) {
	got := FlatMap([]int{1, 2, 3}, func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = n
		}
		return out
	})
	assert.Equal(t, []int{1, 2, 2, 3, 3, 3}, got)
}

func TestFlatMap_Empty(t *testing.T) {
	got := FlatMap([]string{"a"}, func(string) []string { return nil })
	assert.Empty(t, got)
}
