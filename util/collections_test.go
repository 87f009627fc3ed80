package util

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinarySearchFirstGE(t *testing.T) {
	tests := []struct {
		name  string
		arr   []float64
		value float64
		want  int
	}{
		{"empty", []float64{}, 1, 0},
		{"below all", []float64{1, 3, 10}, 0.5, 0},
		{"equal first", []float64{1, 3, 10}, 1, 0},
		{"between", []float64{1, 3, 10}, 2, 1},
		{"equal middle", []float64{1, 3, 10}, 3, 1},
		{"equal last", []float64{1, 3, 10}, 10, 2},
		{"above all", []float64{1, 3, 10}, 11, 3},
		{"duplicates", []float64{1, 2, 2, 2, 5}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BinarySearchFirstGE(tt.arr, tt.value))
		})
	}
}

func TestBinarySearchFirstGEExhaustive(t *testing.T) {
	arr := []int{0, 2, 2, 4, 6, 6, 6, 8}
	for value := -1; value <= 9; value++ {
		want := len(arr)
		for i, v := range arr {
			if v >= value {
				want = i
				break
			}
		}
		assert.Equal(t, want, BinarySearchFirstGE(arr, value), "value %d", value)
	}
}

func TestPriorityQueue(t *testing.T) {
	pq := NewPriorityQueue[int32, float64](10)
	prios := []float64{5, 1, 4, 2, 8, 3, 3, 0}
	for i, p := range prios {
		pq.Enqueue(int32(i), p)
	}
	require.Equal(t, len(prios), pq.Length())

	_, top, ok := pq.Peek()
	require.True(t, ok)
	assert.Equal(t, 0.0, top)

	got := []float64{}
	for {
		item, ok := pq.Dequeue()
		if !ok {
			break
		}
		got = append(got, prios[item])
	}
	assert.True(t, sort.Float64sAreSorted(got))
	assert.Len(t, got, len(prios))

	_, ok = pq.Dequeue()
	assert.False(t, ok)
}

func TestFlags(t *testing.T) {
	type flag struct {
		visited bool
		cost    float64
	}
	flags := NewFlags[flag](4, flag{false, 100})
	f := flags.Get(2)
	f.visited = true
	f.cost = 3
	assert.Equal(t, 3.0, flags.Get(2).cost)
	assert.Equal(t, 100.0, flags.Get(1).cost)

	flags.Reset()
	assert.False(t, flags.Get(2).visited)
	assert.Equal(t, 100.0, flags.Get(2).cost)
}

func TestListRemove(t *testing.T) {
	list := NewList[int](3)
	list.Add(1)
	list.Add(2)
	list.Add(3)
	list.Remove(1)
	assert.Equal(t, List[int]{1, 3}, list)
	assert.Equal(t, 3, list.Last())
}

func TestOptional(t *testing.T) {
	assert.False(t, None[int]().HasValue())
	opt := Some(5)
	require.True(t, opt.HasValue())
	assert.Equal(t, 5, opt.Value)
}
