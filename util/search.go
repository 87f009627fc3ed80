package util

import (
	"golang.org/x/exp/constraints"
)

// Returns the first index i with arr[i] >= value in a sorted array.
//
// Returns 0 if value is below all entries and len(arr) if it is above all of them.
func BinarySearchFirstGE[T constraints.Ordered](arr []T, value T) int {
	low := 0
	high := len(arr)
	for low < high {
		mid := int(uint(low+high) >> 1)
		if arr[mid] < value {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}
