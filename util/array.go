package util

//*******************************************
// array
//*******************************************

// Fixed size slice.
type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Length() int {
	return len(self)
}
func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}

// Sets every entry to value.
func (self Array[T]) Fill(value T) {
	for i := range self {
		self[i] = value
	}
}
func (self Array[T]) Copy() Array[T] {
	arr := make([]T, len(self))
	copy(arr, self)
	return arr
}
