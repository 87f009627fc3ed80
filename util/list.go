package util

//*******************************************
// list
//*******************************************

// Growable slice.
type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self List[T]) Length() int {
	return len(self)
}
func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}

// Removes the element at index keeping the order of the remaining elements.
func (self *List[T]) Remove(index int) {
	*self = append((*self)[:index], (*self)[index+1:]...)
}
func (self *List[T]) Clear() {
	*self = (*self)[:0]
}
func (self List[T]) Last() T {
	return self[len(self)-1]
}
