package intrazonal

//*******************************************
// bounded heaps
//*******************************************

// Heap of at most capacity values with the smallest value on top.
type MinHeap struct {
	values []float64
}

func NewMinHeap(capacity int) *MinHeap {
	return &MinHeap{
		values: make([]float64, 0, capacity),
	}
}

func (self *MinHeap) Length() int {
	return len(self.values)
}
func (self *MinHeap) IsFull() bool {
	return len(self.values) == cap(self.values)
}

// Inserts the value, panics if the heap is full.
func (self *MinHeap) Insert(value float64) {
	if self.IsFull() {
		panic("insert into full heap")
	}
	self.values = append(self.values, value)
	_Up(self.values, len(self.values)-1, _Less)
}

func (self *MinHeap) Min() float64 {
	return self.values[0]
}

func (self *MinHeap) RemoveMin() float64 {
	return _Remove(&self.values, _Less)
}

func (self *MinHeap) Sum() float64 {
	return _Sum(self.values)
}

// Heap of at most capacity values with the largest value on top.
type MaxHeap struct {
	values []float64
}

func NewMaxHeap(capacity int) *MaxHeap {
	return &MaxHeap{
		values: make([]float64, 0, capacity),
	}
}

func (self *MaxHeap) Length() int {
	return len(self.values)
}
func (self *MaxHeap) IsFull() bool {
	return len(self.values) == cap(self.values)
}

// Inserts the value, panics if the heap is full.
func (self *MaxHeap) Insert(value float64) {
	if self.IsFull() {
		panic("insert into full heap")
	}
	self.values = append(self.values, value)
	_Up(self.values, len(self.values)-1, _Greater)
}

func (self *MaxHeap) Max() float64 {
	return self.values[0]
}

func (self *MaxHeap) RemoveMax() float64 {
	return _Remove(&self.values, _Greater)
}

func (self *MaxHeap) Sum() float64 {
	return _Sum(self.values)
}

func _Less(a, b float64) bool {
	return a < b
}
func _Greater(a, b float64) bool {
	return a > b
}

func _Up(values []float64, i int, before func(a, b float64) bool) {
	for i > 0 {
		parent := (i - 1) / 2
		if !before(values[i], values[parent]) {
			break
		}
		values[i], values[parent] = values[parent], values[i]
		i = parent
	}
}

func _Remove(values *[]float64, before func(a, b float64) bool) float64 {
	heap := *values
	top := heap[0]
	last := len(heap) - 1
	heap[0] = heap[last]
	heap = heap[:last]
	i := 0
	for {
		left := 2*i + 1
		right := left + 1
		first := i
		if left < len(heap) && before(heap[left], heap[first]) {
			first = left
		}
		if right < len(heap) && before(heap[right], heap[first]) {
			first = right
		}
		if first == i {
			break
		}
		heap[i], heap[first] = heap[first], heap[i]
		i = first
	}
	*values = heap
	return top
}

func _Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}
