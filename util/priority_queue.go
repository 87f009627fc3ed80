package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQItem[T any, P constraints.Ordered] struct {
	item T
	prio P
}

// Binary min-heap.
type PriorityQueue[T any, P constraints.Ordered] struct {
	items []_PQItem[T, P]
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		items: make([]_PQItem[T, P], 0, cap),
	}
}

func (self *PriorityQueue[T, P]) Length() int {
	return len(self.items)
}
func (self *PriorityQueue[T, P]) Clear() {
	self.items = self.items[:0]
}

func (self *PriorityQueue[T, P]) Enqueue(item T, prio P) {
	self.items = append(self.items, _PQItem[T, P]{item, prio})
	self._Up(len(self.items) - 1)
}

// Removes the item with the lowest priority, returns false if the queue is empty.
func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	n := len(self.items)
	if n == 0 {
		var t T
		return t, false
	}
	top := self.items[0]
	self.items[0] = self.items[n-1]
	self.items = self.items[:n-1]
	if n > 1 {
		self._Down(0)
	}
	return top.item, true
}

// Returns the lowest priority without removing the item.
func (self *PriorityQueue[T, P]) Peek() (T, P, bool) {
	if len(self.items) == 0 {
		var t T
		var p P
		return t, p, false
	}
	top := self.items[0]
	return top.item, top.prio, true
}

func (self *PriorityQueue[T, P]) _Up(i int) {
	items := self.items
	for i > 0 {
		parent := (i - 1) / 2
		if !(items[i].prio < items[parent].prio) {
			break
		}
		items[i], items[parent] = items[parent], items[i]
		i = parent
	}
}
func (self *PriorityQueue[T, P]) _Down(i int) {
	items := self.items
	n := len(items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && items[right].prio < items[left].prio {
			smallest = right
		}
		if !(items[smallest].prio < items[i].prio) {
			break
		}
		items[i], items[smallest] = items[smallest], items[i]
		i = smallest
	}
}
