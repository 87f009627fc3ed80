package util

//*******************************************
// flags
//*******************************************

// Per-id scratch storage used by the search algorithms.
//
// Not thread safe, every solver owns its own flags.
type Flags[T any] struct {
	flags        Array[T]
	default_flag T
}

func NewFlags[T any](size int32, default_flag T) Flags[T] {
	flags := NewArray[T](int(size))
	flags.Fill(default_flag)
	return Flags[T]{
		flags:        flags,
		default_flag: default_flag,
	}
}

func (self Flags[T]) Get(id int32) *T {
	return &self.flags[id]
}
func (self Flags[T]) Length() int {
	return len(self.flags)
}

// Sets all flags back to the default value.
func (self Flags[T]) Reset() {
	self.flags.Fill(self.default_flag)
}
