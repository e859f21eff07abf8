package field

// Signal is an ordered list of listeners, used by Host implementations
// to keep the callbacks registered through OnResize, OnScroll, etc.
//
// Not safe for concurrent use.
type Signal[F any] struct {
	nextID int
	ids    []int
	fns    []F
}

// Add registers fn and returns a function that removes it again.
// Calling cancel more than once is a no-op.
func (s *Signal[F]) Add(fn F) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.ids = append(s.ids, id)
	s.fns = append(s.fns, fn)

	return func() {
		for i, existing := range s.ids {
			if existing == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				s.fns = append(s.fns[:i], s.fns[i+1:]...)
				return
			}
		}
	}
}

// Each calls call for every listener in registration order.
func (s *Signal[F]) Each(call func(fn F)) {
	// 拷贝一份，允许回调中注销自己
	fns := make([]F, len(s.fns))
	copy(fns, s.fns)
	for _, fn := range fns {
		call(fn)
	}
}

// Len returns the number of registered listeners.
func (s *Signal[F]) Len() int {
	return len(s.fns)
}
