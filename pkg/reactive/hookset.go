package reactive

// notifyHook is a subscription. Hooks are compared by pointer identity, so
// the same function wrapped twice is two hooks.
type notifyHook struct {
	fn func()
}

type hookNode struct {
	hook       *notifyHook
	prev, next *hookNode
}

// hookSet is an insertion-ordered set of hooks. Removing and re-adding a hook
// moves it to the end.
type hookSet struct {
	head, tail *hookNode
	index      map[*notifyHook]*hookNode
}

func (s *hookSet) len() int {
	return len(s.index)
}

func (s *hookSet) has(h *notifyHook) bool {
	_, ok := s.index[h]
	return ok
}

// add appends h and reports whether it was absent.
func (s *hookSet) add(h *notifyHook) bool {
	if s.index == nil {
		s.index = make(map[*notifyHook]*hookNode)
	} else if _, ok := s.index[h]; ok {
		return false
	}
	n := &hookNode{hook: h, prev: s.tail}
	if s.tail != nil {
		s.tail.next = n
	} else {
		s.head = n
	}
	s.tail = n
	s.index[h] = n
	return true
}

// remove deletes h and reports whether it was present.
func (s *hookSet) remove(h *notifyHook) bool {
	n, ok := s.index[h]
	if !ok {
		return false
	}
	delete(s.index, h)
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
	return true
}

// shift removes and returns the oldest hook, or nil if the set is empty.
func (s *hookSet) shift() *notifyHook {
	if s.head == nil {
		return nil
	}
	h := s.head.hook
	s.remove(h)
	return h
}

// snapshot returns the hooks in insertion order.
func (s *hookSet) snapshot() []*notifyHook {
	out := make([]*notifyHook, 0, len(s.index))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.hook)
	}
	return out
}

// each calls fn for every hook in insertion order. fn must not modify s.
func (s *hookSet) each(fn func(h *notifyHook)) {
	for n := s.head; n != nil; n = n.next {
		fn(n.hook)
	}
}

func (s *hookSet) clear() {
	s.head, s.tail = nil, nil
	s.index = nil
}
