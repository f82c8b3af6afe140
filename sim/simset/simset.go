// Package simset provides SIMULA SIMSET-style intrusive doubly-linked lists.
//
// A Head anchors a list of Links. A Link can belong to at most one list at a
// time; inserting a linked element first removes it from its current list.
// Unlinking is O(1) because each Link carries a back-reference to its Head.
// Lists never own their elements.
package simset

// Head is the anchor of a doubly-linked list of Links.
type Head[T any] struct {
	first *Link[T]
	last  *Link[T]
	count int
}

// Link is a list element carrying an item of type T.
type Link[T any] struct {
	item T
	prev *Link[T]
	next *Link[T]
	head *Head[T]
}

// NewHead creates an empty list.
func NewHead[T any]() *Head[T] {
	return &Head[T]{}
}

// NewLink creates an unlinked element carrying item.
func NewLink[T any](item T) *Link[T] {
	return &Link[T]{item: item}
}

// Item returns the element carried by the link.
func (l *Link[T]) Item() T {
	return l.item
}

// Suc returns the next element in the list, or nil if l is last or unlinked.
func (l *Link[T]) Suc() *Link[T] {
	return l.next
}

// Pred returns the previous element in the list, or nil if l is first or unlinked.
func (l *Link[T]) Pred() *Link[T] {
	return l.prev
}

// InList reports whether the link currently belongs to a list.
func (l *Link[T]) InList() bool {
	return l.head != nil
}

// Out unlinks l from its current list in O(1). A no-op if l is unlinked.
func (l *Link[T]) Out() *Link[T] {
	h := l.head
	if h == nil {
		return l
	}
	if l.prev != nil {
		l.prev.next = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	}
	if h.first == l {
		h.first = l.next
	}
	if h.last == l {
		h.last = l.prev
	}
	l.prev, l.next, l.head = nil, nil, nil
	h.count--
	return l
}

// Into appends l at the end of list h. A nil h unlinks l.
func (l *Link[T]) Into(h *Head[T]) {
	if h == nil {
		l.Out()
		return
	}
	h.AddLast(l)
}

// Precede inserts l immediately before other. If other is unlinked, l is
// simply unlinked.
func (l *Link[T]) Precede(other *Link[T]) {
	if other == nil || !other.InList() {
		l.Out()
		return
	}
	l.Out()
	h := other.head
	l.head = h
	l.next = other
	l.prev = other.prev
	if other.prev != nil {
		other.prev.next = l
	} else {
		h.first = l
	}
	other.prev = l
	h.count++
}

// Follow inserts l immediately after other. If other is unlinked, l is
// simply unlinked.
func (l *Link[T]) Follow(other *Link[T]) {
	if other == nil || !other.InList() {
		l.Out()
		return
	}
	l.Out()
	h := other.head
	l.head = h
	l.prev = other
	l.next = other.next
	if other.next != nil {
		other.next.prev = l
	} else {
		h.last = l
	}
	other.next = l
	h.count++
}

// First returns the first element of the list, or nil if empty.
func (h *Head[T]) First() *Link[T] {
	return h.first
}

// Last returns the last element of the list, or nil if empty.
func (h *Head[T]) Last() *Link[T] {
	return h.last
}

// Empty reports whether the list has no elements.
func (h *Head[T]) Empty() bool {
	return h.first == nil
}

// Cardinal returns the number of elements in the list.
func (h *Head[T]) Cardinal() int {
	return h.count
}

// AddFirst inserts l at the start of the list.
func (h *Head[T]) AddFirst(l *Link[T]) {
	if l == nil {
		return
	}
	l.Out()
	if h.first == nil {
		h.first, h.last = l, l
		l.head = h
		h.count++
		return
	}
	l.Precede(h.first)
}

// AddLast inserts l at the end of the list.
func (h *Head[T]) AddLast(l *Link[T]) {
	if l == nil {
		return
	}
	l.Out()
	if h.last == nil {
		h.first, h.last = l, l
		l.head = h
		h.count++
		return
	}
	l.Follow(h.last)
}

// Clear unlinks every element. The elements themselves are untouched.
func (h *Head[T]) Clear() {
	for cur := h.first; cur != nil; {
		next := cur.next
		cur.prev, cur.next, cur.head = nil, nil, nil
		cur = next
	}
	h.first, h.last, h.count = nil, nil, 0
}

// Items returns the carried items from first to last. Intended for
// snapshot-style iteration; mutating the list while ranging over the
// returned slice is safe.
func (h *Head[T]) Items() []T {
	out := make([]T, 0, h.count)
	for cur := h.first; cur != nil; cur = cur.next {
		out = append(out, cur.item)
	}
	return out
}
