package cache

// lruNode is a node of an intrusive doubly-linked list.
type lruNode[V any] struct {
	value V
	prev  *lruNode[V]
	next  *lruNode[V]
}

// lruList orders idle entries by release time. The front is the most
// recently released, the back the next eviction candidate.
// It is not thread-safe; the owning Pool serializes access.
type lruList[V any] struct {
	head *lruNode[V]
	tail *lruNode[V]
	len  int
}

// Len returns the number of nodes.
func (l *lruList[V]) Len() int { return l.len }

// PushFront inserts value as the most recent entry and returns its node.
func (l *lruList[V]) PushFront(value V) *lruNode[V] {
	n := &lruNode[V]{value: value, next: l.head}
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
	return n
}

// Back returns the least recent node, or nil.
func (l *lruList[V]) Back() *lruNode[V] { return l.tail }

// Remove unlinks n. n must belong to l.
func (l *lruList[V]) Remove(n *lruNode[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}

// Clear drops every node.
func (l *lruList[V]) Clear() {
	l.head, l.tail, l.len = nil, nil, 0
}
