package cache

// node is an entry in the doubly-linked recency list.
// It carries the key so eviction can delete from the map in O(1).
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// list is a doubly-linked recency list.
// The head is the most recently used, tail is least recently used.
type list[K comparable, V any] struct {
	head *node[K, V]
	tail *node[K, V]
	len  int
}

// pushFront adds n at the front (most recently used).
func (l *list[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

// moveToFront moves an existing node to the front.
func (l *list[K, V]) moveToFront(n *node[K, V]) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.pushFront(n)
}

// back returns the least recently used node, or nil.
func (l *list[K, V]) back() *node[K, V] {
	return l.tail
}

// clear drops all nodes.
func (l *list[K, V]) clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

// unlink removes n from the list.
func (l *list[K, V]) unlink(n *node[K, V]) {
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

	n.prev = nil
	n.next = nil
	l.len--
}
