package ecs

type entityNode struct {
	entity     *Entity
	prev, next *entityNode
}

// EntityList is an insertion-ordered set of entities: a doubly linked list
// plus an id index, giving O(1) append, removal and membership tests.
type EntityList struct {
	head, tail *entityNode
	nodes      map[EntityID]*entityNode
}

func NewEntityList() *EntityList {
	return &EntityList{nodes: make(map[EntityID]*entityNode)}
}

// Add appends e at the tail. If an entity with the same id is already
// present the list is left unchanged and Add returns false.
func (l *EntityList) Add(e *Entity) bool {
	if _, dup := l.nodes[e.id]; dup {
		return false
	}
	n := &entityNode{entity: e}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.nodes[e.id] = n
	return true
}

// Remove unlinks e. It reports whether e was present.
func (l *EntityList) Remove(e *Entity) bool {
	n, ok := l.nodes[e.id]
	if !ok {
		return false
	}
	if n.prev == nil {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	delete(l.nodes, e.id)
	return true
}

func (l *EntityList) Has(e *Entity) bool {
	_, ok := l.nodes[e.id]
	return ok
}

// Get returns the member with the given id.
func (l *EntityList) Get(id EntityID) (*Entity, bool) {
	n, ok := l.nodes[id]
	if !ok {
		return nil, false
	}
	return n.entity, true
}

func (l *EntityList) Len() int {
	return len(l.nodes)
}

func (l *EntityList) Clear() {
	l.head, l.tail = nil, nil
	l.nodes = make(map[EntityID]*entityNode)
}

// ToSlice returns the members in insertion order. The slice is a copy.
func (l *EntityList) ToSlice() []*Entity {
	out := make([]*Entity, 0, len(l.nodes))
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.entity)
	}
	return out
}

// Each walks the members in insertion order until fn returns false. fn must
// not modify the list.
func (l *EntityList) Each(fn func(*Entity) bool) {
	for n := l.head; n != nil; n = n.next {
		if !fn(n.entity) {
			return
		}
	}
}
