package engine

// EntityID identifies an entity within one World
type EntityID uint64

// IDAllocator hands out monotonically increasing entity IDs
// Owned by the World; zero is never issued
type IDAllocator struct {
	next EntityID
}

// NewIDAllocator creates an allocator starting at 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh ID
func (a *IDAllocator) Next() EntityID {
	id := a.next
	a.next++
	return id
}

// Peek returns the ID the next call will issue
func (a *IDAllocator) Peek() EntityID {
	return a.next
}

// Reset restarts numbering at 1
func (a *IDAllocator) Reset() {
	a.next = 1
}
