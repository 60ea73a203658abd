package debugger

import (
	"sort"
	"sync"
)

// Breakpoints is a set of PC values that stop Continue. It is safe
// for concurrent use.
type Breakpoints struct {
	mu  sync.RWMutex
	set map[uint16]struct{}
}

// NewBreakpoints returns a set holding the given addresses.
func NewBreakpoints(addresses ...uint16) *Breakpoints {
	b := &Breakpoints{set: make(map[uint16]struct{}, len(addresses))}
	for _, address := range addresses {
		b.set[address] = struct{}{}
	}
	return b
}

// Add adds address to the set, returning false if it was already set.
func (b *Breakpoints) Add(address uint16) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.set[address]; ok {
		return false
	}
	b.set[address] = struct{}{}
	return true
}

// Remove removes address from the set, returning false if it was not set.
func (b *Breakpoints) Remove(address uint16) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.set[address]; !ok {
		return false
	}
	delete(b.set, address)
	return true
}

// Has returns true if address is in the set.
func (b *Breakpoints) Has(address uint16) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.set[address]
	return ok
}

// List returns the addresses in ascending order.
func (b *Breakpoints) List() []uint16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := make([]uint16, 0, len(b.set))
	for address := range b.set {
		list = append(list, address)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Clear empties the set.
func (b *Breakpoints) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set = make(map[uint16]struct{})
}

// Len returns the number of addresses in the set.
func (b *Breakpoints) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.set)
}
