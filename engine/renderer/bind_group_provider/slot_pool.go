package bind_group_provider

import (
	"fmt"
	"sync"
)

// SlotPool hands out one BindGroupProvider per draw for each key (usually a pipeline key).
// Uniform writes are queued before the render pass is submitted, so two draws in the same frame
// must never share a buffer. Slots are reused across frames after Reset.
type SlotPool struct {
	mu    sync.Mutex
	group int
	slots map[string][]BindGroupProvider
	next  map[string]int
}

// NewSlotPool creates an empty pool whose providers bind to the given @group index.
//
// Parameters:
//   - group: the bind group index of every provider in the pool
//
// Returns:
//   - *SlotPool: the new pool
func NewSlotPool(group int) *SlotPool {
	return &SlotPool{
		group: group,
		slots: make(map[string][]BindGroupProvider),
		next:  make(map[string]int),
	}
}

// Acquire returns the next unused provider for key in the current frame. When every existing slot
// is taken, a new provider is created and fresh is true so the caller can initialize it on the GPU.
//
// Parameters:
//   - key: the slot family, e.g. a pipeline key
//
// Returns:
//   - BindGroupProvider: the provider for this draw
//   - bool: true if the provider was just created
func (p *SlotPool) Acquire(key string) (BindGroupProvider, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.next[key]
	p.next[key] = i + 1
	if i < len(p.slots[key]) {
		return p.slots[key][i], false
	}
	bgp := NewBindGroupProvider(fmt.Sprintf("%s draw slot %d", key, i), WithGroup(p.group))
	p.slots[key] = append(p.slots[key], bgp)
	return bgp, true
}

// Discard drops the most recently acquired provider for key. It is used when a fresh
// provider fails GPU initialization so the next Acquire retries instead of reusing it.
//
// Parameters:
//   - key: the slot family
func (p *SlotPool) Discard(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.next[key] - 1
	if i < 0 || i >= len(p.slots[key]) {
		return
	}
	p.slots[key][i].Release()
	p.slots[key] = append(p.slots[key][:i], p.slots[key][i+1:]...)
	p.next[key] = i
}

// Reset marks every slot free for the next frame without releasing GPU resources.
func (p *SlotPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.next)
}

// Len returns the number of providers held for key.
//
// Parameters:
//   - key: the slot family
//
// Returns:
//   - int: the slot count
func (p *SlotPool) Len(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots[key])
}

// Release frees every provider in the pool.
func (p *SlotPool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, list := range p.slots {
		for _, bgp := range list {
			bgp.Release()
		}
	}
	clear(p.slots)
	clear(p.next)
}
