package dset

import (
	"sync"

	"github.com/nyorain/vil/vk"
)

// Pool tracks the descriptor sets allocated from one VkDescriptorPool, so
// that vkFreeDescriptorSets / vkResetDescriptorPool can return them to a
// free list (spec §4.3: "a set is returned to its pool's free list").
type Pool struct {
	mu   sync.Mutex
	handle vk.DescriptorPool
	live map[vk.DescriptorSet]*DescriptorSet
	freeList []*DescriptorSet
}

func NewPool(handle vk.DescriptorPool) *Pool {
	return &Pool{handle: handle, live: map[vk.DescriptorSet]*DescriptorSet{}}
}

func (p *Pool) Handle() vk.DescriptorPool { return p.handle }

// Track registers a freshly-allocated set as live in this pool.
func (p *Pool) Track(s *DescriptorSet) {
	p.mu.Lock()
	p.live[s.handle] = s
	p.mu.Unlock()
}

// Free looks up and destroys the set for the given handle (the
// vkFreeDescriptorSets path), returning it to the pool's free list.
func (p *Pool) Free(handle vk.DescriptorSet) {
	p.mu.Lock()
	s, ok := p.live[handle]
	if ok {
		delete(p.live, handle)
	}
	p.mu.Unlock()
	if ok {
		s.destroy()
	}
}

// Reset destroys every live set in the pool at once (the
// vkResetDescriptorPool path).
func (p *Pool) Reset() {
	p.mu.Lock()
	live := p.live
	p.live = map[vk.DescriptorSet]*DescriptorSet{}
	p.mu.Unlock()
	for _, s := range live {
		s.destroy()
	}
}

// free is called by DescriptorSet.destroy to append the set onto the
// pool's reusable free list (a real allocator would recycle the
// underlying data-block capacity on the next allocation of matching size;
// this core only needs the list to exist so pool exhaustion/fragmentation
// behavior can be inspected).
func (p *Pool) free(s *DescriptorSet) {
	p.mu.Lock()
	p.freeList = append(p.freeList, s)
	p.mu.Unlock()
}

// FreeListLen reports how many destroyed sets are sitting in the pool's
// free list, for diagnostics/tests.
func (p *Pool) FreeListLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.freeList)
}
