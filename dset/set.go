package dset

import (
	"sync"

	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vk"
)

// DescriptorSet is the packed-binding-block representation of spec §4.3's
// "Descriptor Set State": a single contiguous data block whose layout is
// driven by the set's DescriptorSetLayout, plus the set's current
// reference list and an optional attached CoW.
type DescriptorSet struct {
	mu sync.Mutex

	handle   vk.DescriptorSet
	layout   *Layout
	data     []byte
	variableCount uint32 // actual count used for the layout's variable binding, if any

	// refs holds one entry per written (binding, element) that carried a
	// resource reference. Every such write takes a reference here, whatever
	// RefDiscipline a later Snapshot uses; in ref-on-snapshot mode,
	// CoW.refOnSnapshot looks these entries up in the registry when the CoW
	// is created.
	refs []ResourceRef

	cow *CoW // non-nil while the set is frozen; cleared on resolution or destruction

	pool *Pool // owning pool, for the free-list return on destruction
}

func (s *DescriptorSet) DriverHandle() uint64         { return uint64(s.handle) }
func (s *DescriptorSet) Kind() registry.ObjectKind    { return registry.KindDescriptorSet }
func (s *DescriptorSet) Handle() vk.DescriptorSet     { return s.handle }
func (s *DescriptorSet) Layout() *Layout              { return s.layout }

// NewDescriptorSet allocates a zero-initialized packed data block for a
// freshly-allocated VkDescriptorSet (spec §4.3). No immutable sampler data
// is written into the block: bindings flagged ImmutableSampler start zeroed
// like every other binding.
func NewDescriptorSet(handle vk.DescriptorSet, layout *Layout, variableCount uint32, pool *Pool) *DescriptorSet {
	size := layout.FixedSize
	if vb, ok := layout.variableBinding(); ok {
		// Replace the fixed-max contribution of the variable binding with
		// its actual requested count.
		size -= int(vb.SlotSize) * int(vb.Count)
		size += int(vb.SlotSize) * int(variableCount)
	}
	return &DescriptorSet{
		handle:        handle,
		layout:        layout,
		data:          make([]byte, size),
		variableCount: variableCount,
		pool:          pool,
	}
}

func (l *Layout) variableBinding() (BindingLayout, bool) {
	for _, b := range l.Bindings {
		if b.Variable {
			return b, true
		}
	}
	return BindingLayout{}, false
}

// Write is one element of a standard descriptor update (spec §4.3:
// "a list of writes and copies"). Data holds raw bytes for image/buffer/
// buffer-view/accel-struct descriptor info structs, one SlotSize-sized
// chunk per element already packed by the caller (the driver trampoline
// layer, out of scope here, is responsible for packing VkDescriptorImageInfo
// etc. into this shape).
type Write struct {
	Binding     uint32
	FirstElement uint32
	Data        [][]byte // one entry per descriptor element, each SlotSize bytes (or N bytes for inline uniform)
	Refs        []*registry.Wrapper // parallel to Data, handle(s) referenced by each element, may be nil
}

// Update applies a batch of standard writes, resolving any attached CoW
// first (spec §4.3: "Before mutating ... if a CoW is attached, it is
// resolved"). Writes whose element index would exceed a binding's count
// spill into the next binding per Vulkan's standard update rules (spec
// §4.3).
func (s *DescriptorSet) Update(writes []Write) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveLocked()
	for _, w := range writes {
		s.applyLocked(w.Binding, w.FirstElement, w.Data, w.Refs)
	}
}

// TemplateEntry is one precompiled entry of a descriptor update template
// (spec §4.3: "a precompiled list of (binding, element, type, count,
// byte-offset, stride) entries applied to a blob of user bytes").
type TemplateEntry struct {
	Binding    uint32
	Element    uint32
	Count      uint32
	SrcOffset  int // byte offset into the user data blob
	SrcStride  int
}

// ApplyTemplate applies a template update against a user-supplied data
// blob, following the same element-spillover and CoW-resolution rules as
// Update (spec §4.3).
func (s *DescriptorSet) ApplyTemplate(entries []TemplateEntry, userData []byte, refLookup func(binding, element uint32, raw []byte) *registry.Wrapper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveLocked()
	for _, e := range entries {
		bl, ok := s.layout.At(e.Binding)
		if !ok {
			continue
		}
		data := make([][]byte, e.Count)
		refs := make([]*registry.Wrapper, e.Count)
		for i := uint32(0); i < e.Count; i++ {
			off := e.SrcOffset + int(i)*e.SrcStride
			end := off + int(bl.SlotSize)
			if off < 0 || end > len(userData) {
				continue
			}
			raw := userData[off:end]
			data[i] = raw
			if refLookup != nil {
				refs[i] = refLookup(e.Binding, e.Element+i, raw)
			}
		}
		s.applyLocked(e.Binding, e.Element, data, refs)
	}
}

// applyLocked writes one descriptor write's elements starting at
// (binding, firstElement), spilling into subsequent bindings when the
// current binding's count is exceeded, per standard VkWriteDescriptorSet
// rules. Caller holds s.mu.
func (s *DescriptorSet) applyLocked(binding, firstElement uint32, data [][]byte, refs []*registry.Wrapper) {
	bindings := s.layout.Bindings
	idx := 0
	for i, b := range bindings {
		if b.Binding != binding {
			continue
		}
		elem := firstElement
		for elem < b.Count && idx < len(data) {
			s.writeSlot(b, elem, data[idx])
			if idx < len(refs) && refs[idx] != nil {
				s.setRefLocked(b.Binding, elem, refs[idx])
			}
			elem++
			idx++
		}
		// spill into the next binding in layout order if this write had
		// more elements than this binding's remaining count
		for idx < len(data) && i+1 < len(bindings) {
			next := bindings[i+1]
			e := uint32(0)
			for e < next.Count && idx < len(data) {
				s.writeSlot(next, e, data[idx])
				if idx < len(refs) && refs[idx] != nil {
					s.setRefLocked(next.Binding, e, refs[idx])
				}
				e++
				idx++
			}
			i++
			b = next
		}
		return
	}
}

func (s *DescriptorSet) writeSlot(b BindingLayout, elem uint32, raw []byte) {
	sz := int(b.SlotSize)
	off := b.Offset + int(elem)*sz
	if off < 0 || off+sz > len(s.data) || raw == nil {
		return
	}
	copy(s.data[off:off+sz], raw)
}

func (s *DescriptorSet) setRefLocked(binding, element uint32, w *registry.Wrapper) {
	for i, r := range s.refs {
		if r.Binding == binding && r.Element == element {
			s.refs[i].Wrapper = w.Ref()
			s.refs[i].Valid = true
			return
		}
	}
	s.refs = append(s.refs, ResourceRef{Binding: binding, Element: element, Wrapper: w.Ref(), Valid: true})
}

// resolveLocked resolves any attached CoW, flipping it to standalone-copy,
// before a mutation proceeds. Caller holds s.mu.
func (s *DescriptorSet) resolveLocked() {
	if s.cow == nil {
		return
	}
	s.cow.resolve(s)
	s.cow = nil
}

// Snapshot returns a CoW handle over the set's current contents, creating
// one if none is attached (spec §4.3/§3: "cheap snapshots at submission
// time (no bulk copy)"). refDiscipline controls reference behavior at
// creation time.
func (s *DescriptorSet) Snapshot(reg *registry.Registry, refDiscipline RefDiscipline) *CoW {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cow != nil {
		return s.cow
	}
	c := newCoW(s)
	if refDiscipline == RefOnSnapshot {
		c.refOnSnapshot(reg)
	}
	s.cow = c
	return c
}

// destroy returns the set to its pool's free list, resolving any attached
// CoW first so it can outlive the set (spec §4.3: "Destruction: a set is
// returned to its pool's free list; resolving any CoW first so it can
// outlive the set").
func (s *DescriptorSet) destroy() {
	s.mu.Lock()
	if s.cow != nil {
		s.cow.resolve(s)
		s.cow = nil
	}
	for _, r := range s.refs {
		if r.Wrapper != nil {
			r.Wrapper.Unref()
		}
	}
	s.refs = nil
	s.mu.Unlock()
	if s.pool != nil {
		s.pool.free(s)
	}
}

// RefDiscipline selects the reference-counting strategy described in spec
// §4.3 "Reference discipline".
type RefDiscipline int

const (
	// RefOnSnapshot looks the set's referenced handles up in the registry
	// when a CoW is created over the set (the default). The discipline only
	// selects what Snapshot does: Update and ApplyTemplate take a reference
	// on every written handle under either discipline.
	RefOnSnapshot RefDiscipline = iota
	// RefEverything refs handles on every write so a snapshot is always
	// safe to read even if the original is destroyed first.
	RefEverything
)
