package dset

import (
	"sync"

	"github.com/nyorain/vil/registry"
)

// CoW is a shared copy-on-write handle over a descriptor set's data block
// (spec §3 "Descriptor CoW": "A shared object holding either (a) a
// back-pointer to the live set plus a mutex, or (b) a freshly-allocated
// standalone copy of the set's binding block"). Exactly one of the two
// states is populated at any time (spec §3 invariant).
//
// Grounded on gapis/memory/pool.go's distinction between a live-backed
// memory view and a detached snapshot, generalized from memory pool pages
// to descriptor set data blocks.
type CoW struct {
	mu sync.Mutex

	// live is non-nil while this CoW is still attached to its originating
	// set (state (a)). Reads through Snapshot/At must go through live's
	// own lock in this state, since the set may still be written until
	// resolution.
	live *DescriptorSet

	// standalone holds the detached copy once resolved (state (b)).
	standalone  []byte
	layout      *Layout
	refs        []ResourceRef
	resolved    bool
}

func newCoW(live *DescriptorSet) *CoW {
	return &CoW{live: live, layout: live.layout}
}

// refOnSnapshot implements the default reference discipline (spec §4.3):
// "at CoW creation the set's currently referenced handles are looked up in
// the live registry; those that are still valid are referenced from there
// forward. A look-up miss marks the binding invalid in the snapshot."
//
// This is necessarily best-effort: without a driver trampoline recording
// which handle occupies each slot at write time, the lookup can only
// consult whatever ResourceRef entries the set's own Update/ApplyTemplate
// calls recorded; real handle identity recovery from raw descriptor bytes
// belongs to the (out-of-scope) trampoline layer that packs
// VkDescriptorImageInfo/VkDescriptorBufferInfo into DescriptorSet.Write.
//
// Callers must already hold c.live.mu (DescriptorSet.Snapshot does, since
// c.live is the set being snapshotted); this must not lock it again.
func (c *CoW) refOnSnapshot(reg *registry.Registry) {
	out := make([]ResourceRef, 0, len(c.live.refs))
	for _, r := range c.live.refs {
		if r.Wrapper == nil {
			out = append(out, ResourceRef{Binding: r.Binding, Element: r.Element, Valid: false})
			continue
		}
		if r.Wrapper.Destroyed() {
			z := reg.LookupZombie(r.Wrapper.Kind(), r.Wrapper.DriverHandle())
			if z == nil {
				out = append(out, ResourceRef{Binding: r.Binding, Element: r.Element, Valid: false})
				continue
			}
			out = append(out, ResourceRef{Binding: r.Binding, Element: r.Element, Wrapper: z.Ref(), Valid: true})
			continue
		}
		out = append(out, ResourceRef{Binding: r.Binding, Element: r.Element, Wrapper: r.Wrapper.Ref(), Valid: true})
	}
	c.refs = out
}

// resolve flips the CoW from live-backed to standalone-copy by duplicating
// the set's current data block (spec §3: "resolves the CoW (promotes it to
// mode (b))"). set is the live set passed in by DescriptorSet.resolveLocked
// / destroy, which already hold set.mu.
func (c *CoW) resolve(set *DescriptorSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return
	}
	c.standalone = append([]byte(nil), set.data...)
	if c.refs == nil {
		// ref-everything mode, or a CoW created without refOnSnapshot:
		// carry the set's live reference list forward verbatim, taking an
		// extra ref on each since the set will drop its own on destroy.
		out := make([]ResourceRef, 0, len(set.refs))
		for _, r := range set.refs {
			if r.Wrapper != nil {
				out = append(out, ResourceRef{Binding: r.Binding, Element: r.Element, Wrapper: r.Wrapper.Ref(), Valid: true})
			}
		}
		c.refs = out
	}
	c.live = nil
	c.resolved = true
}

// IsResolved reports whether this CoW has been promoted to a standalone
// copy.
func (c *CoW) IsResolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

// At returns the raw bytes for one descriptor element and whether its
// reference is currently valid (spec §4.3: "A look-up miss marks the
// binding invalid in the snapshot"), reading through whichever state the
// CoW is currently in.
//
// Lock order here is always set-then-cow, mirroring Update/destroy's
// s.mu -> c.mu (via resolveLocked/resolve): never the reverse. We can't
// take c.live's lock while already holding c.mu without risking an AB-BA
// deadlock against a concurrent Update/destroy, so we peek at c.live under
// c.mu, drop c.mu, then take live.mu before re-taking c.mu to check the
// CoW didn't resolve out from under us meanwhile.
func (c *CoW) At(binding, element uint32) (data []byte, valid bool) {
	bl, ok := c.layout.At(binding)
	if !ok {
		return nil, false
	}
	sz := int(bl.SlotSize)
	off := bl.Offset + int(element)*sz

	c.mu.Lock()
	live := c.live
	c.mu.Unlock()

	var src []byte
	gotLive := false
	if live != nil {
		live.mu.Lock()
		c.mu.Lock()
		if c.live == live {
			src = append([]byte(nil), live.data...)
			gotLive = true
		}
		c.mu.Unlock()
		live.mu.Unlock()
	}
	if !gotLive {
		c.mu.Lock()
		src = c.standalone
		c.mu.Unlock()
	}

	if off < 0 || off+sz > len(src) {
		return nil, false
	}
	out := make([]byte, sz)
	copy(out, src[off:off+sz])

	c.mu.Lock()
	valid = c.refValid(binding, element)
	c.mu.Unlock()
	return out, valid
}

func (c *CoW) refValid(binding, element uint32) bool {
	for _, r := range c.refs {
		if r.Binding == binding && r.Element == element {
			return r.Valid
		}
	}
	// no explicit ref entry recorded (e.g. immutable sampler, or a set
	// never snapshotted with refOnSnapshot) - treat as statically valid.
	return true
}

// Layout returns the descriptor set layout this CoW's data is shaped by.
func (c *CoW) Layout() *Layout { return c.layout }
