// Package registry implements the Resource Registry of spec §4.4: it owns
// reference-counted wrapper structures for every Vulkan object the layer
// cares about, keyed by the underlying driver handle, and propagates
// destruction notifications to interested subsystems.
//
// Grounded on gapis/api/handle.go's Handle interface (every wrapped object
// exposes its driver handle as a uint64) and on gapis/api/resource.go's
// notion of a registry of live, identity-tracked objects; the "zombie
// buffer" retention window is grounded on gapis/memory/pool.go's pattern of
// keeping recently-invalidated state around briefly to smooth over
// identity races, generalized here to object destruction rather than pool
// writes.
package registry

import (
	"sync"

	"github.com/nyorain/vil/vk"
)

// ObjectKind enumerates the wrapped Vulkan object kinds named in spec
// §4.4.
type ObjectKind int

const (
	KindImage ObjectKind = iota
	KindImageView
	KindBuffer
	KindBufferView
	KindSampler
	KindDescriptorSet
	KindDescriptorPool
	KindDescriptorLayout
	KindPipeline
	KindPipelineLayout
	KindRenderPass
	KindFramebuffer
	KindEvent
	KindSemaphore
	KindFence
	KindQueryPool
	KindMemory
	KindAccelStruct
	KindUpdateTemplate
	KindShaderModule
	KindCommandPool
	KindCommandBuffer
	numKinds
)

var kindNames = [numKinds]string{
	KindImage:            "image",
	KindImageView:        "image_view",
	KindBuffer:           "buffer",
	KindBufferView:       "buffer_view",
	KindSampler:          "sampler",
	KindDescriptorSet:    "descriptor_set",
	KindDescriptorPool:   "descriptor_pool",
	KindDescriptorLayout: "descriptor_layout",
	KindPipeline:         "pipeline",
	KindPipelineLayout:   "pipeline_layout",
	KindRenderPass:       "render_pass",
	KindFramebuffer:      "framebuffer",
	KindEvent:            "event",
	KindSemaphore:        "semaphore",
	KindFence:            "fence",
	KindQueryPool:        "query_pool",
	KindMemory:           "memory",
	KindAccelStruct:      "accel_struct",
	KindUpdateTemplate:   "update_template",
	KindShaderModule:     "shader_module",
	KindCommandPool:      "command_pool",
	KindCommandBuffer:    "command_buffer",
}

func (k ObjectKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// AllKinds returns every ObjectKind, used by config to build the
// VIL_WRAP_<KIND> override table.
func AllKinds() []ObjectKind {
	out := make([]ObjectKind, numKinds)
	for i := range out {
		out[i] = ObjectKind(i)
	}
	return out
}

// Handle is implemented by every wrapper kind, mirroring gapis/api.Handle.
type Handle interface {
	// DriverHandle returns the wrapped object's underlying driver handle.
	DriverHandle() uint64
	// Kind returns the object's kind.
	Kind() ObjectKind
}

// Wrapper is the reference-counted registry entry for one Vulkan object.
// Shared ownership: every strong reference held by a CommandRecord,
// descriptor set slot, or in-flight submission increments Refs.
type Wrapper struct {
	mu        sync.Mutex
	handle    uint64
	kind      ObjectKind
	refs      int
	destroyed bool
	data      Handle // the concrete wrapped object, if any
}

func (w *Wrapper) DriverHandle() uint64 { return w.handle }
func (w *Wrapper) Kind() ObjectKind     { return w.kind }

// Ref increments the wrapper's reference count and returns it.
func (w *Wrapper) Ref() *Wrapper {
	w.mu.Lock()
	w.refs++
	w.mu.Unlock()
	return w
}

// Unref decrements the reference count; callers never free Wrapper memory
// themselves (the registry owns the entry until destroy is observed and the
// zombie window, if any, expires), so Unref only adjusts bookkeeping used
// by tests and diagnostics.
func (w *Wrapper) Unref() {
	w.mu.Lock()
	if w.refs > 0 {
		w.refs--
	}
	w.mu.Unlock()
}

// Destroyed reports whether the underlying driver handle has been
// destroyed by the application (spec §3 invariant: "a handle referenced by
// a command is valid or the record's invalidated flag is set").
func (w *Wrapper) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// Data returns the concrete wrapped object attached at registration time
// (e.g. a *dset.DescriptorSet for KindDescriptorSet), or nil.
func (w *Wrapper) Data() Handle { return w.data }

// DestroyListener is notified when a wrapper is removed from the registry.
// Spec §4.4: "a notification is propagated to interested subsystems:
// pending draws, GUI selection state, and descriptor sets that reference
// it."
type DestroyListener func(w *Wrapper)

// zombieEntry is a recently-destroyed wrapper retained for N frames to
// reduce false-positive identity collisions under ref-on-snapshot mode
// (spec §4.3, §4.4).
type zombieEntry struct {
	w        *Wrapper
	expireAt uint64 // frame counter value at which this entry is evicted
}

// Registry owns every live Wrapper, keyed by (kind, driver handle). It is
// protected by the device-wide mutex described in spec §5 - callers are
// expected to hold that lock (or an equivalent) around Lookup/Register/
// NotifyDestroyed when consistency across the resource list and pending
// submissions is required; Registry's own mutex only protects its internal
// maps.
type Registry struct {
	mu        sync.RWMutex
	objects   map[key]*Wrapper
	zombies   map[key]*zombieEntry
	listeners []DestroyListener
	frame     uint64
	zombieTTL uint64
}

type key struct {
	kind   ObjectKind
	handle uint64
}

// New constructs an empty Registry. zombieTTL is the number of frames (see
// AdvanceFrame) a destroyed wrapper of any kind is retained before its
// zombie entry is evicted.
func New(zombieTTL uint64) *Registry {
	if zombieTTL == 0 {
		zombieTTL = 3
	}
	return &Registry{
		objects:   map[key]*Wrapper{},
		zombies:   map[key]*zombieEntry{},
		zombieTTL: zombieTTL,
	}
}

// AddDestroyListener registers l to be called whenever a wrapper is
// removed from the registry.
func (r *Registry) AddDestroyListener(l DestroyListener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// Register creates (or replaces) the wrapper for handle/kind and returns
// it, with a reference count of 1 held on behalf of the caller.
func (r *Registry) Register(kind ObjectKind, handle uint64, data Handle) *Wrapper {
	w := &Wrapper{handle: handle, kind: kind, refs: 1, data: data}
	k := key{kind, handle}
	r.mu.Lock()
	r.objects[k] = w
	delete(r.zombies, k)
	r.mu.Unlock()
	return w
}

// Lookup returns the live wrapper for (kind, handle), or nil if it is not
// registered (spec §4.4 contract: "lookup(handle) -> wrapper").
func (r *Registry) Lookup(kind ObjectKind, handle uint64) *Wrapper {
	if vk.NullHandle(handle) {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objects[key{kind, handle}]
}

// LookupPtr is Lookup but also takes a strong reference on behalf of the
// caller, for long-term retention (spec §4.4: "lookup_ptr(handle) returns a
// shared pointer for long-term retention").
func (r *Registry) LookupPtr(kind ObjectKind, handle uint64) *Wrapper {
	w := r.Lookup(kind, handle)
	if w != nil {
		w.Ref()
	}
	return w
}

// LookupZombie returns a recently-destroyed wrapper for (kind, handle) if
// it is still within its zombie retention window, used by the ref-on-
// snapshot descriptor path (spec §4.3) to distinguish "freshly destroyed,
// probably the handle we meant" from "never existed".
func (r *Registry) LookupZombie(kind ObjectKind, handle uint64) *Wrapper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if z, ok := r.zombies[key{kind, handle}]; ok {
		return z.w
	}
	return nil
}

// NotifyDestroyed removes the wrapper for (kind, handle) from the live set,
// marks it destroyed, retains it briefly as a zombie, and calls every
// registered DestroyListener - spec §6: "Object-destroy entry points call
// notify_destroyed(handle, kind)".
func (r *Registry) NotifyDestroyed(kind ObjectKind, handle uint64) {
	k := key{kind, handle}
	r.mu.Lock()
	w, ok := r.objects[k]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.objects, k)
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
	r.zombies[k] = &zombieEntry{w: w, expireAt: r.frame + r.zombieTTL}
	listeners := append([]DestroyListener{}, r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(w)
	}
}

// AdvanceFrame evicts expired zombie entries. Callers invoke this once per
// presented frame (or per some other regular cadence) to bound zombie
// retention, per spec §4.4's "N frames" policy.
func (r *Registry) AdvanceFrame() {
	r.mu.Lock()
	r.frame++
	for k, z := range r.zombies {
		if r.frame >= z.expireAt {
			delete(r.zombies, k)
		}
	}
	r.mu.Unlock()
}

// Len returns the number of live objects, for diagnostics/tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}
