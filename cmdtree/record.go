package cmdtree

import (
	"sync"
	"sync/atomic"

	"github.com/nyorain/vil/arena"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vilerr"
	"github.com/nyorain/vil/vk"
)

// rootKind is the synthetic kind of a CommandRecord's root node, which has
// no Vulkan counterpart - it exists purely to give the record a single
// Parent to hang EndCommandBuffer bookkeeping and top-level statistics off
// of (spec §3: "a synthetic root node").
const rootKind = Kind(-1)

type rootCmd struct {
	Section
}

func newRoot() *rootCmd {
	r := &rootCmd{}
	r.Section = Section{kind: rootKind, stats: newSectionStats(nil)}
	return r
}

func (r *rootCmd) Name() string                                                { return "Root" }
func (r *rootCmd) RecordOnto(rec Recorder, target vk.CommandBuffer, qfam uint32) {}
func (r *rootCmd) Match(other Command) float64                                 { return 1 }
func (r *rootCmd) Accept(v Visitor)                                             { v.VisitOther(r) }

// CommandRecord is the arena-backed representation of one VkCommandBuffer's
// recorded contents (spec §3 "Command Record": "An arena allocator owning
// all memory for one command buffer recording ... A root node ... A flat
// list of references to every resource (image, buffer, pipeline, ...)
// touched by any command in the record, used to keep those resources alive
// ... A set of hook records attached to this command buffer ... An
// invalidated flag").
//
// A CommandRecord is shared-ownership: the application's VkCommandBuffer
// handle holds one reference, and any in-flight submission or UI snapshot
// that captured a pointer to it holds another, exactly mirroring gapid's
// atom-list retention across replay (core/memory/arena + gapis/api.Cmd
// lifetime) generalized from single-threaded replay to live, concurrently
// submitted recordings.
type CommandRecord struct {
	mu sync.Mutex

	arena *arena.Arena
	root  *rootCmd

	qfam uint32

	// resources is every registry.Wrapper referenced anywhere in this
	// record, kept alive (ref'd) at least until the record is destroyed
	// (spec §3).
	resources []*registry.Wrapper

	// hooks is the set of hook names with at least one hook record still
	// attached to this CommandRecord, so a Reset/Begin can fast-path "no
	// hooks to detach" (spec §4.6).
	hooks map[string]struct{}

	refs        int32
	invalidated int32 // atomic bool
}

// New allocates a fresh, empty CommandRecord for the given queue family
// index. The caller holds the first reference.
func New(qfam uint32) *CommandRecord {
	return &CommandRecord{
		arena: arena.New(),
		root:  newRoot(),
		qfam:  qfam,
		hooks: map[string]struct{}{},
		refs:  1,
	}
}

// Arena returns the record's arena, for allocating command payloads and
// copied byte slices (push constants, update-template data, ...).
func (r *CommandRecord) Arena() *arena.Arena { return r.arena }

// QueueFamily returns the queue family index this command buffer was
// allocated against.
func (r *CommandRecord) QueueFamily() uint32 { return r.qfam }

// Root returns the record's synthetic root Parent node.
func (r *CommandRecord) Root() Parent { return r.root }

// Ref increments the record's reference count, mirroring registry.Wrapper's
// shared-ownership discipline (spec §3 and §5 "Resource lifetime"): a
// submission in flight, or a UI snapshot that retained a *CommandRecord,
// holds its own reference independent of VkCommandBuffer's.
func (r *CommandRecord) Ref() *CommandRecord {
	atomic.AddInt32(&r.refs, 1)
	return r
}

// Unref drops a reference; once it reaches zero the arena is disposed and
// every retained resource reference is released.
func (r *CommandRecord) Unref() {
	if atomic.AddInt32(&r.refs, -1) > 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.resources {
		res.Unref()
	}
	r.resources = nil
	r.arena.Dispose()
}

// Invalidate marks the record unusable for replay (spec §3 "invalidated
// flag": "set when a referenced resource ... is destroyed while the record
// is still retained"). Once invalidated, Append returns
// vilerr.ErrInvalidated.
func (r *CommandRecord) Invalidate() {
	atomic.StoreInt32(&r.invalidated, 1)
}

// Invalidated reports whether Invalidate has been called.
func (r *CommandRecord) Invalidated() bool {
	return atomic.LoadInt32(&r.invalidated) != 0
}

// TrackResource adds w to the record's retained-resource list, ref'ing it;
// the reference is released by the final Unref (spec §3/§5). No destroy
// listener is registered: destruction of w does not invalidate the record
// by itself, that is done through Invalidate.
func (r *CommandRecord) TrackResource(w *registry.Wrapper) {
	if w == nil {
		return
	}
	r.mu.Lock()
	r.resources = append(r.resources, w.Ref())
	r.mu.Unlock()
}

// Append links a newly built command onto the currently open section
// (root, or the innermost still-open Parent), updating that section's
// statistics (spec overview: "updates section statistics").
//
// parent is nil to append directly under the root.
func (r *CommandRecord) Append(parent Parent, c Command) error {
	if r.Invalidated() {
		return vilerr.ErrInvalidated
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if parent == nil {
		r.root.append(c)
		return nil
	}
	type appender interface{ AppendChild(Command) }
	a, ok := parent.(appender)
	if !ok {
		return vilerr.New("parent does not accept children")
	}
	a.AppendChild(c)
	return nil
}

// Walk performs a pre-order traversal of the record's full command tree,
// calling fn for every command including section commands themselves
// (children are visited after their parent). Walk stops early if fn
// returns false.
func Walk(root Parent, fn func(Command) bool) bool {
	for _, c := range root.Children() {
		if !fn(c) {
			return false
		}
		if p, ok := c.(Parent); ok {
			if !Walk(p, fn) {
				return false
			}
		}
	}
	return true
}
