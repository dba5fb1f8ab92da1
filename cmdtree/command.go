package cmdtree

import (
	"github.com/nyorain/vil/vk"
)

// Command is the capability set every command kind exposes, mirroring
// gapis/api.Cmd's shape but closed over a Kind enum instead of open
// interface polymorphism (spec §4.2): "commands expose their behavior
// through a small uniform capability set {name, category, record_onto,
// match, optional children, optional inspect_ui, visit}."
//
// Implementations must have no non-trivial destructors (spec §3
// invariant) - every field is a value, an arena-owned slice/string, or a
// *registry.Wrapper reference the owning CommandRecord keeps alive
// independently.
type Command interface {
	// Kind returns the command's discriminant.
	Kind() Kind
	// Name returns a short display name (defaults to Kind().Name()).
	Name() string
	// Category returns the command's category (defaults to Kind().Category()).
	Category() Category
	// RecordOnto re-emits this command onto a target command buffer,
	// honoring the given queue family (spec §3: "a method to re-emit
	// itself onto a target command buffer").
	RecordOnto(rec Recorder, target vk.CommandBuffer, qfam uint32)
	// Match scores this command against another command of the same Kind
	// in [0, 1] (spec §4.2). Implementations that have no specialization
	// fall back to DefaultMatch.
	Match(other Command) float64
	// Accept dispatches to the given Visitor, mirroring spec §4.2's
	// "visitor interface with default downcast dispatch for category
	// superclasses."
	Accept(v Visitor)
}

// Recorder is the minimal surface RecordOnto needs to emit driver calls.
// It stands in for the thin Vulkan entry-point trampolines spec §1 places
// out of scope: this core only needs to know that *some* sink accepts a
// typed description of each call, not how that sink marshals it onto the
// real vkCmd* ABI.
type Recorder interface {
	// Emit is called once per re-emitted command with its Kind and a
	// reference to the originating Command, so a real trampoline table can
	// downcast and issue the matching vkCmd* call.
	Emit(cmd Command)
}

// Parent is implemented by section-carrying commands (spec §3: "Parent
// commands additionally expose a child list, a first-child-that-is-also-
// a-parent pointer, and section statistics").
type Parent interface {
	Command
	// Children returns this section's direct children, in record order.
	Children() []Command
	// FirstChildParent returns the first direct child that is itself a
	// Parent, or nil - spec §4.2: "an extra firstChildParent link forming
	// a subsequence of parent-only nodes, used for fast structural walks."
	FirstChildParent() Parent
	// Stats returns the section's aggregated statistics.
	Stats() *SectionStats
}

// Visitor is the double-dispatch interface for the handful of operations
// that need category-based behavior rather than per-Kind behavior (spec
// §4.2: "visitor interface with default downcast dispatch for category
// superclasses (draw-base, dispatch-base, trace-base, barrier-base,
// section-base, parent-base)"). Embedding DefaultVisitor gives every
// unimplemented method a no-op default.
type Visitor interface {
	VisitDraw(c Command)
	VisitDispatch(c Command)
	VisitTraceRays(c Command)
	VisitBarrier(c Command)
	VisitSection(c Parent)
	VisitOther(c Command)
}

// DefaultVisitor implements Visitor with no-op methods; embed it to only
// override the cases you care about.
type DefaultVisitor struct{}

func (DefaultVisitor) VisitDraw(Command)      {}
func (DefaultVisitor) VisitDispatch(Command)  {}
func (DefaultVisitor) VisitTraceRays(Command) {}
func (DefaultVisitor) VisitBarrier(Command)   {}
func (DefaultVisitor) VisitSection(Parent)    {}
func (DefaultVisitor) VisitOther(Command)     {}

// DefaultMatch scores two commands of the same Kind using nothing but
// identity: same Kind, non-zero score for being pairable at all. Commands
// with meaningful parameters override Match to inspect them (spec §4.2:
// "scored by match, which looks at command parameters and, for sections,
// aggregated section statistics").
func DefaultMatch(a, b Command) float64 {
	if a.Kind() != b.Kind() {
		return 0
	}
	return 0.5
}

// dispatch routes a Command through a Visitor by Category, implementing
// the "default downcast dispatch for category superclasses" behavior
// described in spec §4.2. Concrete Accept implementations call this.
func dispatch(c Command, v Visitor) {
	switch c.Category() {
	case CategoryDraw:
		v.VisitDraw(c)
	case CategoryDispatch:
		v.VisitDispatch(c)
	case CategoryTraceRays:
		v.VisitTraceRays(c)
	case CategorySync:
		v.VisitBarrier(c)
	case CategoryBeginRenderPass, CategoryRenderSection:
		if p, ok := c.(Parent); ok {
			v.VisitSection(p)
			return
		}
		v.VisitOther(c)
	default:
		v.VisitOther(c)
	}
}
