package hook

import (
	"context"
	"sync"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/dset"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vilerr"
	"github.com/nyorain/vil/vk"
	"github.com/nyorain/vil/vlog"
)

// completedCap bounds the rolling FIFO of completed hook states (spec
// §4.6: "rolling FIFO of most recent completed hook states (bounded size,
// default <=64; warn at high counts)").
const completedCap = 64

// completedWarnThreshold warns once the FIFO has filled past this
// fraction of its cap without being drained, per spec §4.6's "warn at
// high counts".
const completedWarnThreshold = completedCap * 3 / 4

// Engine is the Command Hook/Interception Engine of spec §4.6. One Engine
// is owned per logical device.
type Engine struct {
	mu sync.Mutex

	target Target
	ops    Ops
	haveTarget bool

	registry *registry.Registry

	// perRecord tracks the most recently built hook record for each
	// CommandRecord that has ever been hooked, keyed by pointer identity,
	// enabling step 3's reuse check (spec §4.6).
	perRecord map[*cmdtree.CommandRecord]*HookRecord

	completed []*HookRecord

	capturer Capturer
}

// NewEngine constructs an Engine. capturer performs the driver-level
// capture work the tree-walking Builder delegates to.
func NewEngine(reg *registry.Registry, capturer Capturer) *Engine {
	return &Engine{
		registry:  reg,
		perRecord: map[*cmdtree.CommandRecord]*HookRecord{},
		capturer:  capturer,
	}
}

// SetTarget declares the command the user wants to inspect (spec §4.6
// "set_target"). Changing the target invalidates any previously built
// hook records that do not match the new target's path.
func (e *Engine) SetTarget(t Target) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = t
	e.haveTarget = true
	e.invalidateMismatchedLocked()
}

// ClearTarget removes the current target, including any HookAll request;
// subsequent Hook calls return the original command buffer unchanged,
// except for records that build acceleration structures while
// Ops.AccelStructBuilds is set.
func (e *Engine) ClearTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.haveTarget = false
	e.invalidateAllLocked()
}

// SetOps configures capture behavior (spec §4.6 "set_ops"). Changing ops
// invalidates prior hook records so their captured layouts match current
// needs.
func (e *Engine) SetOps(ops Ops) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ops.Equal(ops) {
		return
	}
	e.ops = ops
	e.invalidateAllLocked()
}

func (e *Engine) invalidateAllLocked() {
	for rec, hr := range e.perRecord {
		if !hr.Pending() {
			hr.Unref()
			delete(e.perRecord, rec)
		}
	}
}

func (e *Engine) invalidateMismatchedLocked() {
	for rec, hr := range e.perRecord {
		if hr.MatchesTarget(e.target.Path, e.target.Kind) {
			continue
		}
		if !hr.Pending() {
			hr.Unref()
			delete(e.perRecord, rec)
		}
	}
}

// isTarget implements spec §4.6 step 1: "A record is a target if it
// matches the set target record, or the user has selected 'hook all of
// this command buffer', or the engine must always hook because the record
// builds acceleration structures whose inputs we want to capture."
func (e *Engine) isTarget(src *cmdtree.CommandRecord) bool {
	if e.haveTarget && e.target.Record == src {
		return true
	}
	if e.haveTarget && e.target.HookAll {
		return true
	}
	if e.ops.AccelStructBuilds && recordBuildsAccelStructs(src) {
		return true
	}
	return false
}

func recordBuildsAccelStructs(src *cmdtree.CommandRecord) bool {
	found := false
	cmdtree.Walk(src.Root(), func(c cmdtree.Command) bool {
		if c.Kind() == cmdtree.KindBuildAccelerationStructuresKHR {
			found = true
			return false
		}
		return true
	})
	return found
}

// Hook implements spec §4.6's full hooking algorithm. cb is the
// application's original command buffer about to be submitted; on return,
// either cb itself or an instrumented replacement is returned alongside
// the CommandHookSubmission to register against the pending submission
// (nil if the record was not a target).
func (e *Engine) Hook(src *cmdtree.CommandRecord, cb vk.CommandBuffer, rec cmdtree.Recorder) (vk.CommandBuffer, *CommandHookSubmission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if src.Invalidated() {
		return cb, nil, vilerr.ErrInvalidated
	}
	if !e.isTarget(src) {
		return cb, nil, nil
	}

	path := e.target.Path
	kind := e.target.Kind

	hr, ok := e.perRecord[src]
	if ok && !hr.Pending() && hr.MatchesTarget(path, kind) && hr.OpsEqual(e.ops) {
		if e.descriptorBindingsUnchanged(hr) {
			snapshot := e.buildSnapshot(src, path)
			sub := newSubmission(hr, src, snapshot)
			return hr.CommandBuffer, sub, nil
		}
		hr.Unref()
		delete(e.perRecord, src)
	}

	newHR := newHookRecord(src, path, kind, e.ops)
	builder := &Builder{Record: newHR, Ops: e.ops, Capturer: e.capturer}
	builder.Build(src.Root(), rec)

	if old, existed := e.perRecord[src]; existed && !old.Pending() {
		old.Unref()
	}
	e.perRecord[src] = newHR

	snapshot := e.buildSnapshot(src, path)
	sub := newSubmission(newHR, src, snapshot)
	return newHR.CommandBuffer, sub, nil
}

// descriptorBindingsUnchanged is the reuse veto of spec §4.6 step 3. It
// vetoes reuse only when a previous descriptor capture was marked invalid;
// captured slot contents are not compared against the current descriptor
// sets.
func (e *Engine) descriptorBindingsUnchanged(hr *HookRecord) bool {
	for _, dc := range hr.Captures.DescriptorBindings {
		if !dc.Valid {
			return false
		}
	}
	return true
}

// buildSnapshot captures the Descriptor Snapshot for every descriptor set
// reachable from the target command's bound state (spec §3 "Descriptor
// Snapshot"). Sets themselves are out of this package's reach (the
// trampoline layer owns the live *dset.DescriptorSet registry); callers
// that want a populated snapshot should instead call BuildSnapshot
// directly with an explicit set list.
func (e *Engine) buildSnapshot(src *cmdtree.CommandRecord, path []int) map[vk.DescriptorSet]*dset.CoW {
	return map[vk.DescriptorSet]*dset.CoW{}
}

// BuildSnapshot captures a Descriptor Snapshot over an explicit list of
// live descriptor sets, used by callers that have already resolved which
// sets the target command's state reaches.
func BuildSnapshot(sets []*dset.DescriptorSet, reg *registry.Registry, discipline dset.RefDiscipline) map[vk.DescriptorSet]*dset.CoW {
	out := make(map[vk.DescriptorSet]*dset.CoW, len(sets))
	for _, s := range sets {
		out[s.Handle()] = s.Snapshot(reg, discipline)
	}
	return out
}

// pushCompleted appends a finished hook record to the rolling FIFO,
// evicting the oldest entry once over completedCap (spec §4.6).
func (e *Engine) pushCompleted(hr *HookRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completed = append(e.completed, hr)
	if len(e.completed) == completedWarnThreshold+1 {
		vlog.Warnf(context.Background(), "hook: completed hook FIFO is filling up", "len", len(e.completed), "cap", completedCap)
	}
	if len(e.completed) > completedCap {
		e.completed[0].Unref()
		e.completed = e.completed[1:]
	}
}

// Completed returns a snapshot of the completed-hooks FIFO, most recent
// last.
func (e *Engine) Completed() []*HookRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*HookRecord, len(e.completed))
	copy(out, e.completed)
	return out
}
