// Package rpsplit implements the Render Pass Splitter of spec §4.5: given
// a compiled render pass description and a target subpass, it derives
// rp0/rp1/rp2 - three render passes that together reproduce the original
// execution while exposing the target subpass's boundary for mid-pass
// hooking.
//
// Grounded on gapis/api/vulkan/command_splitter.go, which performs the
// same rp0/rp1/rp2 derivation (there called "splitting" a render pass
// around a subpass boundary) to let gapid's replay insert readback
// commands mid-renderpass; this package generalizes that one-shot replay
// transform into a function callable repeatedly by a live hook engine.
package rpsplit

import "github.com/nyorain/vil/vk"

// Splittable reports whether target can be split out of desc, per spec
// §4.5's predicate: "a subpass is splittable if none of its resolve
// attachments are later read or written in a way that the
// GENERAL-intermediate-layout transition would corrupt, and no multiview
// info is present."
func Splittable(desc *vk.RenderPassDesc, target int) bool {
	if target < 0 || target >= len(desc.Subpasses) {
		return false
	}
	sp := desc.Subpasses[target]
	if sp.ViewMask != 0 {
		return false
	}
	if len(sp.ResolveAttachments) == 0 {
		return true
	}
	const attachmentUnused = ^uint32(0) // VK_ATTACHMENT_UNUSED
	for _, resolve := range sp.ResolveAttachments {
		if resolve.Index == attachmentUnused {
			continue
		}
		for later := target + 1; later < len(desc.Subpasses); later++ {
			if attachmentTouched(desc.Subpasses[later], resolve.Index) {
				return false
			}
		}
	}
	return true
}

func attachmentTouched(sp vk.SubpassDesc, index uint32) bool {
	for _, a := range sp.ColorAttachments {
		if a.Index == index {
			return true
		}
	}
	for _, a := range sp.InputAttachments {
		if a.Index == index {
			return true
		}
	}
	if sp.DepthStencil != nil && sp.DepthStencil.Index == index {
		return true
	}
	return false
}

// Split is the three derived render pass descriptions for one splitting
// operation, keyed by stage name to match spec §4.5's rp0/rp1/rp2 naming.
type Split struct {
	RP0 *vk.RenderPassDesc
	RP1 *vk.RenderPassDesc
	RP2 *vk.RenderPassDesc
}

// Derive builds the rp0/rp1/rp2 triple for splitting desc around subpass
// target. Callers must check Splittable first; Derive does not re-check.
func Derive(desc *vk.RenderPassDesc, target int) *Split {
	return &Split{
		RP0: deriveRP0(desc, target),
		RP1: deriveRP1(desc, target),
		RP2: deriveRP2(desc, target),
	}
}

// deriveRP0 "begins with the original load ops and attachment layouts,
// runs subpasses 0..=target, and ends each attachment it touches in
// GENERAL layout with store" (spec §4.5).
func deriveRP0(desc *vk.RenderPassDesc, target int) *vk.RenderPassDesc {
	out := &vk.RenderPassDesc{
		Attachments: cloneAttachments(desc.Attachments),
		Subpasses:   cloneSubpasses(desc.Subpasses[:target+1]),
	}
	touched := touchedAttachments(desc.Subpasses[:target+1])
	for i := range out.Attachments {
		if touched[out.Attachments[i].Index] {
			out.Attachments[i].Layout = generalLayout()
			out.Attachments[i].StoreOp = storeOpStore()
		}
	}
	return out
}

// deriveRP1 "begins with attachments in GENERAL/load, runs only the target
// subpass, and ends in GENERAL/store" (spec §4.5).
func deriveRP1(desc *vk.RenderPassDesc, target int) *vk.RenderPassDesc {
	out := &vk.RenderPassDesc{
		Attachments: cloneAttachments(desc.Attachments),
		Subpasses:   []vk.SubpassDesc{desc.Subpasses[target]},
	}
	touched := touchedAttachments(out.Subpasses)
	for i := range out.Attachments {
		if touched[out.Attachments[i].Index] {
			out.Attachments[i].Layout = generalLayout()
			out.Attachments[i].LoadOp = loadOpLoad()
			out.Attachments[i].StoreOp = storeOpStore()
		}
	}
	return out
}

// deriveRP2 "begins with attachments in GENERAL/load, runs subpasses
// target..=last, with original final layouts and store ops of the
// original render pass" (spec §4.5).
func deriveRP2(desc *vk.RenderPassDesc, target int) *vk.RenderPassDesc {
	out := &vk.RenderPassDesc{
		Attachments: cloneAttachments(desc.Attachments),
		Subpasses:   cloneSubpasses(desc.Subpasses[target:]),
	}
	touched := touchedAttachments(desc.Subpasses[target:])
	for i := range out.Attachments {
		if touched[out.Attachments[i].Index] {
			out.Attachments[i].Layout = generalLayout()
			out.Attachments[i].LoadOp = loadOpLoad()
			// StoreOp/final layout are left as desc's originals, already
			// copied by cloneAttachments.
		}
	}
	return out
}

func touchedAttachments(subpasses []vk.SubpassDesc) map[uint32]bool {
	out := map[uint32]bool{}
	mark := func(refs []vk.AttachmentRef) {
		for _, r := range refs {
			out[r.Index] = true
		}
	}
	for _, sp := range subpasses {
		mark(sp.ColorAttachments)
		mark(sp.ResolveAttachments)
		mark(sp.InputAttachments)
		if sp.DepthStencil != nil {
			out[sp.DepthStencil.Index] = true
		}
	}
	return out
}

func cloneAttachments(in []vk.AttachmentRef) []vk.AttachmentRef {
	out := make([]vk.AttachmentRef, len(in))
	copy(out, in)
	return out
}

func cloneSubpasses(in []vk.SubpassDesc) []vk.SubpassDesc {
	out := make([]vk.SubpassDesc, len(in))
	for i, sp := range in {
		out[i] = vk.SubpassDesc{
			ColorAttachments:   cloneAttachments(sp.ColorAttachments),
			ResolveAttachments: cloneAttachments(sp.ResolveAttachments),
			InputAttachments:   cloneAttachments(sp.InputAttachments),
			ViewMask:           sp.ViewMask,
		}
		if sp.DepthStencil != nil {
			ds := *sp.DepthStencil
			out[i].DepthStencil = &ds
		}
	}
	return out
}

// generalLayout/loadOpLoad/storeOpStore return the VK_IMAGE_LAYOUT_GENERAL
// / VK_ATTACHMENT_LOAD_OP_LOAD / VK_ATTACHMENT_STORE_OP_STORE values; named
// helpers instead of bare casts so call sites read the way spec §4.5's
// prose does.
func generalLayout() vk.ImageLayout   { return vk.ImageLayout(1) } // VK_IMAGE_LAYOUT_GENERAL
func loadOpLoad() vk.AttachmentLoadOp { return vk.AttachmentLoadOp(0) } // VK_ATTACHMENT_LOAD_OP_LOAD
func storeOpStore() vk.AttachmentStoreOp { return vk.AttachmentStoreOp(0) } // VK_ATTACHMENT_STORE_OP_STORE

// DynamicSplit mirrors Derive for the VK_KHR_dynamic_rendering path (spec
// §4.5: "the original BeginRendering block is emitted with storeOp =
// STORE; rp1 and rp2 stages become re-issued BeginRenderings with loadOp =
// LOAD and appropriate store ops"). There is only one subpass, so
// splitting only changes load/store ops, never subpass ranges.
type DynamicSplit struct {
	Begin0, Begin1, Begin2 struct {
		Colors       []vk.AttachmentRef
		DepthStencil *vk.AttachmentRef
	}
}

func DeriveDynamic(colors []vk.AttachmentRef, depthStencil *vk.AttachmentRef) *DynamicSplit {
	d := &DynamicSplit{}
	d.Begin0.Colors = cloneAttachments(colors)
	for i := range d.Begin0.Colors {
		d.Begin0.Colors[i].StoreOp = storeOpStore()
	}
	d.Begin1.Colors = cloneAttachments(colors)
	for i := range d.Begin1.Colors {
		d.Begin1.Colors[i].LoadOp = loadOpLoad()
		d.Begin1.Colors[i].StoreOp = storeOpStore()
	}
	d.Begin2.Colors = cloneAttachments(colors)
	for i := range d.Begin2.Colors {
		d.Begin2.Colors[i].LoadOp = loadOpLoad()
	}
	if depthStencil != nil {
		ds0, ds1, ds2 := *depthStencil, *depthStencil, *depthStencil
		ds0.StoreOp = storeOpStore()
		ds1.LoadOp, ds1.StoreOp = loadOpLoad(), storeOpStore()
		ds2.LoadOp = loadOpLoad()
		d.Begin0.DepthStencil, d.Begin1.DepthStencil, d.Begin2.DepthStencil = &ds0, &ds1, &ds2
	}
	return d
}
