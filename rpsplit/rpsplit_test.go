package rpsplit

import (
	"testing"

	"github.com/nyorain/vil/vk"
)

func simpleDesc() *vk.RenderPassDesc {
	return &vk.RenderPassDesc{
		Attachments: []vk.AttachmentRef{
			{Index: 0, Format: 1},
			{Index: 1, Format: 2},
		},
		Subpasses: []vk.SubpassDesc{
			{ColorAttachments: []vk.AttachmentRef{{Index: 0}}},
			{ColorAttachments: []vk.AttachmentRef{{Index: 0}}, InputAttachments: []vk.AttachmentRef{{Index: 1}}},
		},
	}
}

func TestSplittableSimpleCase(t *testing.T) {
	if !Splittable(simpleDesc(), 0) {
		t.Fatal("a subpass with no resolve attachments should be splittable")
	}
}

func TestSplittableOutOfRangeTarget(t *testing.T) {
	if Splittable(simpleDesc(), 5) {
		t.Fatal("out-of-range target should not be splittable")
	}
}

func TestSplittableRejectsMultiview(t *testing.T) {
	desc := simpleDesc()
	desc.Subpasses[0].ViewMask = 1
	if Splittable(desc, 0) {
		t.Fatal("multiview subpass should not be splittable")
	}
}

func TestSplittableRejectsResolveReadLater(t *testing.T) {
	desc := &vk.RenderPassDesc{
		Attachments: []vk.AttachmentRef{{Index: 0}, {Index: 1}},
		Subpasses: []vk.SubpassDesc{
			{ResolveAttachments: []vk.AttachmentRef{{Index: 1}}},
			{InputAttachments: []vk.AttachmentRef{{Index: 1}}},
		},
	}
	if Splittable(desc, 0) {
		t.Fatal("a resolve attachment read by a later subpass should block splitting")
	}
}

func TestSplittableAllowsUnusedResolve(t *testing.T) {
	const attachmentUnused = ^uint32(0)
	desc := &vk.RenderPassDesc{
		Attachments: []vk.AttachmentRef{{Index: 0}},
		Subpasses: []vk.SubpassDesc{
			{ResolveAttachments: []vk.AttachmentRef{{Index: attachmentUnused}}},
			{},
		},
	}
	if !Splittable(desc, 0) {
		t.Fatal("an unused resolve attachment slot should not block splitting")
	}
}

func TestDeriveRP0CoversSubpassesUpToTarget(t *testing.T) {
	desc := simpleDesc()
	split := Derive(desc, 1)
	if len(split.RP0.Subpasses) != 2 {
		t.Fatalf("RP0 has %d subpasses, want 2 (0..=1)", len(split.RP0.Subpasses))
	}
	if split.RP0.Attachments[0].Layout != generalLayout() {
		t.Fatalf("RP0 touched attachment layout = %v, want GENERAL", split.RP0.Attachments[0].Layout)
	}
	if split.RP0.Attachments[0].StoreOp != storeOpStore() {
		t.Fatal("RP0 touched attachment should end with STORE")
	}
}

func TestDeriveRP1OnlyTargetSubpass(t *testing.T) {
	desc := simpleDesc()
	split := Derive(desc, 1)
	if len(split.RP1.Subpasses) != 1 {
		t.Fatalf("RP1 has %d subpasses, want 1", len(split.RP1.Subpasses))
	}
	if split.RP1.Attachments[0].LoadOp != loadOpLoad() {
		t.Fatal("RP1 touched attachment should LOAD")
	}
}

func TestDeriveRP2CoversRemainingSubpasses(t *testing.T) {
	desc := simpleDesc()
	split := Derive(desc, 0)
	if len(split.RP2.Subpasses) != 2 {
		t.Fatalf("RP2 has %d subpasses, want 2 (0..=last)", len(split.RP2.Subpasses))
	}
	if split.RP2.Attachments[0].LoadOp != loadOpLoad() {
		t.Fatal("RP2 touched attachment should LOAD")
	}
}

func TestDeriveDoesNotMutateOriginal(t *testing.T) {
	desc := simpleDesc()
	originalLayout := desc.Attachments[0].Layout
	Derive(desc, 0)
	if desc.Attachments[0].Layout != originalLayout {
		t.Fatal("Derive must not mutate the input RenderPassDesc")
	}
}

func TestDeriveDynamicColorsAndDepthStencil(t *testing.T) {
	colors := []vk.AttachmentRef{{Index: 0}}
	ds := &vk.AttachmentRef{Index: 1}
	split := DeriveDynamic(colors, ds)

	if split.Begin0.Colors[0].StoreOp != storeOpStore() {
		t.Fatal("Begin0 colors should end with STORE")
	}
	if split.Begin1.Colors[0].LoadOp != loadOpLoad() || split.Begin1.Colors[0].StoreOp != storeOpStore() {
		t.Fatal("Begin1 colors should LOAD and STORE")
	}
	if split.Begin2.Colors[0].LoadOp != loadOpLoad() {
		t.Fatal("Begin2 colors should LOAD")
	}
	if split.Begin0.DepthStencil == nil || split.Begin1.DepthStencil == nil || split.Begin2.DepthStencil == nil {
		t.Fatal("depth-stencil should be carried through every stage")
	}
}

func TestDeriveDynamicNoDepthStencil(t *testing.T) {
	split := DeriveDynamic([]vk.AttachmentRef{{Index: 0}}, nil)
	if split.Begin0.DepthStencil != nil {
		t.Fatal("DeriveDynamic without a depth-stencil attachment should leave it nil")
	}
}
