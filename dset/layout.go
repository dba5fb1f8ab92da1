// Package dset implements Descriptor State Tracking with Copy-on-Write
// (spec §3/§4.3): packed per-set binding storage, standard and template
// updates with element spillover, and cheap CoW snapshotting at submission
// time, grounded on gapis/api/vulkan's descriptor-set replay bookkeeping
// (api_vulkan_common.go's use-tracking of descriptor bindings) generalized
// from a single-pass replay pass to a live, concurrently-snapshotted
// tracker.
package dset

import (
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vk"
)

// SlotSize is the byte size of one descriptor slot in the packed binding
// block, by descriptor type (spec §4.3: "descriptor-slot-size ... image,
// buffer, buffer-view, acceleration-structure, or inline-uniform-block
// bytes"). Inline uniform blocks use their declared byte count directly
// instead of a fixed per-descriptor size.
type SlotSize int

const (
	SlotSizeImage            SlotSize = 24 // sampler + imageView + layout, packed
	SlotSizeBuffer           SlotSize = 24 // buffer handle + offset + range
	SlotSizeBufferView       SlotSize = 8
	SlotSizeAccelStruct      SlotSize = 8
	SlotSizeInlineUniformByte SlotSize = 1
)

func slotSizeFor(t vk.DescriptorType) SlotSize {
	switch t {
	case vk.DescriptorType(vkDescriptorTypeUniformTexelBuffer), vk.DescriptorType(vkDescriptorTypeStorageTexelBuffer):
		return SlotSizeBufferView
	case vk.DescriptorType(vkDescriptorTypeAccelerationStructureKHR):
		return SlotSizeAccelStruct
	case vk.DescriptorType(vkDescriptorTypeInlineUniformBlock):
		return SlotSizeInlineUniformByte
	case vk.DescriptorType(vkDescriptorTypeUniformBuffer), vk.DescriptorType(vkDescriptorTypeStorageBuffer),
		vk.DescriptorType(vkDescriptorTypeUniformBufferDynamic), vk.DescriptorType(vkDescriptorTypeStorageBufferDynamic):
		return SlotSizeBuffer
	default:
		return SlotSizeImage
	}
}

// The vkDescriptorType* constants below mirror VkDescriptorType's values so
// slotSizeFor and BindingLayout.IsDynamic can switch on them without taking
// a hard dependency on vulkan-go's exact enum identifier names, which vary
// across binding generator versions.
const (
	vkDescriptorTypeSampler                  = 0
	vkDescriptorTypeCombinedImageSampler      = 1
	vkDescriptorTypeSampledImage              = 2
	vkDescriptorTypeStorageImage              = 3
	vkDescriptorTypeUniformTexelBuffer        = 4
	vkDescriptorTypeStorageTexelBuffer        = 5
	vkDescriptorTypeUniformBuffer             = 6
	vkDescriptorTypeStorageBuffer             = 7
	vkDescriptorTypeUniformBufferDynamic      = 8
	vkDescriptorTypeStorageBufferDynamic      = 9
	vkDescriptorTypeInputAttachment           = 10
	vkDescriptorTypeInlineUniformBlock        = 1000138000
	vkDescriptorTypeAccelerationStructureKHR  = 1000150000
)

// BindingLayout describes one binding's placement within a set's packed
// data block (spec §4.3: "remember (offset, descriptor-slot-size, count,
// variable-count-flag, immutable-sampler-flag, dynamic-offset-base)").
type BindingLayout struct {
	Binding             uint32
	Type                vk.DescriptorType
	Count               uint32
	Offset              int // byte offset into the set's data block
	SlotSize            SlotSize
	Variable            bool // this is the layout's variable-count binding
	ImmutableSampler    bool
	DynamicOffsetBase   int // index into the set's dynamic-offsets array, -1 if not dynamic
}

func (b BindingLayout) IsDynamic() bool {
	t := int(b.Type)
	return t == vkDescriptorTypeUniformBufferDynamic || t == vkDescriptorTypeStorageBufferDynamic
}

// Layout is the derived, per-DescriptorSetLayout placement table (spec
// §4.3: "Layout of a set's data block is derived once per layout"). It is
// computed once when a VkDescriptorSetLayout is created and shared by
// every set allocated from it.
type Layout struct {
	Handle   vk.DescriptorSetLayout
	Bindings []BindingLayout
	// FixedSize is the block size assuming the variable-count binding (if
	// any) uses its layout-declared maximum count.
	FixedSize int
}

// BuildLayout derives a Layout from an ordered list of binding
// descriptions, the way vkCreateDescriptorSetLayout's pCreateInfo does.
// variableBinding is the binding index flagged
// VARIABLE_DESCRIPTOR_COUNT_BIT, or -1 if none.
func BuildLayout(handle vk.DescriptorSetLayout, bindings []BindingLayout, variableBinding int) *Layout {
	off := 0
	dynBase := 0
	out := make([]BindingLayout, len(bindings))
	for i, b := range bindings {
		b.Offset = off
		b.SlotSize = slotSizeFor(b.Type)
		b.Variable = i == variableBinding
		if b.IsDynamic() {
			b.DynamicOffsetBase = dynBase
			dynBase += int(b.Count)
		} else {
			b.DynamicOffsetBase = -1
		}
		size := int(b.SlotSize) * int(b.Count)
		if b.SlotSize == SlotSizeInlineUniformByte {
			size = int(b.Count) // inline uniform blocks declare Count as byte length
		}
		off += size
		out[i] = b
	}
	return &Layout{Handle: handle, Bindings: out, FixedSize: off}
}

// At returns the binding layout for the given binding number, and whether
// it exists.
func (l *Layout) At(binding uint32) (BindingLayout, bool) {
	for _, b := range l.Bindings {
		if b.Binding == binding {
			return b, true
		}
	}
	return BindingLayout{}, false
}

// NumDynamicOffsets returns the total count of dynamic offsets a
// vkCmdBindDescriptorSets call binding this layout must supply.
func (l *Layout) NumDynamicOffsets() int {
	n := 0
	for _, b := range l.Bindings {
		if b.IsDynamic() {
			n += int(b.Count)
		}
	}
	return n
}

// ResourceRef is one handle referenced from a descriptor slot, used both
// for the live set's registry back-references and for a resolved CoW's
// frozen reference list (spec §4.3 "Reference discipline").
type ResourceRef struct {
	Binding uint32
	Element uint32
	Wrapper *registry.Wrapper // nil if the slot was never written or the handle could not be resolved
	Valid   bool
}
