// Package vk re-exports the subset of the Vulkan type vocabulary the
// introspection core needs, plus a few layer-local descriptive structs that
// have no counterpart in the raw binding. It never calls into the driver:
// the wire format of the actual entry-point trampolines is out of scope for
// this core (see spec §1); only the shared type vocabulary lives here so
// that cmdtree, dset, registry, rpsplit, hook and copyback can talk about
// the same handles and structs without each re-declaring them.
package vk

import vulkan "github.com/vulkan-go/vulkan"

// Dispatchable and non-dispatchable handle types used throughout the core.
type (
	Image                 = vulkan.Image
	ImageView             = vulkan.ImageView
	Buffer                = vulkan.Buffer
	BufferView            = vulkan.BufferView
	Sampler               = vulkan.Sampler
	DeviceMemory          = vulkan.DeviceMemory
	DescriptorSet         = vulkan.DescriptorSet
	DescriptorSetLayout   = vulkan.DescriptorSetLayout
	DescriptorPool        = vulkan.DescriptorPool
	DescriptorUpdateTemplate = vulkan.DescriptorUpdateTemplate
	Pipeline              = vulkan.Pipeline
	PipelineLayout        = vulkan.PipelineLayout
	RenderPass            = vulkan.RenderPass
	Framebuffer           = vulkan.Framebuffer
	CommandBuffer         = vulkan.CommandBuffer
	CommandPool           = vulkan.CommandPool
	QueryPool             = vulkan.QueryPool
	Event                 = vulkan.Event
	Semaphore             = vulkan.Semaphore
	Fence                 = vulkan.Fence
	ShaderModule          = vulkan.ShaderModule
	Queue                 = vulkan.Queue
	Device                = vulkan.Device
)

// AccelerationStructure is declared locally: the pinned vulkan-go/vulkan
// revision this module targets predates VK_KHR_acceleration_structure, so
// there is no vulkan.AccelerationStructureKHR to alias. It carries the same
// non-dispatchable-handle shape (a driver-opaque uint64) as every other
// handle in this file; once the binding picks up the KHR extension this
// becomes a type alias like the others.
type AccelerationStructure uint64

// Enums, re-exported verbatim so callers never import vulkan-go directly.
type (
	Format            = vulkan.Format
	ImageLayout       = vulkan.ImageLayout
	DescriptorType    = vulkan.DescriptorType
	PipelineBindPoint = vulkan.PipelineBindPoint
	ImageAspectFlags  = vulkan.ImageAspectFlags
	IndexType         = vulkan.IndexType
	AttachmentLoadOp  = vulkan.AttachmentLoadOp
	AttachmentStoreOp = vulkan.AttachmentStoreOp
)

// Geometry / copy-region structs, re-exported verbatim.
type (
	Extent3D              = vulkan.Extent3D
	Offset3D              = vulkan.Offset3D
	Rect2D                = vulkan.Rect2D
	Viewport              = vulkan.Viewport
	ImageSubresourceLayers = vulkan.ImageSubresourceLayers
	ImageSubresourceRange  = vulkan.ImageSubresourceRange
	BufferCopy             = vulkan.BufferCopy
	ImageCopy              = vulkan.ImageCopy
	BufferImageCopy        = vulkan.BufferImageCopy
	ClearValue             = vulkan.ClearValue
	ClearColorValue        = vulkan.ClearColorValue
	ClearDepthStencilValue = vulkan.ClearDepthStencilValue
	DrawIndirectCommand        = vulkan.DrawIndirectCommand
	DrawIndexedIndirectCommand = vulkan.DrawIndexedIndirectCommand
	DispatchIndirectCommand    = vulkan.DispatchIndirectCommand
)

// NullHandle reports whether a non-dispatchable handle is the Vulkan null
// handle (zero value for every handle type in this binding).
func NullHandle[H ~uint64](h H) bool { return h == 0 }

// AttachmentRef is a layer-local description of a render pass attachment
// reference; it has no counterpart in vulkan-go/vulkan because that binding
// only carries vk.AttachmentReference as a flat (index, layout) pair used
// at vkCreateRenderPass time, whereas the splitter (§4.5) needs to carry
// the attachment's own load/store ops and format alongside the reference
// while it rewrites rp0/rp1/rp2.
type AttachmentRef struct {
	Index       uint32
	Layout      ImageLayout
	Format      Format
	LoadOp      AttachmentLoadOp
	StoreOp     AttachmentStoreOp
	StencilLoad AttachmentLoadOp
	StencilStore AttachmentStoreOp
	Samples     uint32
	Resolve     bool
	Multiview   bool
}

// SubpassDesc is a layer-local, simplified description of one subpass of a
// compiled render pass: enough information for the splitter to decide
// splittability and to re-emit pre/mid/post render passes (§4.5).
type SubpassDesc struct {
	ColorAttachments   []AttachmentRef
	ResolveAttachments []AttachmentRef
	InputAttachments   []AttachmentRef
	DepthStencil       *AttachmentRef
	ViewMask           uint32 // non-zero implies multiview
}

// RenderPassDesc is a layer-local compiled render pass description, as
// recorded by a BeginRenderPass command (§3 "Command Record") or derived by
// the dynamic-rendering path (vk.RenderingInfo equivalent).
type RenderPassDesc struct {
	Attachments []AttachmentRef
	Subpasses   []SubpassDesc
}
