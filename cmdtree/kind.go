package cmdtree

// Kind identifies one of the ~120 vkCmd* recording commands a command
// buffer may contain (spec §3: "A discriminated variant across roughly 120
// kinds"). Every Kind has a Category (below) and a display name. Kinds
// whose state is relevant to the hook engine's capture primitives (§4.6)
// or the matcher (§4.2) get a dedicated payload type in specific.go;
// every other Kind is carried by GenericCmd (generic.go) with its
// arguments held as an arena-copied property list, per spec §9's redesign
// note: a closed enum switch replaces per-kind virtual dispatch, and kinds
// that need no special handling fall back to one shared representation
// instead of ~100 near-identical Go structs.
type Kind int

const (
	KindUnknown Kind = iota

	// bind
	KindBindPipeline
	KindBindDescriptorSets
	KindBindVertexBuffers
	KindBindIndexBuffer
	KindBindTransformFeedbackBuffers
	KindPushConstants
	KindPushDescriptorSet
	KindPushDescriptorSetWithTemplate
	KindSetViewport
	KindSetScissor
	KindSetLineWidth
	KindSetDepthBias
	KindSetBlendConstants
	KindSetDepthBounds
	KindSetStencilCompareMask
	KindSetStencilWriteMask
	KindSetStencilReference
	KindSetCullMode
	KindSetFrontFace
	KindSetPrimitiveTopology
	KindSetViewportWithCount
	KindSetScissorWithCount
	KindSetDepthTestEnable
	KindSetDepthWriteEnable
	KindSetDepthCompareOp
	KindSetStencilTestEnable
	KindSetStencilOp
	KindSetRasterizerDiscardEnable
	KindSetDepthBiasEnable
	KindSetPrimitiveRestartEnable
	KindBindShadingRateImage

	// sync
	KindPipelineBarrier
	KindPipelineBarrier2
	KindSetEvent
	KindResetEvent
	KindWaitEvents
	KindMemoryBarrier
	KindExecutionBarrier

	// draw
	KindDraw
	KindDrawIndexed
	KindDrawIndirect
	KindDrawIndexedIndirect
	KindDrawIndirectCount
	KindDrawIndexedIndirectCount
	KindDrawMeshTasksEXT
	KindDrawMeshTasksIndirectEXT
	KindDrawMultiEXT

	// dispatch
	KindDispatch
	KindDispatchIndirect
	KindDispatchBase

	// transfer
	KindCopyBuffer
	KindCopyImage
	KindCopyBufferToImage
	KindCopyImageToBuffer
	KindBlitImage
	KindResolveImage
	KindUpdateBuffer
	KindFillBuffer
	KindClearColorImage
	KindClearDepthStencilImage
	KindClearAttachment
	KindCopyQueryPoolResults
	KindCopyAccelerationStructureKHR
	KindCopyAccelerationStructureToMemoryKHR
	KindCopyMemoryToAccelerationStructureKHR

	// end
	KindEndRenderPass
	KindEndRendering
	KindEndDebugLabel
	KindEndConditionalRendering
	KindEndQuery
	KindEndTransformFeedback
	KindEndCommandBuffer

	// query
	KindBeginQuery
	KindResetQueryPool
	KindWriteTimestamp
	KindWriteTimestamp2
	KindWriteAccelerationStructuresPropertiesKHR

	// trace-rays
	KindTraceRaysKHR
	KindTraceRaysIndirectKHR
	KindTraceRaysIndirect2KHR

	// build-accel-struct
	KindBuildAccelerationStructuresKHR
	KindBuildAccelerationStructuresIndirectKHR

	// begin-render-pass
	KindBeginRenderPass
	KindBeginRenderPass2
	KindBeginRendering

	// render-section
	KindNextSubpass
	KindNextSubpass2
	KindBeginDebugLabel
	KindBeginConditionalRendering
	KindExecuteCommandsChild

	// other
	KindExecuteCommands
	KindBeginCommandBuffer
	KindBeginTransformFeedback
	KindSetSampleLocations
	KindSetDeviceMask
	KindSetCheckpointNV
	KindDebugMarkerInsert
	KindInsertDebugUtilsLabel
	KindWriteBufferMarker
	KindBindInvocationMaskHUAWEI
	KindSetFragmentShadingRate
	KindSetColorWriteEnable
	KindSetVertexInput
	KindSetAlphaToCoverageEnable
	KindSetLogicOp
	KindOpticalFlowExecuteNV

	numKinds
)

type kindInfo struct {
	name     string
	category Category
}

var kindTable = [numKinds]kindInfo{
	KindUnknown: {"Unknown", CategoryOther},

	KindBindPipeline:                 {"BindPipeline", CategoryBind},
	KindBindDescriptorSets:           {"BindDescriptorSets", CategoryBind},
	KindBindVertexBuffers:            {"BindVertexBuffers", CategoryBind},
	KindBindIndexBuffer:              {"BindIndexBuffer", CategoryBind},
	KindBindTransformFeedbackBuffers: {"BindTransformFeedbackBuffersEXT", CategoryBind},
	KindPushConstants:                {"PushConstants", CategoryBind},
	KindPushDescriptorSet:            {"PushDescriptorSetKHR", CategoryBind},
	KindPushDescriptorSetWithTemplate: {"PushDescriptorSetWithTemplateKHR", CategoryBind},
	KindSetViewport:                  {"SetViewport", CategoryBind},
	KindSetScissor:                   {"SetScissor", CategoryBind},
	KindSetLineWidth:                 {"SetLineWidth", CategoryBind},
	KindSetDepthBias:                 {"SetDepthBias", CategoryBind},
	KindSetBlendConstants:            {"SetBlendConstants", CategoryBind},
	KindSetDepthBounds:               {"SetDepthBounds", CategoryBind},
	KindSetStencilCompareMask:        {"SetStencilCompareMask", CategoryBind},
	KindSetStencilWriteMask:          {"SetStencilWriteMask", CategoryBind},
	KindSetStencilReference:          {"SetStencilReference", CategoryBind},
	KindSetCullMode:                  {"SetCullMode", CategoryBind},
	KindSetFrontFace:                 {"SetFrontFace", CategoryBind},
	KindSetPrimitiveTopology:         {"SetPrimitiveTopology", CategoryBind},
	KindSetViewportWithCount:         {"SetViewportWithCount", CategoryBind},
	KindSetScissorWithCount:          {"SetScissorWithCount", CategoryBind},
	KindSetDepthTestEnable:           {"SetDepthTestEnable", CategoryBind},
	KindSetDepthWriteEnable:          {"SetDepthWriteEnable", CategoryBind},
	KindSetDepthCompareOp:            {"SetDepthCompareOp", CategoryBind},
	KindSetStencilTestEnable:         {"SetStencilTestEnable", CategoryBind},
	KindSetStencilOp:                 {"SetStencilOp", CategoryBind},
	KindSetRasterizerDiscardEnable:   {"SetRasterizerDiscardEnable", CategoryBind},
	KindSetDepthBiasEnable:           {"SetDepthBiasEnable", CategoryBind},
	KindSetPrimitiveRestartEnable:    {"SetPrimitiveRestartEnable", CategoryBind},
	KindBindShadingRateImage:         {"BindShadingRateImageNV", CategoryBind},

	KindPipelineBarrier:   {"PipelineBarrier", CategorySync},
	KindPipelineBarrier2:  {"PipelineBarrier2", CategorySync},
	KindSetEvent:          {"SetEvent", CategorySync},
	KindResetEvent:        {"ResetEvent", CategorySync},
	KindWaitEvents:        {"WaitEvents", CategorySync},
	KindMemoryBarrier:     {"MemoryBarrier", CategorySync},
	KindExecutionBarrier:  {"ExecutionBarrier", CategorySync},

	KindDraw:                     {"Draw", CategoryDraw},
	KindDrawIndexed:              {"DrawIndexed", CategoryDraw},
	KindDrawIndirect:             {"DrawIndirect", CategoryDraw},
	KindDrawIndexedIndirect:      {"DrawIndexedIndirect", CategoryDraw},
	KindDrawIndirectCount:        {"DrawIndirectCount", CategoryDraw},
	KindDrawIndexedIndirectCount: {"DrawIndexedIndirectCount", CategoryDraw},
	KindDrawMeshTasksEXT:         {"DrawMeshTasksEXT", CategoryDraw},
	KindDrawMeshTasksIndirectEXT: {"DrawMeshTasksIndirectEXT", CategoryDraw},
	KindDrawMultiEXT:             {"DrawMultiEXT", CategoryDraw},

	KindDispatch:         {"Dispatch", CategoryDispatch},
	KindDispatchIndirect: {"DispatchIndirect", CategoryDispatch},
	KindDispatchBase:     {"DispatchBase", CategoryDispatch},

	KindCopyBuffer:                            {"CopyBuffer", CategoryTransfer},
	KindCopyImage:                             {"CopyImage", CategoryTransfer},
	KindCopyBufferToImage:                     {"CopyBufferToImage", CategoryTransfer},
	KindCopyImageToBuffer:                     {"CopyImageToBuffer", CategoryTransfer},
	KindBlitImage:                             {"BlitImage", CategoryTransfer},
	KindResolveImage:                          {"ResolveImage", CategoryTransfer},
	KindUpdateBuffer:                          {"UpdateBuffer", CategoryTransfer},
	KindFillBuffer:                            {"FillBuffer", CategoryTransfer},
	KindClearColorImage:                       {"ClearColorImage", CategoryTransfer},
	KindClearDepthStencilImage:                {"ClearDepthStencilImage", CategoryTransfer},
	KindClearAttachment:                       {"ClearAttachment", CategoryTransfer},
	KindCopyQueryPoolResults:                  {"CopyQueryPoolResults", CategoryTransfer},
	KindCopyAccelerationStructureKHR:          {"CopyAccelerationStructureKHR", CategoryTransfer},
	KindCopyAccelerationStructureToMemoryKHR:  {"CopyAccelerationStructureToMemoryKHR", CategoryTransfer},
	KindCopyMemoryToAccelerationStructureKHR:  {"CopyMemoryToAccelerationStructureKHR", CategoryTransfer},

	KindEndRenderPass:           {"EndRenderPass", CategoryEnd},
	KindEndRendering:            {"EndRendering", CategoryEnd},
	KindEndDebugLabel:           {"EndDebugUtilsLabelEXT", CategoryEnd},
	KindEndConditionalRendering: {"EndConditionalRenderingEXT", CategoryEnd},
	KindEndQuery:                {"EndQuery", CategoryEnd},
	KindEndTransformFeedback:    {"EndTransformFeedbackEXT", CategoryEnd},
	KindEndCommandBuffer:        {"EndCommandBuffer", CategoryEnd},

	KindBeginQuery:                                {"BeginQuery", CategoryQuery},
	KindResetQueryPool:                             {"ResetQueryPool", CategoryQuery},
	KindWriteTimestamp:                             {"WriteTimestamp", CategoryQuery},
	KindWriteTimestamp2:                            {"WriteTimestamp2", CategoryQuery},
	KindWriteAccelerationStructuresPropertiesKHR:   {"WriteAccelerationStructuresPropertiesKHR", CategoryQuery},

	KindTraceRaysKHR:         {"TraceRaysKHR", CategoryTraceRays},
	KindTraceRaysIndirectKHR: {"TraceRaysIndirectKHR", CategoryTraceRays},
	KindTraceRaysIndirect2KHR: {"TraceRaysIndirect2KHR", CategoryTraceRays},

	KindBuildAccelerationStructuresKHR:         {"BuildAccelerationStructuresKHR", CategoryBuildAccelStruct},
	KindBuildAccelerationStructuresIndirectKHR: {"BuildAccelerationStructuresIndirectKHR", CategoryBuildAccelStruct},

	KindBeginRenderPass:  {"BeginRenderPass", CategoryBeginRenderPass},
	KindBeginRenderPass2: {"BeginRenderPass2", CategoryBeginRenderPass},
	KindBeginRendering:   {"BeginRendering", CategoryBeginRenderPass},

	KindNextSubpass:               {"NextSubpass", CategoryRenderSection},
	KindNextSubpass2:              {"NextSubpass2", CategoryRenderSection},
	KindBeginDebugLabel:           {"BeginDebugUtilsLabelEXT", CategoryRenderSection},
	KindBeginConditionalRendering: {"BeginConditionalRenderingEXT", CategoryRenderSection},
	KindExecuteCommandsChild:      {"ExecuteCommandsChild", CategoryRenderSection},

	KindExecuteCommands:             {"ExecuteCommands", CategoryOther},
	KindBeginCommandBuffer:          {"BeginCommandBuffer", CategoryOther},
	KindBeginTransformFeedback:      {"BeginTransformFeedbackEXT", CategoryOther},
	KindSetSampleLocations:          {"SetSampleLocationsEXT", CategoryOther},
	KindSetDeviceMask:               {"SetDeviceMask", CategoryOther},
	KindSetCheckpointNV:             {"SetCheckpointNV", CategoryOther},
	KindDebugMarkerInsert:           {"DebugMarkerInsertEXT", CategoryOther},
	KindInsertDebugUtilsLabel:       {"InsertDebugUtilsLabelEXT", CategoryOther},
	KindWriteBufferMarker:           {"WriteBufferMarkerAMD", CategoryOther},
	KindBindInvocationMaskHUAWEI:    {"BindInvocationMaskHUAWEI", CategoryOther},
	KindSetFragmentShadingRate:      {"SetFragmentShadingRateKHR", CategoryOther},
	KindSetColorWriteEnable:         {"SetColorWriteEnableEXT", CategoryOther},
	KindSetVertexInput:              {"SetVertexInputEXT", CategoryOther},
	KindSetAlphaToCoverageEnable:    {"SetAlphaToCoverageEnableEXT", CategoryOther},
	KindSetLogicOp:                  {"SetLogicOpEXT", CategoryOther},
	KindOpticalFlowExecuteNV:        {"OpticalFlowExecuteNV", CategoryOther},
}

// Name returns the command's Vulkan-style display name, e.g. "DrawIndexed".
func (k Kind) Name() string {
	if k < 0 || int(k) >= len(kindTable) || kindTable[k].name == "" {
		return "Unknown"
	}
	return kindTable[k].name
}

// Category returns the command's category.
func (k Kind) Category() Category {
	if k < 0 || int(k) >= len(kindTable) {
		return CategoryOther
	}
	return kindTable[k].category
}

// IsSection reports whether commands of this kind carry children.
func (k Kind) IsSection() bool { return k.Category().IsSection() }

// NumKinds returns the total number of distinct command kinds known to the
// layer (spec §3: "roughly 120 kinds").
func NumKinds() int { return int(numKinds) - 1 }
