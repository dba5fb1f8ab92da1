package cmdtree

import "github.com/nyorain/vil/vk"

// Property is one named argument of a GenericCmd, mirroring the
// (paramTag-driven) reflection access gapis/api.GetParameter/SetParameter
// provide over generated command structs - this package has no generated
// structs for every one of the ~120 kinds, so GenericCmd carries its
// arguments as an explicit property list instead of via struct tags.
type Property struct {
	Name  string
	Value any
}

// GenericCmd is the fallback payload for any Kind that has no dedicated
// type in specific.go: most of the ~120 recording commands have no
// capture- or match-relevant state beyond "it happened, with these
// arguments" (e.g. SetLineWidth, SetStencilReference, SetSampleLocations).
// Spec §4.2 closes the variant set at compile time; this is the mechanism
// that lets it do so without ~100 near-duplicate Go types.
type GenericCmd struct {
	kind  Kind
	props []Property
}

// NewGeneric constructs a GenericCmd of the given kind with the given
// properties, copying neither - callers allocate props as an arena span
// via arena.NewSlice[Property] when they want it batch-freed with the
// record; property Values that are themselves handles are expected to
// additionally be retained via the owning CommandRecord's resource list
// (spec §3: "a list of resource references ... kept alive at least until
// the record is destroyed").
func NewGeneric(kind Kind, props []Property) *GenericCmd {
	return &GenericCmd{kind: kind, props: props}
}

func (c *GenericCmd) Kind() Kind         { return c.kind }
func (c *GenericCmd) Name() string       { return c.kind.Name() }
func (c *GenericCmd) Category() Category { return c.kind.Category() }

// Param returns the named property and whether it was found, mirroring
// gapis/api.GetParameter.
func (c *GenericCmd) Param(name string) (any, bool) {
	for _, p := range c.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (c *GenericCmd) Properties() []Property { return c.props }

func (c *GenericCmd) RecordOnto(rec Recorder, target vk.CommandBuffer, qfam uint32) {
	rec.Emit(c)
}

func (c *GenericCmd) Match(other Command) float64 {
	o, ok := other.(*GenericCmd)
	if !ok || o.kind != c.kind {
		return DefaultMatch(c, other)
	}
	if len(c.props) == 0 {
		return 1
	}
	matches := 0
	for _, p := range c.props {
		if v, ok := o.Param(p.Name); ok && equalProp(v, p.Value) {
			matches++
		}
	}
	return float64(matches) / float64(len(c.props))
}

func (c *GenericCmd) Accept(v Visitor) { dispatch(c, v) }

func equalProp(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
