package cmdtree

import (
	"testing"

	"github.com/nyorain/vil/vk"
)

func TestDefaultMatch(t *testing.T) {
	a := NewGeneric(KindSetLineWidth, nil)
	b := NewGeneric(KindSetLineWidth, nil)
	c := NewGeneric(KindSetCullMode, nil)

	if got := DefaultMatch(a, b); got != 0.5 {
		t.Fatalf("DefaultMatch(same kind) = %v, want 0.5", got)
	}
	if got := DefaultMatch(a, c); got != 0 {
		t.Fatalf("DefaultMatch(different kind) = %v, want 0", got)
	}
}

type recordingVisitor struct {
	DefaultVisitor
	draws, dispatches, sections, other int
}

func (v *recordingVisitor) VisitDraw(Command)     { v.draws++ }
func (v *recordingVisitor) VisitDispatch(Command) { v.dispatches++ }
func (v *recordingVisitor) VisitSection(Parent)   { v.sections++ }
func (v *recordingVisitor) VisitOther(Command)    { v.other++ }

func TestDispatchRoutesByCategory(t *testing.T) {
	v := &recordingVisitor{}

	NewDraw(3, 1, 0, 0, nil).Accept(v)
	NewDispatch(1, 1, 1, nil).Accept(v)
	NewGeneric(KindSetLineWidth, nil).Accept(v)

	if v.draws != 1 {
		t.Errorf("draws = %d, want 1", v.draws)
	}
	if v.dispatches != 1 {
		t.Errorf("dispatches = %d, want 1", v.dispatches)
	}
	if v.other != 1 {
		t.Errorf("other = %d, want 1", v.other)
	}
}

func TestDispatchRoutesSectionToVisitSection(t *testing.T) {
	v := &recordingVisitor{}
	rp := NewBeginRenderPass(0, 0, vk.Rect2D{}, nil, nil, true)
	rp.Accept(v)
	if v.sections != 1 {
		t.Fatalf("sections = %d, want 1", v.sections)
	}
}
