package cmdtree

import "testing"

func TestGenericCmdParam(t *testing.T) {
	c := NewGeneric(KindSetLineWidth, []Property{{Name: "width", Value: float32(2.5)}})
	v, ok := c.Param("width")
	if !ok {
		t.Fatal("expected width property to be found")
	}
	if v.(float32) != 2.5 {
		t.Fatalf("width = %v, want 2.5", v)
	}
	if _, ok := c.Param("missing"); ok {
		t.Fatal("missing property should not be found")
	}
}

func TestGenericCmdMatchNoProps(t *testing.T) {
	a := NewGeneric(KindSetLineWidth, nil)
	b := NewGeneric(KindSetLineWidth, nil)
	if got := a.Match(b); got != 1 {
		t.Fatalf("Match() = %v, want 1 for two propertyless commands", got)
	}
}

func TestGenericCmdMatchPartialOverlap(t *testing.T) {
	a := NewGeneric(KindSetLineWidth, []Property{
		{Name: "width", Value: float32(1)},
		{Name: "extra", Value: "x"},
	})
	b := NewGeneric(KindSetLineWidth, []Property{
		{Name: "width", Value: float32(1)},
		{Name: "extra", Value: "y"},
	})
	if got := a.Match(b); got != 0.5 {
		t.Fatalf("Match() = %v, want 0.5 (1 of 2 properties equal)", got)
	}
}

func TestGenericCmdMatchDifferentKindFallsBackToDefault(t *testing.T) {
	a := NewGeneric(KindSetLineWidth, nil)
	b := NewGeneric(KindSetCullMode, nil)
	if got := a.Match(b); got != 0 {
		t.Fatalf("Match() across kinds = %v, want 0", got)
	}
}

func TestEqualPropRecoversFromUncomparableValues(t *testing.T) {
	a := NewGeneric(KindSetLineWidth, []Property{{Name: "data", Value: []byte{1, 2}}})
	b := NewGeneric(KindSetLineWidth, []Property{{Name: "data", Value: []byte{1, 2}}})
	// []byte is uncomparable via ==; equalProp must recover and report
	// false rather than panic.
	if got := a.Match(b); got != 0 {
		t.Fatalf("Match() with uncomparable property = %v, want 0", got)
	}
}
