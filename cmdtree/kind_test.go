package cmdtree

import "testing"

func TestKindNameAndCategory(t *testing.T) {
	if got := KindDrawIndexed.Name(); got != "DrawIndexed" {
		t.Fatalf("Name() = %q, want DrawIndexed", got)
	}
	if got := KindDrawIndexed.Category(); got != CategoryDraw {
		t.Fatalf("Category() = %v, want CategoryDraw", got)
	}
}

func TestKindOutOfRangeIsUnknown(t *testing.T) {
	if got := Kind(-1).Name(); got != "Unknown" {
		t.Fatalf("Name() = %q, want Unknown", got)
	}
	if got := Kind(100000).Name(); got != "Unknown" {
		t.Fatalf("Name() = %q, want Unknown", got)
	}
	if got := Kind(100000).Category(); got != CategoryOther {
		t.Fatalf("Category() = %v, want CategoryOther", got)
	}
}

func TestKindIsSectionMatchesCategory(t *testing.T) {
	if !KindBeginRenderPass.IsSection() {
		t.Error("KindBeginRenderPass should be a section kind")
	}
	if !KindNextSubpass.IsSection() {
		t.Error("KindNextSubpass should be a section kind")
	}
	if KindDraw.IsSection() {
		t.Error("KindDraw should not be a section kind")
	}
}

func TestNumKindsMatchesTableSize(t *testing.T) {
	if NumKinds() <= 100 {
		t.Fatalf("NumKinds() = %d, want > 100 (spec: roughly 120 kinds)", NumKinds())
	}
	if NumKinds() != len(kindTable)-1 {
		t.Fatalf("NumKinds() = %d, want %d (kindTable entries minus the zero kind)", NumKinds(), len(kindTable)-1)
	}
}

func TestEveryKindHasAName(t *testing.T) {
	for k := KindBindPipeline; k < numKinds; k++ {
		if name := k.Name(); name == "" {
			t.Errorf("Kind(%d) has no name", k)
		}
	}
}
