package dset

import "testing"

func TestPoolTrackAndFree(t *testing.T) {
	p := NewPool(1)
	l := uniformLayout()
	s := NewDescriptorSet(10, l, 0, p)
	p.Track(s)

	p.Free(10)
	if p.FreeListLen() != 1 {
		t.Fatalf("FreeListLen() = %d, want 1", p.FreeListLen())
	}
}

func TestPoolFreeUnknownHandleIsNoop(t *testing.T) {
	p := NewPool(1)
	p.Free(999)
	if p.FreeListLen() != 0 {
		t.Fatalf("FreeListLen() = %d, want 0", p.FreeListLen())
	}
}

func TestPoolResetDestroysAllLiveSets(t *testing.T) {
	p := NewPool(1)
	l := uniformLayout()
	s1 := NewDescriptorSet(1, l, 0, p)
	s2 := NewDescriptorSet(2, l, 0, p)
	p.Track(s1)
	p.Track(s2)

	p.Reset()
	if p.FreeListLen() != 2 {
		t.Fatalf("FreeListLen() = %d, want 2", p.FreeListLen())
	}
}
