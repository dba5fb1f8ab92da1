package keys

import (
	"context"
	"testing"
)

func TestWithValueRoundTrip(t *testing.T) {
	type k1 string
	ctx := context.Background()
	ctx = WithValue(ctx, k1("a"), 1)
	ctx = WithValue(ctx, k1("b"), 2)

	if v, _ := ctx.Value(k1("a")).(int); v != 1 {
		t.Fatalf("a = %v, want 1", v)
	}
	if v, _ := ctx.Value(k1("b")).(int); v != 2 {
		t.Fatalf("b = %v, want 2", v)
	}
}

func TestKeysDeduplicatesMostRecentFirst(t *testing.T) {
	type k1 string
	ctx := context.Background()
	ctx = WithValue(ctx, k1("a"), 1)
	ctx = WithValue(ctx, k1("b"), 2)
	ctx = WithValue(ctx, k1("a"), 3)

	got := Keys(ctx)
	want := []interface{}{k1("a"), k1("b")}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKeysEmpty(t *testing.T) {
	if got := Keys(context.Background()); len(got) != 0 {
		t.Fatalf("Keys() = %v, want empty", got)
	}
}
