package cmdtree

import (
	"testing"

	"github.com/nyorain/vil/vk"
)

func TestFindBestMatchPicksHighestScore(t *testing.T) {
	parent := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	parent.AppendChild(NewBindPipeline(vk.Pipeline(1), 0))
	parent.AppendChild(NewBindPipeline(vk.Pipeline(2), 0))

	target := NewBindPipeline(vk.Pipeline(2), 0)
	result := FindBestMatch(target, parent)
	if result.Command == nil {
		t.Fatal("expected a match")
	}
	got := result.Command.(*BindPipelineCmd)
	if got.Pipeline != vk.Pipeline(2) {
		t.Fatalf("matched pipeline = %v, want 2", got.Pipeline)
	}
	if result.Score != 1 {
		t.Fatalf("score = %v, want 1 (exact match)", result.Score)
	}
}

func TestFindBestMatchBelowThresholdReturnsEmpty(t *testing.T) {
	parent := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	parent.AppendChild(NewBindDescriptorSets(0, 0, 0, []vk.DescriptorSet{1, 2, 3}, nil))

	target := NewBindDescriptorSets(0, 0, 0, []vk.DescriptorSet{9, 9, 9}, nil)
	result := FindBestMatch(target, parent)
	if result.Command != nil {
		t.Fatalf("expected no match below threshold, got %v (score %v)", result.Command, result.Score)
	}
}

func TestFollowPathAndPathToRoundTrip(t *testing.T) {
	r := New(0)
	rp := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	r.Append(nil, rp)
	sub := NewNextSubpass(0)
	r.Append(rp, sub)
	target := NewBindPipeline(vk.Pipeline(7), 0)
	r.Append(sub, target)

	path, ok := PathTo(r.Root(), target)
	if !ok {
		t.Fatal("PathTo should find the target")
	}
	if len(path) != 3 {
		t.Fatalf("path = %v, want length 3 (rp, sub, target)", path)
	}

	// Build a fresh re-recording with structurally equivalent commands and
	// confirm FollowPath re-locates the corresponding bind.
	r2 := New(0)
	rp2 := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	r2.Append(nil, rp2)
	sub2 := NewNextSubpass(0)
	r2.Append(rp2, sub2)
	target2 := NewBindPipeline(vk.Pipeline(7), 0)
	r2.Append(sub2, target2)

	found, ok := FollowPath(r.Root(), r2.Root(), path, KindBindPipeline)
	if !ok {
		t.Fatal("FollowPath should relocate the target in the new recording")
	}
	if found.(*BindPipelineCmd).Pipeline != vk.Pipeline(7) {
		t.Fatalf("FollowPath found %v, want pipeline 7", found)
	}
}

func TestPathToMissingCommand(t *testing.T) {
	r := New(0)
	r.Append(nil, NewDraw(1, 1, 0, 0, nil))
	other := NewDraw(2, 1, 0, 0, nil)
	if _, ok := PathTo(r.Root(), other); ok {
		t.Fatal("PathTo should report false for a command never appended")
	}
}
