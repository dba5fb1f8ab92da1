package cmdtree

import (
	"testing"

	"github.com/nyorain/vil/vk"
)

func TestSectionStatsObserveCounts(t *testing.T) {
	rp := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	rp.AppendChild(NewDraw(3, 1, 0, 0, nil))
	rp.AppendChild(NewDispatch(1, 1, 1, nil))
	rp.AppendChild(NewGeneric(KindSetLineWidth, nil))

	stats := rp.Stats()
	if stats.DrawCount != 1 {
		t.Errorf("DrawCount = %d, want 1", stats.DrawCount)
	}
	if stats.DispatchCount != 1 {
		t.Errorf("DispatchCount = %d, want 1", stats.DispatchCount)
	}
	if stats.TotalCommands != 3 {
		t.Errorf("TotalCommands = %d, want 3", stats.TotalCommands)
	}
}

func TestSectionStatsRecentPipelinesRingBuffer(t *testing.T) {
	rp := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	for i := 1; i <= 6; i++ {
		rp.AppendChild(NewBindPipeline(vk.Pipeline(i), 0))
	}
	stats := rp.Stats()
	if len(stats.RecentPipelines) != maxRecentPipelines {
		t.Fatalf("len(RecentPipelines) = %d, want %d", len(stats.RecentPipelines), maxRecentPipelines)
	}
	want := vk.Pipeline(6)
	if got := stats.RecentPipelines[len(stats.RecentPipelines)-1].Pipeline; got != want {
		t.Fatalf("last recent pipeline = %v, want %v", got, want)
	}
}

func TestSectionStatsMatchScoreIdentical(t *testing.T) {
	a := &SectionStats{DrawCount: 2, DispatchCount: 1, TotalCommands: 3}
	b := &SectionStats{DrawCount: 2, DispatchCount: 1, TotalCommands: 3}
	if got := a.matchScore(b); got != 1 {
		t.Fatalf("matchScore(identical) = %v, want 1", got)
	}
}

func TestSectionStatsMatchScoreNilIsZero(t *testing.T) {
	a := &SectionStats{}
	if got := a.matchScore(nil); got != 0 {
		t.Fatalf("matchScore(nil) = %v, want 0", got)
	}
}

func TestFirstChildParent(t *testing.T) {
	rp := NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	if rp.FirstChildParent() != nil {
		t.Fatal("empty section should have no child parent")
	}
	rp.AppendChild(NewDraw(1, 1, 0, 0, nil))
	sub := NewNextSubpass(1)
	rp.AppendChild(sub)
	if rp.FirstChildParent() != Parent(sub) {
		t.Fatalf("FirstChildParent() = %v, want %v", rp.FirstChildParent(), sub)
	}
}
