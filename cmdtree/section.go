package cmdtree

import "github.com/nyorain/vil/vk"

// maxRecentPipelines bounds the per-section most-recently-bound-pipelines
// list (spec §3: "a linked list of up to N recently bound pipelines").
const maxRecentPipelines = 4

// PipelineBinding records one pipeline bind observed within a section, used
// by the matcher to compare sections across re-recordings (spec §3/§4.2).
type PipelineBinding struct {
	Pipeline   vk.Pipeline
	BindPoint  vk.PipelineBindPoint
	CommandIdx int // index of the BindPipeline command within the section
}

// SectionStats aggregates statistics for one parent command, per spec §3:
// "per-category counts, plus a linked list of up to N recently bound
// pipelines."
type SectionStats struct {
	DrawCount      int
	DispatchCount  int
	SyncCount      int
	TotalCommands  int
	NestedSections int

	// RecentPipelines is a fixed-capacity ring of the last
	// maxRecentPipelines BindPipeline commands seen directly in this
	// section (not recursing into nested sections), oldest first and most
	// recent last.
	RecentPipelines []PipelineBinding
}

func newSectionStats(a arenaLike) *SectionStats {
	return &SectionStats{RecentPipelines: make([]PipelineBinding, 0, maxRecentPipelines)}
}

// observe folds one child command's contribution into the section's
// statistics, called by CommandRecord.Append as each command is linked in
// (spec overview: "updates section statistics").
func (s *SectionStats) observe(c Command) {
	s.TotalCommands++
	switch c.Category() {
	case CategoryDraw:
		s.DrawCount++
	case CategoryDispatch:
		s.DispatchCount++
	case CategorySync:
		s.SyncCount++
	case CategoryBeginRenderPass, CategoryRenderSection:
		s.NestedSections++
	}
	if bp, ok := c.(*BindPipelineCmd); ok {
		binding := PipelineBinding{Pipeline: bp.Pipeline, BindPoint: bp.BindPoint, CommandIdx: s.TotalCommands - 1}
		if len(s.RecentPipelines) >= maxRecentPipelines {
			copy(s.RecentPipelines, s.RecentPipelines[1:])
			s.RecentPipelines[len(s.RecentPipelines)-1] = binding
		} else {
			s.RecentPipelines = append(s.RecentPipelines, binding)
		}
	}
}

// matchScore compares two section statistics, contributing to a parent
// command's overall Match score (spec §4.2: matching "looks at ... for
// sections, aggregated section statistics - number of draws/dispatches/
// sync commands, bound pipelines").
func (s *SectionStats) matchScore(o *SectionStats) float64 {
	if s == nil || o == nil {
		return 0
	}
	score := 0.0
	weight := 0.0
	score += closeness(s.DrawCount, o.DrawCount)
	weight++
	score += closeness(s.DispatchCount, o.DispatchCount)
	weight++
	score += closeness(s.SyncCount, o.SyncCount)
	weight++
	score += closeness(s.TotalCommands, o.TotalCommands)
	weight++
	score += closeness(s.NestedSections, o.NestedSections)
	weight++

	pipeMatches := 0
	for _, a := range s.RecentPipelines {
		for _, b := range o.RecentPipelines {
			if a.Pipeline == b.Pipeline {
				pipeMatches++
				break
			}
		}
	}
	maxPipes := len(s.RecentPipelines)
	if len(o.RecentPipelines) > maxPipes {
		maxPipes = len(o.RecentPipelines)
	}
	if maxPipes > 0 {
		score += float64(pipeMatches) / float64(maxPipes)
		weight++
	}
	if weight == 0 {
		return 1
	}
	return score / weight
}

func closeness(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	max := a
	if b > max {
		max = b
	}
	return 1 - float64(diff)/float64(max)
}

// arenaLike avoids an import cycle between cmdtree and arena for the one
// helper (newSectionStats) that would otherwise need *arena.Arena; stats
// are small enough that they are plain Go-GC-owned even though the
// commands that hold them live in the arena - they contain no handles that
// need arena lifetime tracking, only plain counters and values copied out
// of commands that are themselves arena-owned.
type arenaLike interface{}

// Section is embedded by every section-carrying (Parent) command. It holds
// the child list and aggregated statistics described in spec §3/§4.2.
type Section struct {
	kind     Kind
	children []Command
	stats    *SectionStats
}

func newSection(kind Kind) Section {
	return Section{kind: kind, stats: newSectionStats(nil)}
}

func (s *Section) Kind() Kind           { return s.kind }
func (s *Section) Category() Category   { return s.kind.Category() }
func (s *Section) Children() []Command  { return s.children }
func (s *Section) Stats() *SectionStats { return s.stats }

// FirstChildParent returns the first child that is itself a Parent,
// forming the "subsequence of parent-only nodes" spec §4.2 describes.
func (s *Section) FirstChildParent() Parent {
	for _, c := range s.children {
		if p, ok := c.(Parent); ok {
			return p
		}
	}
	return nil
}

func (s *Section) append(c Command) {
	s.children = append(s.children, c)
	s.stats.observe(c)
}
