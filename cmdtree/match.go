package cmdtree

// match.go implements the hierarchy matching algorithm spec §4.2 describes
// for locating the "same" command across re-recordings of a command
// buffer, so that a hook attached to one recording can find its target in
// the next. Both hierarchies are walked in lock-step along a recorded path,
// and at every level the counterpart is chosen by a best-match search
// within the new parent's direct children; the firstChildParent links are
// not used here.

// MatchResult pairs a target command found in a new hierarchy with the
// score that led to it, or reports that nothing close enough was found.
type MatchResult struct {
	Command Command
	Score   float64
}

// matchThreshold is the minimum Match score a candidate needs to be
// accepted during the direct-children best-match fallback (spec §4.2 edge
// case: "a match below this confidence is treated as no match, not a weak
// match").
const matchThreshold = 0.35

// FindBestMatch locates, within newParent's direct children, the command
// that best matches target (which was found somewhere under oldParent),
// using target.Match. It does not recurse; recursion through sections is
// driven by FollowPath below.
func FindBestMatch(target Command, newParent Parent) MatchResult {
	best := MatchResult{}
	for _, cand := range newParent.Children() {
		if cand.Kind() != target.Kind() {
			continue
		}
		score := target.Match(cand)
		if score > best.Score {
			best = MatchResult{Command: cand, Score: score}
		}
	}
	if best.Score < matchThreshold {
		return MatchResult{}
	}
	return best
}

// FollowPath walks a path of indices recorded against oldRoot (the
// recording a hook was originally attached to) and finds the corresponding
// command under newRoot (a fresh recording of the same command buffer),
// calling FindBestMatch at every step of the path, including intermediate
// sections. targetKind is not consulted.
//
// path is a sequence of child indices into the section chain as recorded
// at hook-build time (spec §4.6: hook records store "a stable path from
// the record root to the hooked command").
func FollowPath(oldRoot, newRoot Parent, path []int, targetKind Kind) (Command, bool) {
	oldParent, newParent := oldRoot, newRoot
	for depth, idx := range path {
		oldChildren := oldParent.Children()
		if idx < 0 || idx >= len(oldChildren) {
			return nil, false
		}
		oldChild := oldChildren[idx]

		last := depth == len(path)-1
		if last {
			result := FindBestMatch(oldChild, newParent)
			if result.Command == nil {
				return nil, false
			}
			return result.Command, true
		}

		oldChildParent, ok := oldChild.(Parent)
		if !ok {
			return nil, false
		}
		result := FindBestMatch(oldChild, newParent)
		if result.Command == nil {
			return nil, false
		}
		newChildParent, ok := result.Command.(Parent)
		if !ok {
			return nil, false
		}
		oldParent, newParent = oldChildParent, newChildParent
	}
	return nil, false
}

// PathTo computes the child-index path from root down to target, the
// inverse of FollowPath, for use at hook-attach time. It returns false if
// target is not reachable from root.
func PathTo(root Parent, target Command) ([]int, bool) {
	var path []int
	var walk func(p Parent) bool
	walk = func(p Parent) bool {
		for i, c := range p.Children() {
			if c == target {
				path = append(path, i)
				return true
			}
			if cp, ok := c.(Parent); ok {
				path = append(path, i)
				if walk(cp) {
					return true
				}
				path = path[:len(path)-1]
			}
		}
		return false
	}
	if walk(root) {
		return path, true
	}
	return nil, false
}
