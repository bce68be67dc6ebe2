package domain

import "strconv"

type Institution struct {
	ID   int
	Name string
}

// Experience is the subset of a significant educational experience needed to
// look it up and prefill an evaluation.
type Experience struct {
	ID                int
	Name              string
	Code              string
	Institution       Institution
	ThematicLineIDs   []int
	ThematicLineNames []string
	StateID           int
}

// ThematicLineLabels returns the thematic line names, or the ids rendered as
// strings when no names are known.
func (x Experience) ThematicLineLabels() []string {
	if len(x.ThematicLineNames) > 0 {
		return append([]string(nil), x.ThematicLineNames...)
	}
	if len(x.ThematicLineIDs) == 0 {
		return nil
	}
	out := make([]string, len(x.ThematicLineIDs))
	for i, id := range x.ThematicLineIDs {
		out[i] = strconv.Itoa(id)
	}
	return out
}

// FindExperience returns the candidate whose id matches.
func FindExperience(id int, candidates []Experience) (Experience, bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Experience{}, false
}
