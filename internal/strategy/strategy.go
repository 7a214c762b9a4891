// Package strategy assigns each user to one of the two filtering
// pipelines for A/B comparison. Assignment is a pure function of the
// user identifier, so it is stable across requests and restarts without
// persisting any state.
package strategy

import "hash/fnv"

type Strategy string

const (
	Old Strategy = "old"
	New Strategy = "new"
)

// Selector maps user IDs onto strategies. SplitPercent is the share of
// users (0–100) assigned to the new pipeline; Forced, when non-empty,
// overrides the split for every user.
type Selector struct {
	splitPercent int
	forced       Strategy
}

func NewSelector(splitPercent int, forced string) *Selector {
	if splitPercent < 0 {
		splitPercent = 0
	}
	if splitPercent > 100 {
		splitPercent = 100
	}
	return &Selector{splitPercent: splitPercent, forced: Strategy(forced)}
}

// Select returns the pipeline assignment for the user. Same user, same
// configuration, same answer, always.
func (s *Selector) Select(userID string) Strategy {
	if s.forced == Old || s.forced == New {
		return s.forced
	}
	h := fnv.New32a()
	h.Write([]byte(userID))
	if int(h.Sum32()%100) < s.splitPercent {
		return New
	}
	return Old
}
