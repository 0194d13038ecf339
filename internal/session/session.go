// Package session gives one live trajectory exclusive ownership of a
// mutable world copy. The agent's tool calls step the live copy; the
// pristine snapshot is kept aside for scoring.
package session

import (
	"github.com/metalagman/retailsim/internal/action"
	"github.com/metalagman/retailsim/internal/score"
	"github.com/metalagman/retailsim/internal/world"
)

// Session holds the two timelines of one trajectory: the initial
// snapshot (never mutated) and the live copy the agent acts on.
// A Session is single-trajectory state, not safe for concurrent use;
// run concurrent trajectories on separate sessions.
type Session struct {
	initial  *world.State
	live     *world.State
	registry *action.Registry
	scorer   *score.Scorer
}

// New starts a session over a snapshot with the default binary reward.
// The snapshot is cloned twice so the caller's copy stays untouched.
func New(snapshot *world.State, registry *action.Registry) *Session {
	return NewWithOptions(snapshot, registry, score.DefaultOptions())
}

// NewWithOptions starts a session with custom reward options.
func NewWithOptions(snapshot *world.State, registry *action.Registry, opts score.Options) *Session {
	return &Session{
		initial:  snapshot.Clone(),
		live:     snapshot.Clone(),
		registry: registry,
		scorer:   score.NewScorer(registry, opts),
	}
}

// Step applies one agent action to the live copy and returns the
// result. Unknown action names no-op.
func (s *Session) Step(act action.Action) action.Result {
	return s.registry.Dispatch(s.live, act)
}

// State exposes the live copy, e.g. for inspection or final scoring by
// an external reward manager. Callers must not retain it across Reset.
func (s *Session) State() *world.State {
	return s.live
}

// Reward scores the live copy against a ground-truth replay over the
// initial snapshot.
func (s *Session) Reward(groundTruth []action.Action) float64 {
	return s.scorer.Score(s.live, s.initial, groundTruth)
}

// Reset discards the live copy and starts over from the snapshot.
func (s *Session) Reset() {
	s.live = s.initial.Clone()
}
