// Package score replays a ground-truth action trajectory against a
// private copy of the initial world snapshot and compares canonical
// fingerprints with the agent-produced end state, emitting a binary
// reward.
package score

import (
	"github.com/rs/zerolog/log"

	"github.com/metalagman/retailsim/internal/action"
	"github.com/metalagman/retailsim/internal/canonical"
	"github.com/metalagman/retailsim/internal/world"
)

// Options tune the emitted reward values. Match holds for digest
// equality, Mismatch for everything else including hashing failures.
type Options struct {
	Match    float64
	Mismatch float64
}

// DefaultOptions is the binary reward used for training.
func DefaultOptions() Options {
	return Options{Match: 1.0, Mismatch: 0.0}
}

// Scorer scores trajectories against ground truth. Safe for concurrent
// use: every call clones its inputs and shares nothing.
type Scorer struct {
	registry *action.Registry
	opts     Options
}

// NewScorer builds a scorer around an action registry.
func NewScorer(registry *action.Registry, opts Options) *Scorer {
	return &Scorer{registry: registry, opts: opts}
}

// Score replays groundTruth on a fresh copy of initial and compares its
// fingerprint with observed's.
//
// The reserved "respond" action is filtered out first; the remaining
// actions apply sequentially so later actions observe earlier
// mutations. A malformed or failing ground-truth action is skipped and
// the replay continues (the digests simply won't match if the skip
// mattered). Scoring always completes.
func (s *Scorer) Score(observed, initial *world.State, groundTruth []action.Action) float64 {
	scratch := initial.Clone()

	for _, act := range groundTruth {
		if act.Name == action.RespondName {
			continue
		}
		res := s.registry.Dispatch(scratch, act)
		if res.Handled && res.Err != nil {
			log.Debug().Str("action", act.Name).Err(res.Err).Msg("ground-truth action failed, continuing replay")
		}
	}

	observedDigest, err := canonical.Digest(observed.Clone())
	if err != nil {
		log.Warn().Err(err).Msg("hashing observed state failed")
		return s.opts.Mismatch
	}
	replayDigest, err := canonical.Digest(scratch)
	if err != nil {
		log.Warn().Err(err).Msg("hashing replayed state failed")
		return s.opts.Mismatch
	}

	if observedDigest == replayDigest {
		return s.opts.Match
	}
	return s.opts.Mismatch
}
