package types

import (
	"strconv"

	"github.com/zeu5/bsuite-rl-test/prng"
)

// EnvParams carries the per-call configuration of a keyed environment.
// Concrete environments type-assert to their own parameter struct.
type EnvParams interface {
	// Horizon is the maximum number of steps in one episode
	Horizon() int
}

// KeyedState is the internal state of a keyed environment.
// Implementations are immutable values, one per episode step.
type KeyedState interface {
	Hash() string
}

// Info is the side channel returned by Step, by convention it carries
// the discount (0 on a terminal state, 1 otherwise)
type Info map[string]float64

// KeyedEnvironment is the pure, reproducible environment contract.
// Every method is a function of its explicit arguments only: the same
// (key, state, action, params) tuple always produces bit-identical
// results. No method retains state across calls, which makes distinct
// episodes safe to evaluate concurrently with distinct keys.
//
// Other bsuite-style tasks implement the same interface as sibling
// variants, so one harness runs them all.
type KeyedEnvironment interface {
	DefaultParams() EnvParams
	// Reset samples the initial state and renders its observation
	Reset(key prng.Key, params EnvParams) ([]float64, KeyedState)
	// Step performs a single timestep state transition
	Step(key prng.Key, state KeyedState, action int, params EnvParams) ([]float64, KeyedState, float64, bool, Info)
	// IsTerminal reports whether state ends the episode
	IsTerminal(state KeyedState, params EnvParams) bool
	Name() string
	NumActions() int
	ActionSpace(params EnvParams) Space
	ObservationSpace(params EnvParams) Space
	StateSpace(params EnvParams) Space
}

// DiscreteAction indexes into a discrete action space
type DiscreteAction int

var _ Action = DiscreteAction(0)

func (d DiscreteAction) Hash() string {
	return strconv.Itoa(int(d))
}

// DiscreteActions lists the n actions of a Discrete(n) space
func DiscreteActions(n int) []Action {
	actions := make([]Action, n)
	for i := 0; i < n; i++ {
		actions[i] = DiscreteAction(i)
	}
	return actions
}
