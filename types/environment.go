package types

// Environment that an agent interacts with over an episode.
// Implementations are free to be stateful; reproducible environments
// should derive all randomness from a splittable key instead.
type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step applies the action, returns the next state and the reward
	Step(Action) (State, float64)
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
}

// An Action that the RL policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

type StateAbstractor func(State) string
