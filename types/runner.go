package types

import (
	"fmt"
	"strings"

	"github.com/zeu5/bsuite-rl-test/prng"
)

// Observed is the snapshot handed to policies after each transition.
// The hash is computed over the observation vector only; the raw
// environment state rides along for analyzers. Both are independently
// owned copies with no aliasing back into the environment.
type Observed struct {
	Obs        []float64  `json:"obs"`
	Env        KeyedState `json:"state"`
	Done       bool       `json:"done"`
	NumActions int        `json:"-"`
}

var _ State = &Observed{}

func (o *Observed) Hash() string {
	parts := make([]string, len(o.Obs))
	for i, v := range o.Obs {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (o *Observed) Actions() []Action {
	if o.Done {
		return nil
	}
	return DiscreteActions(o.NumActions)
}

// EpisodeRunner threads a keyed environment through the stateful
// Environment interface the agent loop consumes. All randomness is
// derived from the base key: episode e uses child key Fold(e), the
// reset uses its child 0 and step s uses its child s+1. Two runners
// with the same base key replay identical episodes.
type EpisodeRunner struct {
	env    KeyedEnvironment
	params EnvParams

	baseKey    prng.Key
	episode    uint64
	episodeKey prng.Key
	step       uint64
	current    KeyedState
}

var _ Environment = &EpisodeRunner{}

func NewEpisodeRunner(env KeyedEnvironment, params EnvParams, seed uint64) *EpisodeRunner {
	if params == nil {
		params = env.DefaultParams()
	}
	return &EpisodeRunner{
		env:     env,
		params:  params,
		baseKey: prng.NewKey(seed),
	}
}

func (r *EpisodeRunner) Reset() State {
	r.episodeKey = r.baseKey.Fold(r.episode)
	r.episode += 1
	r.step = 0

	obs, state := r.env.Reset(r.episodeKey.Fold(0), r.params)
	r.current = state
	return &Observed{
		Obs:        obs,
		Env:        state,
		Done:       r.env.IsTerminal(state, r.params),
		NumActions: r.env.NumActions(),
	}
}

func (r *EpisodeRunner) Step(a Action) (State, float64) {
	action := a.(DiscreteAction)
	key := r.episodeKey.Fold(r.step + 1)
	r.step += 1

	obs, next, reward, done, _ := r.env.Step(key, r.current, int(action), r.params)
	r.current = next
	return &Observed{
		Obs:        obs,
		Env:        next,
		Done:       done,
		NumActions: r.env.NumActions(),
	}, reward
}
