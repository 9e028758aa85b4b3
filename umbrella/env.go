package umbrella

// UmbrellaChain bsuite environment. The agent picks up (or drops) an
// umbrella on the first step of a chain and is only told whether that
// was the right call when the chain completes; every reward in between
// is a fair coin. Source of the task:
// github.com/deepmind/bsuite/blob/master/bsuite/environments/umbrella_chain.py

import (
	"fmt"

	"github.com/zeu5/bsuite-rl-test/prng"
	"github.com/zeu5/bsuite-rl-test/types"
)

// Params of one episode. Supplied per call, never mutated.
type Params struct {
	ChainLength       int
	MaxStepsInEpisode int
}

var _ types.EnvParams = Params{}

// DefaultParams returns the standard bsuite configuration
func DefaultParams() Params {
	return Params{
		ChainLength:       10,
		MaxStepsInEpisode: 100,
	}
}

func (p Params) Horizon() int {
	return p.MaxStepsInEpisode
}

// State of one episode step. Immutable value: every transition
// constructs a fresh State, the old one is never written to.
//
// NeedUmbrella is fixed at reset for the whole episode. HasUmbrella
// changes only on the transition into time 1. TotalRegret grows by 2
// exactly when the chain completes with a mismatch.
type State struct {
	NeedUmbrella bool `json:"need_umbrella"`
	HasUmbrella  bool `json:"has_umbrella"`
	TotalRegret  int  `json:"total_regret"`
	Time         int  `json:"time"`
}

var _ types.KeyedState = State{}

func (s State) Hash() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b2i(s.NeedUmbrella), b2i(s.HasUmbrella), s.TotalRegret, s.Time)
}

// UmbrellaChain implements types.KeyedEnvironment. The only
// construction-time setting is the number of distractor dimensions in
// the observation; everything else travels in Params.
type UmbrellaChain struct {
	NDistractor int
}

var _ types.KeyedEnvironment = &UmbrellaChain{}

// NewUmbrellaChain creates the environment with nDistractor noise
// dimensions appended to every observation
func NewUmbrellaChain(nDistractor int) *UmbrellaChain {
	return &UmbrellaChain{NDistractor: nDistractor}
}

func (u *UmbrellaChain) DefaultParams() types.EnvParams {
	return DefaultParams()
}

// Reset samples the initial state and renders its observation.
// The key is split three ways: need bit, has bit, observation noise.
func (u *UmbrellaChain) Reset(key prng.Key, params types.EnvParams) ([]float64, types.KeyedState) {
	p := params.(Params)
	keys := key.Split(3)
	state := State{
		NeedUmbrella: keys[0].Bernoulli(),
		HasUmbrella:  keys[1].Bernoulli(),
		TotalRegret:  0,
		Time:         0,
	}
	return u.observation(state, keys[2], p), state
}

// Step performs a single timestep state transition.
//
// The action is consulted only on the transition into time 1 and is
// treated as a truthy carry bit: any non-zero value means "carry the
// umbrella". Out-of-range actions are not validated.
func (u *UmbrellaChain) Step(key prng.Key, state types.KeyedState, action int, params types.EnvParams) ([]float64, types.KeyedState, float64, bool, types.Info) {
	s := state.(State)
	p := params.(Params)

	hasUmbrella := s.HasUmbrella
	if s.Time+1 == 1 {
		hasUmbrella = action != 0
	}

	chainFull := s.Time+1 == p.ChainLength
	hasNeed := hasUmbrella == s.NeedUmbrella

	keys := key.Split(2)
	keyReward, keyObs := keys[0], keys[1]

	reward := float64(0)
	totalRegret := s.TotalRegret
	if chainFull {
		if hasNeed {
			reward = 1
		} else {
			reward = -1
			totalRegret += 2
		}
	} else {
		// intermediate rewards are a fair coin mapped to {+1, -1},
		// uncorrelated with the true target
		reward = 2*b2f(keyReward.Bernoulli()) - 1
	}

	next := State{
		NeedUmbrella: s.NeedUmbrella,
		HasUmbrella:  hasUmbrella,
		TotalRegret:  totalRegret,
		Time:         s.Time + 1,
	}
	done := u.isTerminal(next, p)
	info := types.Info{"discount": 1}
	if done {
		info["discount"] = 0
	}
	return u.observation(next, keyObs, p), next, reward, done, info
}

// observation renders the state into a fresh vector of length
// 3 + NDistractor. The distractor entries are regenerated on every
// call and carry no information about the state.
func (u *UmbrellaChain) observation(s State, key prng.Key, p Params) []float64 {
	obs := make([]float64, 3+u.NDistractor)
	obs[0] = b2f(s.NeedUmbrella)
	obs[1] = b2f(s.HasUmbrella)
	obs[2] = 1 - float64(s.Time)/float64(p.ChainLength)
	for i, k := range key.Split(u.NDistractor) {
		obs[3+i] = b2f(k.Bernoulli())
	}
	return obs
}

func (u *UmbrellaChain) isTerminal(s State, p Params) bool {
	return s.Time >= p.MaxStepsInEpisode || s.Time == p.ChainLength
}

// IsTerminal reports whether the state ends the episode. Terminal is
// absorbing: once reached there is no transition out.
func (u *UmbrellaChain) IsTerminal(state types.KeyedState, params types.EnvParams) bool {
	return u.isTerminal(state.(State), params.(Params))
}

func (u *UmbrellaChain) Name() string {
	return "UmbrellaChain-bsuite"
}

func (u *UmbrellaChain) NumActions() int {
	return 2
}

func (u *UmbrellaChain) ActionSpace(_ types.EnvParams) types.Space {
	return types.Discrete{N: 2}
}

func (u *UmbrellaChain) ObservationSpace(_ types.EnvParams) types.Space {
	return types.Box{Low: 0, High: 1, Rows: 1, Cols: 3 + u.NDistractor}
}

func (u *UmbrellaChain) StateSpace(params types.EnvParams) types.Space {
	p := params.(Params)
	return types.Dict{Spaces: map[string]types.Space{
		"need_umbrella": types.Discrete{N: 2},
		"has_umbrella":  types.Discrete{N: 2},
		"total_regret":  types.Discrete{N: 1000},
		"time":          types.Discrete{N: p.MaxStepsInEpisode},
	}}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
