package policies

import (
	"math"

	"github.com/zeu5/bsuite-rl-test/types"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SoftMaxPolicy is tabular Q-learning with Boltzmann action selection:
// actions are sampled with probability proportional to exp(Q/temp)
type SoftMaxPolicy struct {
	qTable *QTable
	alpha  float64
	gamma  float64
	temp   float64
}

var _ types.Policy = &SoftMaxPolicy{}
var _ types.PolicyRecorder = &SoftMaxPolicy{}

func NewSoftMaxPolicy(alpha, gamma, temp float64) *SoftMaxPolicy {
	return &SoftMaxPolicy{
		qTable: NewQTable(),
		alpha:  alpha,
		gamma:  gamma,
		temp:   temp,
	}
}

func (s *SoftMaxPolicy) Record(path string) error {
	return s.qTable.Record(path)
}

func (s *SoftMaxPolicy) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMaxPolicy) UpdateIteration(_ int, _ *types.Trace) {

}

func (s *SoftMaxPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	stateHash := state.Hash()

	sum := float64(0)
	weights := make([]float64, len(actions))
	vals := make([]float64, len(actions))

	for i, action := range actions {
		val := s.qTable.Get(stateHash, action.Hash(), 0)
		exp := math.Exp(val / s.temp)
		vals[i] = exp
		sum += exp
	}

	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (s *SoftMaxPolicy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	nextStateHash := nextState.Hash()

	curVal := s.qTable.Get(stateHash, actionHash, 0)
	nextVal := float64(0)
	if len(nextState.Actions()) > 0 {
		_, nextVal = s.qTable.Max(nextStateHash, 0)
	}
	newVal := (1-s.alpha)*curVal + s.alpha*(reward+s.gamma*nextVal)
	s.qTable.Set(stateHash, actionHash, newVal)
}
