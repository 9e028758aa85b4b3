package policies

import (
	"time"

	"github.com/zeu5/bsuite-rl-test/types"
	"golang.org/x/exp/rand"
)

// EpsilonGreedyPolicy is tabular Q-learning with epsilon-greedy
// action selection over the environment rewards
type EpsilonGreedyPolicy struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rand    *rand.Rand
}

var _ types.Policy = &EpsilonGreedyPolicy{}
var _ types.PolicyRecorder = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, gamma, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rand:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (e *EpsilonGreedyPolicy) Record(path string) error {
	return e.qTable.Record(path)
}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyPolicy) UpdateIteration(_ int, _ *types.Trace) {

}

func (e *EpsilonGreedyPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if e.rand.Float64() < e.epsilon {
		i := e.rand.Intn(len(actions))
		return actions[i], true
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := e.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

func (e *EpsilonGreedyPolicy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	nextStateHash := nextState.Hash()

	curVal := e.qTable.Get(stateHash, actionHash, 0)
	nextVal := float64(0)
	if len(nextState.Actions()) > 0 {
		// terminal states have no successor value
		_, nextVal = e.qTable.Max(nextStateHash, 0)
	}
	newVal := (1-e.alpha)*curVal + e.alpha*(reward+e.gamma*nextVal)
	e.qTable.Set(stateHash, actionHash, newVal)
}
