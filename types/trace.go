package types

// Trace of an episode as tuples (state, action, reward, nextState)
type Trace struct {
	States     []State   `json:"states"`
	Actions    []Action  `json:"actions"`
	Rewards    []float64 `json:"rewards"`
	NextStates []State   `json:"next_states"`
}

func NewTrace() *Trace {
	return &Trace{
		States:     make([]State, 0),
		Actions:    make([]Action, 0),
		Rewards:    make([]float64, 0),
		NextStates: make([]State, 0),
	}
}

func (t *Trace) Append(step int, state State, action Action, reward float64, nextState State) {
	t.States = append(t.States, state)
	t.Actions = append(t.Actions, action)
	t.Rewards = append(t.Rewards, reward)
	t.NextStates = append(t.NextStates, nextState)
}

func (t *Trace) Len() int {
	return len(t.States)
}

func (t *Trace) Get(i int) (State, Action, float64, State, bool) {
	if i >= len(t.States) {
		return nil, nil, 0, nil, false
	}
	return t.States[i], t.Actions[i], t.Rewards[i], t.NextStates[i], true
}

func (t *Trace) Last() (State, Action, float64, State, bool) {
	if len(t.States) < 1 {
		return nil, nil, 0, nil, false
	}
	last := len(t.States) - 1
	return t.States[last], t.Actions[last], t.Rewards[last], t.NextStates[last], true
}

// Return is the undiscounted sum of rewards in the trace
func (t *Trace) Return() float64 {
	total := float64(0)
	for _, r := range t.Rewards {
		total += r
	}
	return total
}

func (t *Trace) Slice(from, to int) *Trace {
	sliced := NewTrace()
	for i := from; i < to; i++ {
		sliced.Append(i-from, t.States[i], t.Actions[i], t.Rewards[i], t.NextStates[i])
	}
	return sliced
}
