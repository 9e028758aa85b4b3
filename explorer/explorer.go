package explorer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zeu5/bsuite-rl-test/policies"
)

// Explorer loads recorded traces and Q tables for offline inspection
type Explorer struct {
	PolicyFile string
	TracesFile string

	QTable *policies.QTable
	Traces []*Trace

	StateMap map[string]*StateRecord
}

// StateRecord is the recorded form of an observed state
type StateRecord struct {
	Obs  []float64       `json:"obs"`
	Env  json.RawMessage `json:"state"`
	Done bool            `json:"done"`
}

// Key matches the hash the policies indexed the state by
func (s *StateRecord) Key() string {
	parts := make([]string, len(s.Obs))
	for i, v := range s.Obs {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Trace is the recorded form of an episode trace
type Trace struct {
	States     []*StateRecord `json:"states"`
	Actions    []int          `json:"actions"`
	Rewards    []float64      `json:"rewards"`
	NextStates []*StateRecord `json:"next_states"`
}

func NewTrace() *Trace {
	return &Trace{
		States:     make([]*StateRecord, 0),
		Actions:    make([]int, 0),
		Rewards:    make([]float64, 0),
		NextStates: make([]*StateRecord, 0),
	}
}

// NewExplorer creates an explorer of recorded q tables and traces.
// The policy file is optional.
func NewExplorer(policyFile string, tracesFile string) (*Explorer, error) {
	e := &Explorer{
		PolicyFile: policyFile,
		TracesFile: tracesFile,
		QTable:     policies.NewQTable(),
		Traces:     make([]*Trace, 0),
		StateMap:   make(map[string]*StateRecord),
	}

	if policyFile != "" {
		if err := e.QTable.Read(policyFile); err != nil {
			return nil, err
		}
	}
	var err error
	e.Traces, err = readTraces(e.TracesFile)
	if err != nil {
		return nil, err
	}

	for _, t := range e.Traces {
		for _, s := range t.States {
			if _, ok := e.StateMap[s.Key()]; !ok {
				e.StateMap[s.Key()] = s
			}
		}
		for _, s := range t.NextStates {
			if _, ok := e.StateMap[s.Key()]; !ok {
				e.StateMap[s.Key()] = s
			}
		}
	}

	return e, nil
}

func readTraces(path string) ([]*Trace, error) {
	traces := make([]*Trace, 0)
	file, err := os.Open(path)
	if err != nil {
		return traces, fmt.Errorf("error reading file: %s", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	maxTraceSize := 5 * 1024 * 1024
	scanner.Buffer(make([]byte, maxTraceSize), maxTraceSize)
	for scanner.Scan() {
		t := NewTrace()
		bs := scanner.Bytes()
		if len(bs) >= maxTraceSize {
			return traces, errors.New("error trace too big")
		}
		if err := json.Unmarshal(bs, t); err != nil {
			return traces, fmt.Errorf("error reading file contents: %s", err)
		}
		if len(t.States) != len(t.Actions) || len(t.Actions) != len(t.NextStates) || len(t.States) != len(t.Rewards) {
			return traces, fmt.Errorf("number of states, actions and rewards mismatched")
		}
		traces = append(traces, t)
	}
	if scanner.Err() != nil {
		return traces, fmt.Errorf("failed to read traces: %s", scanner.Err())
	}
	return traces, nil
}
