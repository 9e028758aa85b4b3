package policies

import (
	"encoding/json"
	"math"
	"os"

	"github.com/zeu5/bsuite-rl-test/util"
)

type QTable struct {
	Table map[string]map[string]float64 `json:"table"`
}

func NewQTable() *QTable {
	return &QTable{
		Table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.Table[state]; !ok {
		q.Table[state] = make(map[string]float64)
	}
	if _, ok := q.Table[state][action]; !ok {
		q.Table[state][action] = def
	}
	return q.Table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.Table[state]; !ok {
		q.Table[state] = make(map[string]float64)
	}
	q.Table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.Table[state]
	return ok
}

func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.Table[state]; !ok {
		return "", def
	}
	maxAction := ""
	maxVal := float64(math.MinInt)
	for a, val := range q.Table[state] {
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.Table[state]; !ok {
		q.Table[state] = make(map[string]float64)
	}
	maxAction := ""
	maxVal := float64(math.MinInt)
	for _, a := range actions {
		if _, ok := q.Table[state][a]; !ok {
			q.Table[state][a] = def
		}
		val := q.Table[state][a]
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// Record persists the table as JSON
func (q *QTable) Record(path string) error {
	bs, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return util.WriteToFile(path, string(bs))
}

// Read loads a table recorded earlier
func (q *QTable) Read(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, q)
}
