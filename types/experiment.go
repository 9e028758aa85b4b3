package types

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/zeu5/bsuite-rl-test/util"
)

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the traces of one experiment run into a DataSet
// run, experiment name, traces
type Analyzer func(int, string, []*Trace) DataSet

// Comparator differentiates between datasets with associated names
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(_ int, _ []string, _ []DataSet) {}
}

type experimentRunConfig struct {
	CurrentRun int
	Episodes   int
	Horizon    int
	Context    context.Context

	RecordTraces bool
	RecordPolicy bool
	RecordPath   string
}

// Experiment encapsulates one policy and one environment instance
type Experiment struct {
	Name        string
	policy      Policy
	environment Environment
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, policy Policy, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

// Run the experiment for the specified number of episodes
func (e *Experiment) Run(rConfig *experimentRunConfig) []*Trace {
	agent := NewAgent(&AgentConfig{
		Episodes:    rConfig.Episodes,
		Horizon:     rConfig.Horizon,
		Policy:      e.policy,
		Environment: e.environment,
	})
	traces := make([]*Trace, rConfig.Episodes)
	for i := 0; i < rConfig.Episodes; i++ {
		select {
		case <-rConfig.Context.Done():
			return traces[:i]
		default:
		}
		fmt.Printf("\rExperiment: %s, Episode: %d/%d", e.Name, i+1, rConfig.Episodes)
		traces[i] = agent.RunEpisode(i)
	}
	fmt.Println("")

	if rConfig.RecordTraces {
		e.recordTraces(rConfig, traces)
	}
	if rConfig.RecordPolicy {
		if recorder, ok := e.policy.(PolicyRecorder); ok {
			policyFile := path.Join(rConfig.RecordPath, "policies", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".json")
			if err := recorder.Record(policyFile); err != nil {
				fmt.Printf("failed to record policy for %s: %s\n", e.Name, err)
			}
		}
	}
	return traces
}

func (e *Experiment) recordTraces(rConfig *experimentRunConfig, traces []*Trace) {
	tracesFile := path.Join(rConfig.RecordPath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	lines := make([]string, 0, len(traces))
	for _, t := range traces {
		bs, err := json.Marshal(t)
		if err != nil {
			fmt.Printf("failed to record traces for %s: %s\n", e.Name, err)
			return
		}
		lines = append(lines, string(bs))
	}
	util.AppendToFile(tracesFile, lines...)
}

// Reset forgets everything learned by the policy
func (e *Experiment) Reset() {
	e.policy.Reset()
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int // number of runs
	Episodes int // number of episodes per run
	Horizon  int // number of steps per episode

	RecordPath   string // path to store the results
	RecordTraces bool
	RecordPolicy bool
}

// Comparison contains the different experiments to compare.
// The traces obtained from the experiments are analyzed and the
// resulting datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance
func NewComparison(config *ComparisonConfig) *Comparison {
	os.MkdirAll(config.RecordPath, 0777)
	if config.RecordTraces {
		os.MkdirAll(path.Join(config.RecordPath, "traces"), 0777)
	}
	if config.RecordPolicy {
		os.MkdirAll(path.Join(config.RecordPath, "policies"), 0777)
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run the comparison
func (c *Comparison) Run(ctx context.Context) {
	c.recordConfig()

	for run := 0; run < c.cConfig.Runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return
			default:
			}
			traces := e.Run(&experimentRunConfig{
				CurrentRun:   run,
				Episodes:     c.cConfig.Episodes,
				Horizon:      c.cConfig.Horizon,
				Context:      ctx,
				RecordTraces: c.cConfig.RecordTraces,
				RecordPolicy: c.cConfig.RecordPolicy,
				RecordPath:   c.cConfig.RecordPath,
			})
			for name, a := range c.analyzers {
				datasets[name][i] = a(run, e.Name, traces)
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			comp(run, names, datasets[name])
		}
	}
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() {
	cfg := c.cConfig
	out := make(map[string]interface{})
	out["runs"] = cfg.Runs
	out["episodes"] = cfg.Episodes
	out["horizon"] = cfg.Horizon
	out["record_traces"] = cfg.RecordTraces
	out["record_policy"] = cfg.RecordPolicy

	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	analyzers := make([]string, 0)
	for name := range c.analyzers {
		analyzers = append(analyzers, name)
	}
	out["analyzers"] = analyzers

	bs, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	util.WriteToFile(path.Join(cfg.RecordPath, "comparison_config.json"), string(bs))
}
