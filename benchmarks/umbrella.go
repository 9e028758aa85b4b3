package benchmarks

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zeu5/bsuite-rl-test/policies"
	"github.com/zeu5/bsuite-rl-test/types"
	"github.com/zeu5/bsuite-rl-test/umbrella"
)

func UmbrellaChainBenchmark(episodes, horizon int, saveFile string, runs int, seed uint64, chainLength, maxSteps, distractors int, ctx context.Context) {
	params := umbrella.Params{
		ChainLength:       chainLength,
		MaxStepsInEpisode: maxSteps,
	}

	c := types.NewComparison(&types.ComparisonConfig{
		Runs:     runs,
		Episodes: episodes,
		Horizon:  horizon,

		RecordPath:   saveFile,
		RecordTraces: true,
		RecordPolicy: true,
	})
	c.AddAnalysis("Regret", umbrella.RegretAnalyzer(), umbrella.RegretPlotter(saveFile))
	c.AddAnalysis("Returns", types.EpisodeReturns(), types.EpisodeReturnsPlotter(saveFile, 100))
	c.AddAnalysis("Coverage", types.PureCoverage(), types.PureCoveragePlotter(saveFile))

	// distinct seeds so the experiments do not share episode keys
	c.AddExperiment(types.NewExperiment(
		"Random",
		types.NewRandomPolicy(),
		types.NewEpisodeRunner(umbrella.NewUmbrellaChain(distractors), params, seed),
	))
	c.AddExperiment(types.NewExperiment(
		"EpsilonGreedy",
		policies.NewEpsilonGreedyPolicy(0.1, 0.99, 0.05),
		types.NewEpisodeRunner(umbrella.NewUmbrellaChain(distractors), params, seed+1),
	))
	c.AddExperiment(types.NewExperiment(
		"SoftMax",
		policies.NewSoftMaxPolicy(0.3, 0.99, 1),
		types.NewEpisodeRunner(umbrella.NewUmbrellaChain(distractors), params, seed+2),
	))

	c.Run(ctx)
}

func UmbrellaCommand() *cobra.Command {
	var chainLength int
	var maxSteps int
	var distractors int

	cmd := &cobra.Command{
		Use: "umbrella",
		Run: func(cmd *cobra.Command, args []string) {
			UmbrellaChainBenchmark(episodes, horizon, saveFile, runs, seed, chainLength, maxSteps, distractors, context.Background())
		},
	}
	cmd.PersistentFlags().IntVar(&chainLength, "chain-length", 10, "Length of the umbrella chain")
	cmd.PersistentFlags().IntVar(&maxSteps, "max-steps", 100, "Maximum steps in one episode")
	cmd.PersistentFlags().IntVar(&distractors, "distractors", 0, "Number of distractor dimensions in the observation")
	return cmd
}
