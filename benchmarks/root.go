package benchmarks

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/bsuite-rl-test/explorer"
)

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
	seed     uint64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 10000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed of the environment random stream")
	// adding the subcommands here
	rootCommand.AddCommand(UmbrellaCommand())
	rootCommand.AddCommand(explorer.ExploreCommand())
	return rootCommand
}
