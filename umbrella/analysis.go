package umbrella

import (
	"os"
	"path"
	"strconv"

	"github.com/zeu5/bsuite-rl-test/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RegretAnalyzer extracts the cumulative regret over the episodes of
// one run. Regret only ever grows when the chain completes with the
// wrong umbrella bit, so the curve of a good explorer flattens out.
func RegretAnalyzer() types.Analyzer {
	return func(_ int, _ string, traces []*types.Trace) types.DataSet {
		cumulative := make([]float64, len(traces))
		total := 0
		for i, trace := range traces {
			_, _, _, last, ok := trace.Last()
			if ok {
				if obs, ok := last.(*types.Observed); ok {
					if s, ok := obs.Env.(State); ok {
						total += s.TotalRegret
					}
				}
			}
			cumulative[i] = float64(total)
		}
		return cumulative
	}
}

// RegretPlotter plots the cumulative regret curves of the compared
// experiments
func RegretPlotter(plotPath string) types.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, names []string, ds []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Cumulative regret"
		for i := 0; i < len(names); i++ {
			regret := ds[i].([]float64)
			points := make(plotter.XYs, len(regret))
			for j, v := range regret {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_regret.png"))
	}
}
