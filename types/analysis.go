package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PureCoverage counts the unique state hashes discovered over the
// episodes of a run
func PureCoverage() Analyzer {
	return func(_ int, _ string, t []*Trace) DataSet {
		uniqueStates := make(map[string]bool)
		numUniqueStates := make([]int, 0)
		for _, trace := range t {
			for j := 0; j < trace.Len(); j++ {
				s, _, _, _, _ := trace.Get(j)
				sHash := s.Hash()
				if _, ok := uniqueStates[sHash]; !ok {
					uniqueStates[sHash] = true
				}
			}
			numUniqueStates = append(numUniqueStates, len(uniqueStates))
		}
		return numUniqueStates
	}
}

func PureCoveragePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(s); i++ {
			uniqueStates := ds[i].([]int)
			points := make(plotter.XYs, len(uniqueStates))
			for j, v := range uniqueStates {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Number of unique states: %d for benchmark: %s\n", uniqueStates[len(uniqueStates)-1], s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_pure_coverage.png"))
	}
}

// EpisodeReturns records the undiscounted return of every episode
func EpisodeReturns() Analyzer {
	return func(_ int, _ string, t []*Trace) DataSet {
		returns := make([]float64, len(t))
		for i, trace := range t {
			returns[i] = trace.Return()
		}
		return returns
	}
}

// EpisodeReturnsPlotter plots a running average of episodic returns,
// smoothed over the given window
func EpisodeReturnsPlotter(plotPath string, window int) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	if window < 1 {
		window = 1
	}
	return func(run int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Average return"
		for i := 0; i < len(s); i++ {
			returns := ds[i].([]float64)
			points := make(plotter.XYs, 0, len(returns))
			sum := float64(0)
			for j, v := range returns {
				sum += v
				if j >= window {
					sum -= returns[j-window]
				}
				n := window
				if j+1 < window {
					n = j + 1
				}
				points = append(points, plotter.XY{
					X: float64(j),
					Y: sum / float64(n),
				})
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_returns.png"))
	}
}
