package explorer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// Serve exposes the loaded traces and Q values over HTTP for browsing
func (e *Explorer) Serve(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/summary", func(c *gin.Context) {
		lengths := make([]int, len(e.Traces))
		for i, t := range e.Traces {
			lengths[i] = len(t.States)
		}
		c.JSON(http.StatusOK, gin.H{
			"traces":        len(e.Traces),
			"trace_lengths": lengths,
			"states":        len(e.StateMap),
		})
	})

	router.GET("/traces/:index", func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 || index >= len(e.Traces) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such trace"})
			return
		}
		c.JSON(http.StatusOK, e.Traces[index])
	})

	router.GET("/states", func(c *gin.Context) {
		keys := make([]string, 0, len(e.StateMap))
		for k := range e.StateMap {
			keys = append(keys, k)
		}
		c.JSON(http.StatusOK, keys)
	})

	router.GET("/qvalues", func(c *gin.Context) {
		state := c.Query("state")
		if !e.QTable.HasState(state) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no values for state"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state":  state,
			"values": e.QTable.Table[state],
		})
	})

	return router.Run(addr)
}

func ExploreCommand() *cobra.Command {
	var tracesFile string
	var policyFile string
	var addr string

	cmd := &cobra.Command{
		Use: "explore",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewExplorer(policyFile, tracesFile)
			if err != nil {
				return err
			}
			return e.Serve(addr)
		},
	}
	cmd.PersistentFlags().StringVar(&tracesFile, "traces", "", "Path to a recorded traces jsonl file")
	cmd.PersistentFlags().StringVar(&policyFile, "policy", "", "Path to a recorded policy json file")
	cmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address to serve on")
	cmd.MarkPersistentFlagRequired("traces")
	return cmd
}
