// Command apiserver is a thin HTTP driver over the simulation core,
// exercising it the way the out-of-scope web UI/API collaborator would
// (spec.md §1 OUT OF SCOPE names "UI, web API, persistence" as external
// concerns; this is the minimal surface the core needs to be callable
// over HTTP, grounded on the teacher's cmd/api/main.go gin+cors setup).
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/rollup"
	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type server struct {
	site *sitedata.SiteData
	sim  *simulator.Simulator
}

func main() {
	fs := flag.NewFlagSet("apiserver", flag.ExitOnError)
	sitePath := fs.String("site", "", "path to SiteData JSON, loaded once at startup")
	addr := fs.String("addr", ":8080", "listen address")
	fs.Parse(os.Args[1:])

	if *sitePath == "" {
		log.Fatal("-site is required")
	}
	site, err := sitedata.Load(*sitePath)
	if err != nil {
		log.Fatalf("load site data: %v", err)
	}

	srv := &server{site: site, sim: simulator.New(site)}

	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger())
	router.POST("/simulate", srv.handleSimulate)

	handler := cors.Default().Handler(router)
	log.Printf("apiserver listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// simulateRequest is the HTTP body: one TaskData plus whether to
// include full per-timestep ReportData.
type simulateRequest struct {
	Task        taskdata.TaskData `json:"task"`
	FullReport  bool              `json:"full_report"`
}

type simulateResponse struct {
	Result     *simulator.SimulationResult `json:"result"`
	Comparison *rollup.ScenarioComparison  `json:"comparison"`
}

func (s *server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := simulator.ResultOnly
	if req.FullReport {
		mode = simulator.FullReporting
	}

	result, err := s.sim.Simulate(&req.Task, mode)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	baselineTask := rollup.Baseline(s.site, req.Task.Config, req.Task.Grid)
	baselineResult, err := s.sim.Simulate(baselineTask, simulator.ResultOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	comparison := rollup.Compare(s.site, &req.Task, result, baselineTask, baselineResult)
	c.JSON(http.StatusOK, simulateResponse{Result: result, Comparison: comparison})
}

// statusForError maps epocherr.Kind to an HTTP status, the same way
// the teacher's handlers.BacktestHandler.RunBacktest mapped
// *data.GridStatusError to status codes.
func statusForError(err error) int {
	switch {
	case epocherr.IsKind(err, epocherr.KindInvalidTaskData),
		epocherr.IsKind(err, epocherr.KindInvalidParamRange):
		return http.StatusBadRequest
	case epocherr.IsKind(err, epocherr.KindInvalidSiteData):
		return http.StatusUnprocessableEntity
	case epocherr.IsKind(err, epocherr.KindNumericFailure):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
