// Command epochsearch runs a full parameter-grid search over a site:
// load SiteData and a base TaskData/TaskConfig, expand a grid of axes,
// simulate every scenario across a worker pool, retain the league
// table, and optionally dump exhaustive and per-objective CSVs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/elemental-power/epoch/internal/csvreport"
	"github.com/elemental-power/epoch/internal/rollup"
	"github.com/elemental-power/epoch/internal/search"
	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
	"github.com/elemental-power/epoch/internal/taskgen"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: epochsearch -site <site.json> -task <task.json> -grid <grid.yaml> [-workers N] [-best-n N] [-exhaustive dir]\n")
	flag.PrintDefaults()
}

func main() {
	fs := flag.NewFlagSet("epochsearch", flag.ExitOnError)
	sitePath := fs.String("site", "", "path to SiteData JSON")
	taskPath := fs.String("task", "", "path to base TaskData JSON (provides TaskConfig and fixed fields)")
	gridPath := fs.String("grid", "", "path to grid-definition YAML")
	workers := fs.Int("workers", 0, "worker pool size (0 = detected core count)")
	maxConcurrency := fs.Int("max-concurrency", 0, "cap on worker pool size (0 = unbounded)")
	bestN := fs.Int("best-n", 20, "best-N retention capacity per objective")
	exhaustiveDir := fs.String("exhaustive", "", "directory to write exhaustive + per-objective CSVs into (empty disables)")
	fs.Usage = usage
	fs.Parse(os.Args[1:])

	if *sitePath == "" || *taskPath == "" || *gridPath == "" {
		usage()
		os.Exit(2)
	}

	site, err := sitedata.Load(*sitePath)
	if err != nil {
		log.Fatalf("load site data: %v", err)
	}
	baseTask, err := taskdata.Load(*taskPath)
	if err != nil {
		log.Fatalf("load base task data: %v", err)
	}
	gridConfig, err := LoadGridConfig(*gridPath)
	if err != nil {
		log.Fatalf("load grid config: %v", err)
	}

	axes := gridConfig.Prepare(baseTask)
	gen, err := taskgen.New(taskgen.Spec{Base: *baseTask, Axes: axes})
	if err != nil {
		log.Fatalf("build task generator: %v", err)
	}
	log.Printf("grid has %d scenarios across %d axes", gen.Total(), len(axes))

	sim := simulator.New(site)
	baselineTask := rollup.Baseline(site, baseTask.Config, baseTask.Grid)
	baselineResult, err := sim.Simulate(baselineTask, simulator.ResultOnly)
	if err != nil {
		log.Fatalf("simulate baseline: %v", err)
	}

	league := search.New(*bestN)

	var exhaustiveCSV *csvreport.Writer
	if *exhaustiveDir != "" {
		if err := os.MkdirAll(*exhaustiveDir, 0o755); err != nil {
			log.Fatalf("create exhaustive output dir: %v", err)
		}
		exhaustiveCSV, err = csvreport.NewWriter(filepath.Join(*exhaustiveDir, "exhaustive.csv"), search.ExhaustiveHeader)
		if err != nil {
			log.Fatalf("open exhaustive csv: %v", err)
		}
	}

	failures := search.Run(gen, sim, league, site, baselineTask, baselineResult, search.Config{
		Workers:        *workers,
		MaxConcurrency: *maxConcurrency,
		ExhaustiveCSV:  exhaustiveCSV,
	}, nil)

	if exhaustiveCSV != nil {
		if err := exhaustiveCSV.Close(); err != nil {
			log.Printf("exhaustive csv write error: %v", err)
		}
	}
	for _, f := range failures {
		log.Printf("scenario %d failed: %v", f.Index, f.Err)
	}

	if *exhaustiveDir != "" {
		if err := writePerObjectiveCSVs(league, *exhaustiveDir); err != nil {
			log.Printf("per-objective csv write error: %v", err)
		}
	}

	for _, objective := range search.Objectives() {
		best := league.BestN(objective)
		if len(best) == 0 {
			continue
		}
		log.Printf("%s: best scenario %d = %g", objective, best[0].Index, best[0].Value)
	}
}

// objectiveFileNames maps internal objective keys to the file names
// spec.md §4.8/§6 names explicitly.
var objectiveFileNames = map[string]string{
	search.ObjectiveCapex:          "CAPEX.csv",
	search.ObjectiveAnnualisedCost: "AnnualisedCost.csv",
	search.ObjectivePaybackHorizon: "PaybackHorizon.csv",
	search.ObjectiveCostBalance:    "CostBalance.csv",
	search.ObjectiveCarbonBalance:  "CarbonBalance.csv",
}

func writePerObjectiveCSVs(league *search.LeagueTable, dir string) error {
	for _, objective := range search.Objectives() {
		path := filepath.Join(dir, objectiveFileNames[objective])
		w, err := csvreport.NewWriter(path, []string{"scenario_index", "value"})
		if err != nil {
			return err
		}
		for _, e := range league.BestN(objective) {
			w.Enqueue([]string{fmt.Sprintf("%d", e.Index), fmt.Sprintf("%g", e.Value)})
		}
		if worst, ok := league.Worst(objective); ok {
			w.Enqueue([]string{fmt.Sprintf("%d", worst.Index), fmt.Sprintf("%g", worst.Value)})
		}
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}
