// Command epochsim runs a single scenario end-to-end: load a site and
// a task, simulate it, roll up cost/carbon/NPV metrics against the
// computed baseline, and print the comparison as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/elemental-power/epoch/internal/rollup"
	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: epochsim -site <site.json> -task <task.json> [-report]\n")
	flag.PrintDefaults()
}

func main() {
	fs := flag.NewFlagSet("epochsim", flag.ExitOnError)
	sitePath := fs.String("site", "", "path to SiteData JSON")
	taskPath := fs.String("task", "", "path to TaskData JSON")
	fullReport := fs.Bool("report", false, "include per-timestep ReportData in the output")
	fs.Usage = usage
	fs.Parse(os.Args[1:])

	if *sitePath == "" || *taskPath == "" {
		usage()
		os.Exit(2)
	}

	site, err := sitedata.Load(*sitePath)
	if err != nil {
		log.Fatalf("load site data: %v", err)
	}
	task, err := taskdata.Load(*taskPath)
	if err != nil {
		log.Fatalf("load task data: %v", err)
	}

	sim := simulator.New(site)
	mode := simulator.ResultOnly
	if *fullReport {
		mode = simulator.FullReporting
	}

	result, err := sim.Simulate(task, mode)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	baselineTask := rollup.Baseline(site, task.Config, task.Grid)
	baselineResult, err := sim.Simulate(baselineTask, simulator.ResultOnly)
	if err != nil {
		log.Fatalf("simulate baseline: %v", err)
	}

	comparison := rollup.Compare(site, task, result, baselineTask, baselineResult)

	out := struct {
		Result     *simulator.SimulationResult `json:"result"`
		Comparison *rollup.ScenarioComparison  `json:"comparison"`
	}{result, comparison}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}
