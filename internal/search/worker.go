package search

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/elemental-power/epoch/internal/csvreport"
	"github.com/elemental-power/epoch/internal/rollup"
	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
	"github.com/elemental-power/epoch/internal/taskgen"
)

// Config controls one search run.
type Config struct {
	// Workers is the fixed pool size. <= 0 selects runtime.NumCPU(),
	// capped by MaxConcurrency when MaxConcurrency > 0.
	Workers int
	MaxConcurrency int

	ExhaustiveCSV *csvreport.Writer // optional; nil disables exhaustive output
}

func workerCount(cfg Config) int {
	n := cfg.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if cfg.MaxConcurrency > 0 && n > cfg.MaxConcurrency {
		n = cfg.MaxConcurrency
	}
	if n < 1 {
		n = 1
	}
	return n
}

// FailedScenario records a scenario that could not be simulated or
// scored; spec.md §7 treats these as per-scenario failures that are
// logged and skipped, never retried.
type FailedScenario struct {
	Index uint64
	Err   error
}

// Run drives gen to exhaustion across a fixed worker pool, simulating
// each scenario against sim, scoring it against baselineResult, and
// offering the five objective metrics to league. stop, if non-nil, is
// polled by every worker between scenarios for cooperative early exit.
func Run(gen *taskgen.Generator, sim *simulator.Simulator, league *LeagueTable, site *sitedata.SiteData, baselineTask *taskdata.TaskData, baselineResult *simulator.SimulationResult, cfg Config, stop *atomic.Bool) []FailedScenario {
	n := workerCount(cfg)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []FailedScenario

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if stop != nil && stop.Load() {
					return
				}
				twi, ok := gen.NextTask()
				if !ok {
					return
				}
				result, err := sim.Simulate(&twi.Task, simulator.ResultOnly)
				if err != nil {
					mu.Lock()
					failures = append(failures, FailedScenario{Index: twi.Index, Err: err})
					mu.Unlock()
					continue
				}
				comparison := rollup.Compare(site, &twi.Task, result, baselineTask, baselineResult)
				league.Offer(twi.Index, objectiveMetrics(comparison))

				if cfg.ExhaustiveCSV != nil {
					cfg.ExhaustiveCSV.Enqueue(exhaustiveRow(twi.Index, comparison))
				}
			}
		}()
	}
	wg.Wait()
	return failures
}

func objectiveMetrics(c *rollup.ScenarioComparison) map[string]float64 {
	return map[string]float64{
		ObjectiveCapex:          c.Capex.Total,
		ObjectiveAnnualisedCost: c.AnnualisedCostGBP,
		ObjectivePaybackHorizon: c.PaybackYears,
		ObjectiveCostBalance:    c.OperatingBalanceGBP,
		ObjectiveCarbonBalance:  c.CarbonBalanceKg,
	}
}

// ExhaustiveHeader is the column header for the exhaustive CSV dump.
var ExhaustiveHeader = []string{
	"scenario_index", "capex_total", "opex_total", "annualised_cost",
	"operating_balance", "payback_years", "payback_undefined", "roi",
	"npv", "carbon_scope1_kg", "carbon_scope2_kg", "carbon_balance_kg",
	"ei_band", "ec_band",
}

func exhaustiveRow(index uint64, c *rollup.ScenarioComparison) []string {
	return []string{
		fmt.Sprintf("%d", index),
		fmt.Sprintf("%g", c.Capex.Total),
		fmt.Sprintf("%g", c.Opex.Total),
		fmt.Sprintf("%g", c.AnnualisedCostGBP),
		fmt.Sprintf("%g", c.OperatingBalanceGBP),
		fmt.Sprintf("%g", c.PaybackYears),
		fmt.Sprintf("%t", c.PaybackUndefined),
		fmt.Sprintf("%g", c.ROI),
		fmt.Sprintf("%g", c.NPVGBP),
		fmt.Sprintf("%g", c.Carbon.Scope1Kg),
		fmt.Sprintf("%g", c.Carbon.Scope2Kg),
		fmt.Sprintf("%g", c.CarbonBalanceKg),
		c.SAP.EIBand,
		c.SAP.ECBand,
	}
}
