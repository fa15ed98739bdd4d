// Command verify runs integrity checks over a Storm Events CSV and the
// cleaned dataset derived from it: column presence, cleaning invariants,
// and cross-checks between the three aggregation tables. It exits nonzero
// when any phase fails, so it can gate a report run in CI.
//
// Usage:
//
//	go run ./cmd/verify -dataset data/StormData.csv.bz2
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("dataset", "", "path to the Storm Events CSV (.bz2/.gz/plain)")
	cutoffStr := flag.String("cutoff", "1996-01-01", "inclusion window start, YYYY-MM-DD")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	cutoff, err := time.Parse("2006-01-02", *cutoffStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: invalid -cutoff: %v\n", err)
		os.Exit(1)
	}

	if code := run(*path, cutoff); code != 0 {
		os.Exit(code)
	}
}

func run(path string, cutoff time.Time) int {
	fmt.Println("=== Storm Events Dataset Verification ===")
	fmt.Println()

	raws, err := dataset.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	fmt.Printf("Loaded %d raw rows from %s\n", len(raws), path)

	events, dropStats := clean(raws, cutoff)

	phases := []*phase{
		validateCleaning(raws, events, dropStats, cutoff),
		validateLabels(events),
		validateAggregates(events),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll verifications passed.")
		return 0
	}
	fmt.Println("\nVerification FAILED.")
	return 1
}

func clean(raws []domain.RawRecord, cutoff time.Time) ([]domain.StormEvent, map[domain.DropReason]int) {
	var events []domain.StormEvent
	drops := map[domain.DropReason]int{}
	for _, raw := range raws {
		event, drop := domain.CleanRecord(raw, cutoff)
		if drop != domain.DropNone {
			drops[drop]++
			continue
		}
		events = append(events, event)
	}
	return events, drops
}

// validateCleaning checks row accounting and the cleaned-record invariants:
// timestamps inside the inclusion window and non-negative costs.
func validateCleaning(raws []domain.RawRecord, events []domain.StormEvent, drops map[domain.DropReason]int, cutoff time.Time) *phase {
	p := &phase{name: "Phase 1: Cleaning invariants"}

	totalDropped := 0
	for _, n := range drops {
		totalDropped += n
	}
	if len(events)+totalDropped != len(raws) {
		p.errorf("row accounting: %d kept + %d dropped != %d read", len(events), totalDropped, len(raws))
	}

	for i := range events {
		e := &events[i]
		if e.BeginTime.Before(cutoff) {
			p.errorf("event %d: begin time %s before cutoff", i, e.BeginTime.Format(time.RFC3339))
		}
		if e.PropertyDamage < 0 || e.CropDamage < 0 {
			p.errorf("event %d (%s): negative damage", i, e.EventType)
		}
		if e.Fatalities < 0 || e.Injuries < 0 {
			p.errorf("event %d (%s): negative casualty count", i, e.EventType)
		}
	}

	fmt.Printf("Cleaned: %d kept, %d before cutoff, %d unparseable dates\n",
		len(events), drops[domain.DropBeforeCutoff], drops[domain.DropUnparseableDate])
	return p
}

// validateLabels checks that no rewrite-table source label survives cleaning.
func validateLabels(events []domain.StormEvent) *phase {
	p := &phase{name: "Phase 2: Label normalization"}

	legacy := []string{"TSTM WIND", "HURRICANE/TYPHOON", "WILD/FOREST FIRE", "RIP CURRENTS"}
	counts := map[string]int{}
	for i := range events {
		counts[events[i].EventType]++
	}
	for _, label := range legacy {
		if counts[label] > 0 {
			p.errorf("legacy label %q appears %d times after cleaning", label, counts[label])
		}
	}
	return p
}

// validateAggregates recomputes the tables and cross-checks them against
// direct sums over the cleaned events.
func validateAggregates(events []domain.StormEvent) *phase {
	p := &phase{name: "Phase 3: Aggregation consistency"}

	var totalFatalities, totalInjuries int
	var totalDamage float64
	for i := range events {
		e := &events[i]
		if e.Fatalities > 0 || e.Injuries > 0 {
			totalFatalities += e.Fatalities
			totalInjuries += e.Injuries
		}
		totalDamage += e.PropertyDamage + e.CropDamage
	}

	health := domain.AggregateHealth(events)
	var aggFatalities, aggInjuries int
	for _, h := range health {
		aggFatalities += h.Fatalities
		aggInjuries += h.Injuries
	}
	if aggFatalities != totalFatalities || aggInjuries != totalInjuries {
		p.errorf("health totals: aggregated %d/%d, direct %d/%d",
			aggFatalities, aggInjuries, totalFatalities, totalInjuries)
	}
	for i := 1; i < len(health); i++ {
		if health[i].Injuries > health[i-1].Injuries {
			p.errorf("health table not sorted at row %d", i)
		}
	}

	economic := domain.AggregateEconomic(events)
	var aggDamage float64
	for _, e := range economic {
		if e.Total != e.PropertyDamage+e.CropDamage {
			p.errorf("economic row %q: total %.0f != property %.0f + crop %.0f",
				e.EventType, e.Total, e.PropertyDamage, e.CropDamage)
		}
		aggDamage += e.Total
	}
	// Summation order differs between the two totals, so allow float slack.
	if diff := math.Abs(aggDamage - totalDamage); diff > 1e-6*math.Max(1, totalDamage) {
		p.errorf("economic totals: aggregated %.0f, direct %.0f", aggDamage, totalDamage)
	}
	for i := 1; i < len(economic); i++ {
		if economic[i].Total > economic[i-1].Total {
			p.errorf("economic table not sorted at row %d", i)
		}
	}

	fmt.Printf("Aggregates: %d health rows, %d economic rows\n", len(health), len(economic))
	return p
}
