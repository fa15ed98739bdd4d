// Command genfixture writes a small synthetic Storm Events CSV in the NOAA
// column layout, for local pipeline runs without the 47MB download. It then
// runs the real cleaning and aggregation code over the fixture and prints
// the expected result tables, so test assertions can be copied verbatim.
//
// Usage:
//
//	go run ./cmd/genfixture -out data/fixture/storm_fixture.csv.gz
package main

import (
	"compress/gzip"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

var header = []string{
	"STATE__", "BGN_DATE", "BGN_TIME", "STATE", "EVTYPE",
	"FATALITIES", "INJURIES", "PROPDMG", "PROPDMGEXP", "CROPDMG", "CROPDMGEXP",
}

// fixtureRows spans the 1996 cutoff, covers every rewrite-table variant, and
// includes the unit-suffix edge cases (blank, lowercase, digit).
var fixtureRows = [][]string{
	{"1", "4/18/1950 0:00:00", "0130", "AL", "TORNADO", "2", "15", "25", "K", "0", ""},
	{"48", "12/31/1995 0:00:00", "2200", "TX", "TSTM WIND", "0", "3", "50", "K", "0", ""},
	{"48", "1/1/1996 0:00:00", "0600", "TX", "TSTM WIND", "1", "8", "120", "K", "15", "K"},
	{"12", "8/24/2004 0:00:00", "1400", "FL", "HURRICANE/TYPHOON", "7", "40", "5.4", "B", "285", "M"},
	{"6", "10/21/2003 0:00:00", "1000", "CA", "WILD/FOREST FIRE", "1", "14", "975", "M", "0", ""},
	{"12", "7/12/2001 0:00:00", "1530", "FL", "RIP CURRENTS", "2", "1", "0", "", "0", ""},
	{"40", "5/3/1999 0:00:00", "1830", "OK", "TORNADO", "36", "583", "1", "B", "0", ""},
	{"29", "6/9/2007 0:00:00", "0900", "MO", "HAIL", "0", "0", "400", "k", "30", "K"},
	{"17", "7/19/2006 0:00:00", "1200", "IL", "EXCESSIVE HEAT", "12", "30", "0", "", "0", ""},
	{"22", "8/29/2005 0:00:00", "0700", "LA", "FLOOD", "25", "104", "16.9", "B", "115", "M"},
	{"31", "6/15/2011 0:00:00", "1645", "NE", "HAIL", "0", "4", "75", "M", "42", "M"},
	{"5", "2/5/2008 0:00:00", "??", "AR", "TORNADO", "13", "140", "300", "M", "5", "5"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/fixture/storm_fixture.csv.gz", "output path; .gz extension enables compression")
	flag.Parse()

	if err := writeFixture(*out); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d rows: %s", len(fixtureRows), *out)

	printExpected()
	return nil
}

func writeFixture(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(fixtureRows); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return nil
}

// printExpected cleans and aggregates the fixture with the real domain code
// and prints the tables the pipeline should produce from it.
func printExpected() {
	cutoff := time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

	var events []domain.StormEvent
	dropped := 0
	for _, row := range fixtureRows {
		raw := domain.RawRecord{
			BeginDate:         row[1],
			EventType:         row[4],
			Fatalities:        row[5],
			Injuries:          row[6],
			PropertyMagnitude: row[7],
			PropertyUnit:      row[8],
			CropMagnitude:     row[9],
			CropUnit:          row[10],
		}
		event, drop := domain.CleanRecord(raw, cutoff)
		if drop != domain.DropNone {
			dropped++
			continue
		}
		events = append(events, event)
	}

	fmt.Println("\n=== Expected tables for test assertions ===")
	fmt.Printf("rows: %d total, %d kept, %d dropped\n", len(fixtureRows), len(events), dropped)

	fmt.Println("\nHealth (injuries desc, fatalities desc, label asc):")
	for _, h := range domain.AggregateHealth(events) {
		fmt.Printf("  %-22s fatalities=%-4d injuries=%d\n", h.EventType, h.Fatalities, h.Injuries)
	}

	fmt.Println("\nEconomic (total desc, label asc):")
	for _, e := range domain.AggregateEconomic(events) {
		fmt.Printf("  %-22s property=%.0f crop=%.0f total=%.0f\n", e.EventType, e.PropertyDamage, e.CropDamage, e.Total)
	}

	fmt.Println("\nFrequency (count desc, min count 1):")
	for _, f := range domain.AggregateFrequency(events, 1) {
		fmt.Printf("  %-22s count=%-3d casualties=%d\n", f.EventType, f.Count, f.Casualties)
	}
}
