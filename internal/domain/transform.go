package domain

import (
	"strconv"
	"strings"
	"time"
)

// beginDateLayouts covers the two BGN_DATE shapes found in the archive. The
// time-of-day portion is always "0:00:00" in the source, so only the date
// matters, but both shapes must parse.
var beginDateLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// eventTypeRewrites collapses known EVTYPE spelling variants into the
// official event names. Exact-match only: case variants and the long tail of
// near-duplicates pass through unchanged.
var eventTypeRewrites = map[string]string{
	"TSTM WIND":         "THUNDERSTORM WIND",
	"HURRICANE/TYPHOON": "HURRICANE (TYPHOON)",
	"WILD/FOREST FIRE":  "WILDFIRE",
	"RIP CURRENTS":      "RIP CURRENT",
}

// DamageMultiplier maps a damage unit suffix to its order-of-magnitude
// multiplier: "K" is 1e3, "M" is 1e6, "B" is 1e9. Any other suffix,
// including lowercase variants, returns 0. The zero (rather than an error)
// for unrecognized suffixes reproduces the reference analysis exactly;
// changing it would shift every downstream total.
func DamageMultiplier(unit string) float64 {
	switch unit {
	case "K":
		return 1e3
	case "M":
		return 1e6
	case "B":
		return 1e9
	default:
		return 0
	}
}

// NormalizeDamage converts a magnitude and unit suffix pair into an absolute
// dollar amount.
func NormalizeDamage(magnitude float64, unit string) float64 {
	return magnitude * DamageMultiplier(unit)
}

// CanonicalEventType rewrites a known spelling variant to its official event
// name and returns every other label unchanged. Idempotent: no rewrite
// target is itself a rewrite source.
func CanonicalEventType(label string) string {
	if canonical, ok := eventTypeRewrites[label]; ok {
		return canonical
	}
	return label
}

// DropReason says why CleanRecord excluded a row. Used as a metric label.
type DropReason string

const (
	DropNone            DropReason = ""
	DropUnparseableDate DropReason = "unparseable_date"
	DropBeforeCutoff    DropReason = "before_cutoff"
)

// CleanRecord converts a raw row into a StormEvent, applying the date parse,
// the temporal filter, damage normalization, and label normalization. A
// non-empty DropReason means the row is excluded: a begin date before the
// cutoff, or one that does not parse at all. The cutoff is inclusive.
func CleanRecord(raw RawRecord, cutoff time.Time) (StormEvent, DropReason) {
	beginTime, err := ParseBeginDate(raw.BeginDate)
	if err != nil {
		return StormEvent{}, DropUnparseableDate
	}
	if beginTime.Before(cutoff) {
		return StormEvent{}, DropBeforeCutoff
	}

	return StormEvent{
		BeginTime:      beginTime,
		EventType:      CanonicalEventType(raw.EventType),
		Fatalities:     parseCount(raw.Fatalities),
		Injuries:       parseCount(raw.Injuries),
		PropertyDamage: NormalizeDamage(parseMagnitude(raw.PropertyMagnitude), raw.PropertyUnit),
		CropDamage:     NormalizeDamage(parseMagnitude(raw.CropMagnitude), raw.CropUnit),
	}, DropNone
}

// ParseBeginDate parses a BGN_DATE value in M/D/YYYY notation, with or
// without a trailing time of day.
func ParseBeginDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	var lastErr error
	for _, layout := range beginDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseCount parses a casualty column. Counts appear as integers or as
// float-formatted integers ("2.00"); blanks and garbage count as zero.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseMagnitude parses a damage magnitude column, returning 0 on failure.
func parseMagnitude(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
