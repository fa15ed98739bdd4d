// Package domain models NOAA Storm Events database records and the
// aggregations computed over them.
//
// # Data Source
//
// Records come from the NOAA National Climatic Data Center (NCDC) Storm
// Events database, distributed as a single bzip2-compressed CSV covering
// 1950 onward. Only eight of the file's 37 columns are consumed:
//
//	BGN_DATE    event begin date, "M/D/YYYY H:MM:SS" or "M/D/YYYY"
//	EVTYPE      event type label, e.g. "TORNADO", "TSTM WIND"
//	FATALITIES  direct fatality count
//	INJURIES    direct injury count
//	PROPDMG     property damage magnitude (decimal)
//	PROPDMGEXP  property damage unit suffix (single character)
//	CROPDMG     crop damage magnitude (decimal)
//	CROPDMGEXP  crop damage unit suffix (single character)
//
// # Damage Encoding
//
// Damage figures are split into a magnitude and a unit suffix:
//
//	PROPDMG=25.0 PROPDMGEXP=K  →  $25,000
//	CROPDMG=1.5  CROPDMGEXP=B  →  $1,500,000,000
//
// Recognized suffixes are uppercase "K" (10^3), "M" (10^6), and "B" (10^9).
// Every other value (blank, lowercase variants, digits, "?") yields a
// multiplier of zero, silently zeroing the figure. The case-sensitivity is a
// latent quirk of the reference analysis that all published totals depend on,
// so it is preserved exactly. See [DamageMultiplier].
//
// # Event Type Labels
//
// EVTYPE is free text entered by hundreds of reporting offices over six
// decades, so the same phenomenon appears under multiple spellings. A small
// rewrite table collapses the four highest-impact variants into the official
// names ("TSTM WIND" → "THUNDERSTORM WIND" and so on); the long tail of
// near-duplicates passes through unchanged. See [CanonicalEventType].
//
// # Reporting Cutoff
//
// Before 1996 the NWS recorded only tornado, thunderstorm wind, and hail
// events. Comparing event types across the full archive would therefore bias
// every ranking toward those three, so records are filtered to begin dates on
// or after January 1, 1996, when all 48 current event types started being
// logged. See [CleanRecord].
package domain
