package domain

import "time"

// RawRecord holds the eight projected columns of one Storm Events CSV row,
// untyped as read from the file. Rows have no identity beyond position.
type RawRecord struct {
	BeginDate         string // BGN_DATE
	EventType         string // EVTYPE
	Fatalities        string // FATALITIES
	Injuries          string // INJURIES
	PropertyMagnitude string // PROPDMG
	PropertyUnit      string // PROPDMGEXP
	CropMagnitude     string // CROPDMG
	CropUnit          string // CROPDMGEXP
}

// StormEvent is the cleaned representation of a record that survived the
// temporal filter: parsed begin time, canonical event type, and damage
// figures converted to absolute dollar amounts.
type StormEvent struct {
	BeginTime      time.Time
	EventType      string
	Fatalities     int
	Injuries       int
	PropertyDamage float64
	CropDamage     float64
}

// HealthImpact is one row of the human-health aggregation: total direct
// fatalities and injuries for an event type.
type HealthImpact struct {
	EventType  string
	Fatalities int
	Injuries   int
}

// EconomicImpact is one row of the economic-damage aggregation. Total is
// always PropertyDamage + CropDamage.
type EconomicImpact struct {
	EventType      string
	PropertyDamage float64
	CropDamage     float64
	Total          float64
}

// EventFrequency is one row of the auxiliary frequency aggregation over
// casualty-producing events: occurrence count and combined casualties.
type EventFrequency struct {
	EventType  string
	Count      int
	Casualties int
}

// Report bundles the three result tables with row accounting for the run.
type Report struct {
	Health    []HealthImpact
	Economic  []EconomicImpact
	Frequency []EventFrequency

	RowsRead    int       // raw rows loaded from the CSV
	RowsKept    int       // rows within the inclusion window
	GeneratedAt time.Time // stamped from the package clock
}
