package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCutoff = time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestDamageMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected float64
	}{
		{"thousands", "K", 1e3},
		{"millions", "M", 1e6},
		{"billions", "B", 1e9},
		{"blank", "", 0},
		{"lowercase k not recognized", "k", 0},
		{"lowercase m not recognized", "m", 0},
		{"digit", "5", 0},
		{"question mark", "?", 0},
		{"hundreds code", "H", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DamageMultiplier(tt.unit))
		})
	}
}

func TestNormalizeDamage(t *testing.T) {
	assert.Equal(t, 5000.0, NormalizeDamage(5, "K"))
	assert.Equal(t, 5000000.0, NormalizeDamage(5, "M"))
	assert.Equal(t, 5000000000.0, NormalizeDamage(5, "B"))
	assert.Equal(t, 0.0, NormalizeDamage(5, ""))
	assert.Equal(t, 0.0, NormalizeDamage(5, "k"))
}

func TestCanonicalEventType(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"thunderstorm wind variant", "TSTM WIND", "THUNDERSTORM WIND"},
		{"hurricane variant", "HURRICANE/TYPHOON", "HURRICANE (TYPHOON)"},
		{"wildfire variant", "WILD/FOREST FIRE", "WILDFIRE"},
		{"rip current plural", "RIP CURRENTS", "RIP CURRENT"},
		{"already canonical", "TORNADO", "TORNADO"},
		{"case variant passes through", "Tstm Wind", "Tstm Wind"},
		{"unknown label passes through", "LANDSPOUT", "LANDSPOUT"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalEventType(tt.label))
		})
	}

	t.Run("idempotent over all rewrite targets", func(t *testing.T) {
		for from, to := range eventTypeRewrites {
			assert.Equal(t, to, CanonicalEventType(CanonicalEventType(from)))
		}
	})
}

func TestParseBeginDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{"date with time", "4/18/1950 0:00:00", time.Date(1950, 4, 18, 0, 0, 0, 0, time.UTC), false},
		{"bare date", "6/15/2011", time.Date(2011, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"zero-padded", "01/01/1996 0:00:00", time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", " 5/3/1999 0:00:00 ", time.Date(1999, 5, 3, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "not-a-date", time.Time{}, true},
		{"iso format rejected", "1996-01-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBeginDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCleanRecord(t *testing.T) {
	t.Run("full record post-cutoff", func(t *testing.T) {
		raw := RawRecord{
			BeginDate:         "5/3/1999 0:00:00",
			EventType:         "TSTM WIND",
			Fatalities:        "2",
			Injuries:          "14",
			PropertyMagnitude: "25.5",
			PropertyUnit:      "K",
			CropMagnitude:     "1",
			CropUnit:          "M",
		}

		event, drop := CleanRecord(raw, testCutoff)
		require.Equal(t, DropNone, drop)
		assert.Equal(t, time.Date(1999, 5, 3, 0, 0, 0, 0, time.UTC), event.BeginTime)
		assert.Equal(t, "THUNDERSTORM WIND", event.EventType)
		assert.Equal(t, 2, event.Fatalities)
		assert.Equal(t, 14, event.Injuries)
		assert.Equal(t, 25500.0, event.PropertyDamage)
		assert.Equal(t, 1000000.0, event.CropDamage)
	})

	t.Run("day before cutoff excluded", func(t *testing.T) {
		raw := RawRecord{BeginDate: "12/31/1995 0:00:00", EventType: "TORNADO"}
		_, drop := CleanRecord(raw, testCutoff)
		assert.Equal(t, DropBeforeCutoff, drop)
	})

	t.Run("cutoff day included", func(t *testing.T) {
		raw := RawRecord{BeginDate: "1/1/1996 0:00:00", EventType: "TORNADO"}
		event, drop := CleanRecord(raw, testCutoff)
		require.Equal(t, DropNone, drop)
		assert.Equal(t, testCutoff, event.BeginTime)
	})

	t.Run("mid-window date included", func(t *testing.T) {
		raw := RawRecord{BeginDate: "6/15/2011 0:00:00", EventType: "FLOOD"}
		_, drop := CleanRecord(raw, testCutoff)
		assert.Equal(t, DropNone, drop)
	})

	t.Run("unparseable date excluded", func(t *testing.T) {
		raw := RawRecord{BeginDate: "soon", EventType: "TORNADO"}
		_, drop := CleanRecord(raw, testCutoff)
		assert.Equal(t, DropUnparseableDate, drop)
	})

	t.Run("blank numeric fields parse as zero", func(t *testing.T) {
		raw := RawRecord{BeginDate: "1/1/2000 0:00:00", EventType: "HEAT"}
		event, drop := CleanRecord(raw, testCutoff)
		require.Equal(t, DropNone, drop)
		assert.Zero(t, event.Fatalities)
		assert.Zero(t, event.Injuries)
		assert.Zero(t, event.PropertyDamage)
		assert.Zero(t, event.CropDamage)
	})

	t.Run("unrecognized unit zeroes the cost", func(t *testing.T) {
		raw := RawRecord{
			BeginDate:         "1/1/2000 0:00:00",
			EventType:         "HAIL",
			PropertyMagnitude: "500",
			PropertyUnit:      "k",
		}
		event, drop := CleanRecord(raw, testCutoff)
		require.Equal(t, DropNone, drop)
		assert.Zero(t, event.PropertyDamage)
	})

	t.Run("float-formatted counts", func(t *testing.T) {
		raw := RawRecord{
			BeginDate:  "1/1/2000 0:00:00",
			EventType:  "TORNADO",
			Fatalities: "2.00",
			Injuries:   "11.00",
		}
		event, drop := CleanRecord(raw, testCutoff)
		require.Equal(t, DropNone, drop)
		assert.Equal(t, 2, event.Fatalities)
		assert.Equal(t, 11, event.Injuries)
	})
}
