package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthEvent(eventType string, fatalities, injuries int) StormEvent {
	return StormEvent{EventType: eventType, Fatalities: fatalities, Injuries: injuries}
}

func damageEvent(eventType string, property, crop float64) StormEvent {
	return StormEvent{EventType: eventType, PropertyDamage: property, CropDamage: crop}
}

func TestAggregateHealth(t *testing.T) {
	t.Run("sums per event type", func(t *testing.T) {
		events := []StormEvent{
			healthEvent("TORNADO", 1, 10),
			healthEvent("TORNADO", 2, 5),
			healthEvent("HEAT", 3, 0),
		}

		result := AggregateHealth(events)
		require.Len(t, result, 2)
		assert.Equal(t, HealthImpact{EventType: "TORNADO", Fatalities: 3, Injuries: 15}, result[0])
		assert.Equal(t, HealthImpact{EventType: "HEAT", Fatalities: 3, Injuries: 0}, result[1])
	})

	t.Run("excludes rows without casualties", func(t *testing.T) {
		events := []StormEvent{
			healthEvent("DROUGHT", 0, 0),
			healthEvent("TORNADO", 0, 1),
		}

		result := AggregateHealth(events)
		require.Len(t, result, 1)
		assert.Equal(t, "TORNADO", result[0].EventType)
	})

	t.Run("fatalities break injury ties", func(t *testing.T) {
		events := []StormEvent{
			healthEvent("A", 2, 10),
			healthEvent("B", 5, 10),
		}

		result := AggregateHealth(events)
		require.Len(t, result, 2)
		assert.Equal(t, "B", result[0].EventType)
		assert.Equal(t, "A", result[1].EventType)
	})

	t.Run("label breaks full ties ascending", func(t *testing.T) {
		events := []StormEvent{
			healthEvent("ZULU", 1, 7),
			healthEvent("ALPHA", 1, 7),
			healthEvent("MIKE", 1, 7),
		}

		result := AggregateHealth(events)
		require.Len(t, result, 3)
		assert.Equal(t, "ALPHA", result[0].EventType)
		assert.Equal(t, "MIKE", result[1].EventType)
		assert.Equal(t, "ZULU", result[2].EventType)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, AggregateHealth(nil))
	})
}

func TestAggregateEconomic(t *testing.T) {
	t.Run("sums and totals per event type", func(t *testing.T) {
		events := []StormEvent{
			damageEvent("FLOOD", 100e6, 20e6),
			damageEvent("FLOOD", 50e6, 0),
			damageEvent("DROUGHT", 0, 200e6),
		}

		result := AggregateEconomic(events)
		require.Len(t, result, 2)
		assert.Equal(t, EconomicImpact{EventType: "DROUGHT", CropDamage: 200e6, Total: 200e6}, result[0])
		assert.Equal(t, EconomicImpact{
			EventType:      "FLOOD",
			PropertyDamage: 150e6,
			CropDamage:     20e6,
			Total:          170e6,
		}, result[1])
	})

	t.Run("excludes zero-damage rows entirely", func(t *testing.T) {
		events := []StormEvent{
			damageEvent("FOG", 0, 0),
			damageEvent("HAIL", 1000, 0),
		}

		result := AggregateEconomic(events)
		require.Len(t, result, 1)
		assert.Equal(t, "HAIL", result[0].EventType)
	})

	t.Run("label breaks total ties ascending", func(t *testing.T) {
		events := []StormEvent{
			damageEvent("WILDFIRE", 500, 500),
			damageEvent("AVALANCHE", 1000, 0),
		}

		result := AggregateEconomic(events)
		require.Len(t, result, 2)
		assert.Equal(t, "AVALANCHE", result[0].EventType)
		assert.Equal(t, "WILDFIRE", result[1].EventType)
	})
}

func TestAggregateFrequency(t *testing.T) {
	t.Run("counts casualty-producing events above threshold", func(t *testing.T) {
		var events []StormEvent
		for range 120 {
			events = append(events, healthEvent("THUNDERSTORM WIND", 0, 1))
		}
		for range 50 {
			events = append(events, healthEvent("LIGHTNING", 1, 0))
		}
		events = append(events, healthEvent("DROUGHT", 0, 0))

		result := AggregateFrequency(events, 100)
		require.Len(t, result, 1)
		assert.Equal(t, EventFrequency{EventType: "THUNDERSTORM WIND", Count: 120, Casualties: 120}, result[0])
	})

	t.Run("sorted by count descending", func(t *testing.T) {
		var events []StormEvent
		for range 3 {
			events = append(events, healthEvent("HAIL", 0, 2))
		}
		for range 5 {
			events = append(events, healthEvent("TORNADO", 1, 1))
		}

		result := AggregateFrequency(events, 1)
		require.Len(t, result, 2)
		assert.Equal(t, "TORNADO", result[0].EventType)
		assert.Equal(t, 10, result[0].Casualties)
		assert.Equal(t, "HAIL", result[1].EventType)
		assert.Equal(t, 6, result[1].Casualties)
	})
}

func TestTopN(t *testing.T) {
	rows := []HealthImpact{
		{EventType: "A"}, {EventType: "B"}, {EventType: "C"},
	}

	assert.Len(t, TopN(rows, 2), 2)
	assert.Len(t, TopN(rows, 3), 3)
	assert.Len(t, TopN(rows, 25), 3)
	assert.Len(t, TopN(rows, -1), 3)
	assert.Empty(t, TopN(rows, 0))
}
