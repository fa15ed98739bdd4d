package domain

import "sort"

// AggregateHealth groups casualty-producing events by type and sums direct
// fatalities and injuries. Rows with neither fatalities nor injuries are
// excluded before grouping. The result is ordered by injuries descending,
// then fatalities descending, then event type ascending; the full tie-break
// chain keeps output byte-stable across runs.
func AggregateHealth(events []StormEvent) []HealthImpact {
	byType := make(map[string]*HealthImpact)
	for i := range events {
		e := &events[i]
		if e.Fatalities <= 0 && e.Injuries <= 0 {
			continue
		}
		agg, ok := byType[e.EventType]
		if !ok {
			agg = &HealthImpact{EventType: e.EventType}
			byType[e.EventType] = agg
		}
		agg.Fatalities += e.Fatalities
		agg.Injuries += e.Injuries
	}

	result := make([]HealthImpact, 0, len(byType))
	for _, agg := range byType {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Injuries != result[j].Injuries {
			return result[i].Injuries > result[j].Injuries
		}
		if result[i].Fatalities != result[j].Fatalities {
			return result[i].Fatalities > result[j].Fatalities
		}
		return result[i].EventType < result[j].EventType
	})
	return result
}

// AggregateEconomic groups damage-producing events by type and sums property
// and crop damage. Rows with zero damage in both columns are excluded
// entirely. Ordered by combined total descending, then event type ascending.
func AggregateEconomic(events []StormEvent) []EconomicImpact {
	byType := make(map[string]*EconomicImpact)
	for i := range events {
		e := &events[i]
		if e.PropertyDamage <= 0 && e.CropDamage <= 0 {
			continue
		}
		agg, ok := byType[e.EventType]
		if !ok {
			agg = &EconomicImpact{EventType: e.EventType}
			byType[e.EventType] = agg
		}
		agg.PropertyDamage += e.PropertyDamage
		agg.CropDamage += e.CropDamage
	}

	result := make([]EconomicImpact, 0, len(byType))
	for _, agg := range byType {
		agg.Total = agg.PropertyDamage + agg.CropDamage
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].EventType < result[j].EventType
	})
	return result
}

// AggregateFrequency counts casualty-producing events per type, keeping only
// types that occur at least minCount times. Ordered by count descending,
// then event type ascending.
func AggregateFrequency(events []StormEvent, minCount int) []EventFrequency {
	byType := make(map[string]*EventFrequency)
	for i := range events {
		e := &events[i]
		if e.Fatalities <= 0 && e.Injuries <= 0 {
			continue
		}
		agg, ok := byType[e.EventType]
		if !ok {
			agg = &EventFrequency{EventType: e.EventType}
			byType[e.EventType] = agg
		}
		agg.Count++
		agg.Casualties += e.Fatalities + e.Injuries
	}

	result := make([]EventFrequency, 0, len(byType))
	for _, agg := range byType {
		if agg.Count < minCount {
			continue
		}
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].EventType < result[j].EventType
	})
	return result
}

// TopN returns the first n rows of a sorted aggregation, or all rows when
// fewer exist. The slice shares backing storage with the input.
func TopN[T any](rows []T, n int) []T {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
