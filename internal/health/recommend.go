package health

// Recommendation ladders are step functions of age-in-weeks. Thresholds
// follow common newborn guidance: the youngest babies eat small amounts
// often and sleep the most.

// RecommendedDailyMilkML returns the suggested total daily milk volume,
// scaled by current weight.
func RecommendedDailyMilkML(ageWeeks int, weightGrams float64) float64 {
	kg := weightGrams / 1000
	switch {
	case ageWeeks < 4:
		return 150 * kg
	case ageWeeks < 12:
		return 140 * kg
	case ageWeeks < 24:
		return 120 * kg
	default:
		return 100 * kg
	}
}

// RecommendedFeedingIntervalHours returns the suggested time between
// feedings.
func RecommendedFeedingIntervalHours(ageWeeks int) float64 {
	switch {
	case ageWeeks < 4:
		return 2.5
	case ageWeeks < 12:
		return 3
	case ageWeeks < 24:
		return 3.5
	default:
		return 4
	}
}

// RecommendedDailySleepMinutes returns the suggested total daily sleep.
func RecommendedDailySleepMinutes(ageWeeks int) int {
	switch {
	case ageWeeks < 4:
		return 960
	case ageWeeks < 12:
		return 900
	case ageWeeks < 24:
		return 840
	default:
		return 780
	}
}
