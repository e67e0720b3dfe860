package health

// percentileBand holds the upper bounds for percentiles 3..97 at one age.
// Values are inclusive upper bounds: an observation equal to the p50 bound
// is percentile 50.
type percentileBand struct {
	ageMonths int
	bounds    [7]float64 // p3, p10, p25, p50, p75, p90, p97
}

var percentileLevels = [7]int{3, 10, 25, 50, 75, 90, 97}

// Weight-for-age bands in kilograms, mixed-sex averages.
var weightBands = []percentileBand{
	{0, [7]float64{2.5, 2.8, 3.0, 3.3, 3.7, 3.9, 4.3}},
	{1, [7]float64{3.4, 3.7, 4.0, 4.4, 4.8, 5.1, 5.6}},
	{2, [7]float64{4.3, 4.6, 5.0, 5.5, 6.0, 6.3, 7.0}},
	{3, [7]float64{5.0, 5.3, 5.7, 6.2, 6.8, 7.2, 7.9}},
	{4, [7]float64{5.6, 5.9, 6.3, 6.9, 7.5, 7.9, 8.6}},
	{6, [7]float64{6.4, 6.7, 7.1, 7.8, 8.5, 9.0, 9.8}},
	{9, [7]float64{7.1, 7.5, 8.0, 8.7, 9.6, 10.1, 11.0}},
	{12, [7]float64{7.7, 8.1, 8.6, 9.4, 10.4, 10.9, 12.0}},
	{18, [7]float64{8.6, 9.1, 9.7, 10.7, 11.8, 12.4, 13.7}},
	{24, [7]float64{9.7, 10.2, 10.8, 12.0, 13.1, 13.9, 15.3}},
}

// Length/height-for-age bands in centimeters, mixed-sex averages.
var heightBands = []percentileBand{
	{0, [7]float64{46.1, 47.3, 48.4, 49.9, 51.2, 52.3, 53.7}},
	{1, [7]float64{50.8, 52.1, 53.3, 54.7, 56.2, 57.4, 58.6}},
	{2, [7]float64{54.4, 55.7, 56.9, 58.4, 60.0, 61.1, 62.4}},
	{3, [7]float64{57.3, 58.6, 59.9, 61.4, 63.0, 64.2, 65.5}},
	{4, [7]float64{59.7, 61.0, 62.3, 63.9, 65.4, 66.7, 68.0}},
	{6, [7]float64{63.3, 64.6, 65.9, 67.6, 69.2, 70.5, 71.9}},
	{9, [7]float64{67.7, 69.1, 70.5, 72.3, 74.0, 75.4, 77.0}},
	{12, [7]float64{71.0, 72.6, 74.0, 75.7, 77.7, 79.2, 80.8}},
	{18, [7]float64{76.9, 78.4, 80.0, 82.3, 84.4, 85.9, 87.7}},
	{24, [7]float64{81.7, 83.5, 85.1, 87.7, 89.9, 91.7, 93.6}},
}

// nearestBand picks the band whose age is closest to ageMonths.
func nearestBand(bands []percentileBand, ageMonths int) percentileBand {
	best := bands[0]
	bestDiff := abs(ageMonths - best.ageMonths)
	for _, b := range bands[1:] {
		if d := abs(ageMonths - b.ageMonths); d < bestDiff {
			best, bestDiff = b, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// lookupPercentile returns the lowest percentile whose upper bound is >= the
// observed value, defaulting to the top bucket when the value exceeds every
// threshold.
func lookupPercentile(band percentileBand, value float64) int {
	for i, bound := range band.bounds {
		if value <= bound {
			return percentileLevels[i]
		}
	}
	return percentileLevels[len(percentileLevels)-1]
}

// WeightPercentile estimates the weight-for-age percentile.
func WeightPercentile(ageMonths int, weightKg float64) int {
	return lookupPercentile(nearestBand(weightBands, ageMonths), weightKg)
}

// HeightPercentile estimates the height-for-age percentile.
func HeightPercentile(ageMonths int, heightCm float64) int {
	return lookupPercentile(nearestBand(heightBands, ageMonths), heightCm)
}
