package health

import "babysteps/internal/common"

// Medication describes a pediatric medication's dosing rules. Either
// DosagePerKgMg or FixedDoseMg is set; a liquid form additionally carries a
// concentration so a volume can be derived.
type Medication struct {
	Name                 string
	Route                string // oral, rectal, ...
	DosagePerKgMg        float64
	FixedDoseMg          float64
	ConcentrationMgPerML float64
	MaxDailyDosesCount   int
	MinAgeWeeks          int
}

// Dosage is a computed recommendation for one administration.
type Dosage struct {
	Medication  string
	Route       string
	DoseMg      float64
	VolumeML    float64 // 0 when no liquid form is known
	MaxDailyMg  float64
	DosesPerDay int
}

// CalculateDosage computes the recommended single dose and the daily
// ceiling for a baby of the given weight and age. It refuses to dose below
// the medication's minimum age.
func CalculateDosage(med Medication, weightGrams float64, ageWeeks int) (Dosage, error) {
	if ageWeeks < med.MinAgeWeeks {
		return Dosage{}, common.ErrorBelowMinimumAge
	}

	kg := weightGrams / 1000

	doseMg := med.FixedDoseMg
	if med.DosagePerKgMg > 0 {
		doseMg = med.DosagePerKgMg * kg
	}

	d := Dosage{
		Medication: med.Name,
		Route:      med.Route,
		DoseMg:     doseMg,
	}

	if med.ConcentrationMgPerML > 0 {
		d.VolumeML = doseMg / med.ConcentrationMgPerML
	}

	d.DosesPerDay = med.MaxDailyDosesCount
	if d.DosesPerDay == 0 {
		d.DosesPerDay = 4
	}
	d.MaxDailyMg = doseMg * float64(d.DosesPerDay)

	return d, nil
}
