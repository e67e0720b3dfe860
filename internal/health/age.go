// Package health holds the derived-metrics calculators: age arithmetic,
// feeding/sleep recommendation ladders, growth percentile lookup, pediatric
// dosage computation, and the symptom urgency classifier. Everything here is
// a pure function over stored values; no I/O.
package health

import "time"

// AgeInDays returns full days elapsed since birth.
func AgeInDays(birthDate, now time.Time) int {
	d := int(now.Sub(birthDate).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// AgeInWeeks returns full weeks elapsed since birth.
func AgeInWeeks(birthDate, now time.Time) int {
	return AgeInDays(birthDate, now) / 7
}

// AgeInMonths returns calendar months elapsed since birth. The month count
// is decremented when the current day-of-month precedes the birth
// day-of-month, so a baby born Jan 31 is not "1 month" on Feb 1.
func AgeInMonths(birthDate, now time.Time) int {
	months := (now.Year()-birthDate.Year())*12 + int(now.Month()) - int(birthDate.Month())
	if now.Day() < birthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
