package health

// Urgency ranks how fast a caregiver should act on reported symptoms.
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

var urgencyRank = map[Urgency]int{
	UrgencyRoutine:   0,
	UrgencyUrgent:    1,
	UrgencyEmergency: 2,
}

// Escalate returns the higher of the two urgencies. Classification only ever
// moves upward within one evaluation pass.
func Escalate(current, candidate Urgency) Urgency {
	if urgencyRank[candidate] > urgencyRank[current] {
		return candidate
	}
	return current
}

// Symptom is one caregiver-reported observation.
type Symptom struct {
	Name     string
	Severity string // mild, moderate, severe
}

// ExamFindings are the physical observations entered alongside symptoms.
// TemperatureC is 0 when not measured.
type ExamFindings struct {
	TemperatureC     float64
	PaleSkin         bool
	LaboredBreathing bool
}

// Symptom names that always mean emergency, regardless of reported severity.
var emergencyRedFlags = map[string]bool{
	"Convulsions":           true,
	"Apnée":                 true,
	"Cyanose":               true,
	"Perte de connaissance": true,
	"Déshydratation sévère": true,
	"Fontanelle bombée":     true,
}

// youngInfantFeverCutoffWeeks: any fever strictly under this age is an
// emergency. The boundary is exclusive; exactly 12 weeks uses the older
// thresholds.
const youngInfantFeverCutoffWeeks = 12

// AssessUrgency classifies a set of symptoms and exam findings for a baby of
// the given age. Escalation is monotonic: no rule ever lowers a level set by
// an earlier one.
func AssessUrgency(ageWeeks int, symptoms []Symptom, exam ExamFindings) Urgency {
	level := UrgencyRoutine

	for _, s := range symptoms {
		if emergencyRedFlags[s.Name] {
			level = Escalate(level, UrgencyEmergency)
		}
		if s.Severity == "severe" {
			level = Escalate(level, UrgencyUrgent)
		}
	}

	if exam.TemperatureC > 0 {
		if ageWeeks < youngInfantFeverCutoffWeeks {
			if exam.TemperatureC >= 38.0 {
				level = Escalate(level, UrgencyEmergency)
			}
		} else {
			switch {
			case exam.TemperatureC >= 40.5:
				level = Escalate(level, UrgencyEmergency)
			case exam.TemperatureC >= 39.0:
				level = Escalate(level, UrgencyUrgent)
			}
		}
	}

	if exam.LaboredBreathing {
		level = Escalate(level, UrgencyEmergency)
	}
	if exam.PaleSkin {
		level = Escalate(level, UrgencyUrgent)
	}

	return level
}
