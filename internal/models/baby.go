// Package models defines the domain records shared by the client store and
// the server API: babies, care entries, profile, settings, family members,
// and client-side notifications.
package models

import "time"

// Gender of a baby as entered by the parent.
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderUnspecified Gender = "unspecified"
)

// Baby is the household's tracked child. Weight is stored in grams and
// height in centimeters; both are updated whenever the profile is edited.
// Babies are never hard-deleted.
type Baby struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BirthDate   time.Time `json:"birthDate"`
	WeightGrams float64   `json:"weightGrams"`
	HeightCm    float64   `json:"heightCm"`
	Gender      Gender    `json:"gender"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
}
