package model

import "time"

// GenderUnknown is applied when a person is created without a gender.
const GenderUnknown = "Unknown"

// Person holds the fields shared by parents and children. It is never
// stored on its own; Parent and Child embed it and the persons table
// carries a dtype discriminator.
type Person struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"` // ISO-8601 date, yyyy-mm-dd
	Gender    string `json:"gender"`
}

type Parent struct {
	Person
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Child struct {
	Person
	Allergies          string    `json:"allergies"`
	DietaryPreferences string    `json:"dietary_preferences"`
	Notes              string    `json:"notes"`
	Active             bool      `json:"active"`
	Parent             *Parent   `json:"parent"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PersonSummary is the read-only union view over the person hierarchy.
type PersonSummary struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"` // PARENT or CHILD
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Gender    string `json:"gender"`
}
