// Package models defines the JSON documents exchanged with the babycare backend.
package models

import "time"

// User is the profile returned by /auth/user and embedded in auth responses.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	// BabyID is the baby profile the account currently tracks.
	BabyID string `json:"baby_id,omitempty"`

	// OnboardingComplete is nil when the backend does not report it.
	OnboardingComplete *bool `json:"onboarding_complete,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the body of successful /auth/login and /auth/register calls.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenCheck is the body of /verify-token.
type TokenCheck struct {
	Valid *bool `json:"valid"`
}

// GrowthRecord is one measurement in the append-only growth log.
// Lengths are in centimetres, weight in kilograms.
type GrowthRecord struct {
	ID         string    `json:"id"`
	BabyID     string    `json:"baby_id"`
	Height     float64   `json:"height"`
	Weight     float64   `json:"weight"`
	HeadSize   float64   `json:"head_size"`
	MeasuredAt time.Time `json:"measured_at"`
	Notes      string    `json:"notes,omitempty"`
}

// NewGrowthRecord is the create request for the growth log. ClientID lets
// the backend deduplicate retried submissions.
type NewGrowthRecord struct {
	ClientID   string    `json:"client_id"`
	Height     float64   `json:"height"`
	Weight     float64   `json:"weight"`
	HeadSize   float64   `json:"head_size"`
	MeasuredAt time.Time `json:"measured_at"`
	Notes      string    `json:"notes,omitempty"`
}

// RecordUpdate is the update request for immunization and milestone items.
type RecordUpdate struct {
	GroupID        string     `json:"group_id"`
	Status         string     `json:"status"`
	OccurredAt     *time.Time `json:"occurred_at"`
	AdministeredBy string     `json:"administered_by,omitempty"`
	AdministeredAt string     `json:"administered_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// ErrorBody is the best-effort shape of backend error responses.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
