// Package common contains shared constants and sentinel errors used across
// babycare components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the session token in AuthorizationHeaderName.
const BearerScheme = "Bearer "

// RequestIDHeaderName correlates a client request with backend logs.
const RequestIDHeaderName = "X-Request-ID"

// Metadata keys used in the local key/value store.
const (
	MetadataKeySessionToken    = "session_token"
	MetadataKeyOnboardingState = "onboarding_state"
	MetadataKeyUserEmail       = "user_email"
	MetadataKeyBabyID          = "baby_id"
)
