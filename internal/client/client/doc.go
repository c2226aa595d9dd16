// Package client contains the client-side building blocks that talk to the
// babycare backend.
//
// # Overview
//
// The package provides:
//  1. The Backend Gateway contract (see the Client interface): login and
//     registration, token verification, the session user profile, the
//     growth log and the immunization/milestone update endpoints.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) with a fixed
//     base URL and timeout, default JSON headers, a per-request X-Request-ID
//     and per-call bearer token injection.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures and 502/503/504 map to ErrUnavailable, 401/403 to
// ErrUnauthorized, other non-2xx replies to ErrRequestFailed and bodies that
// do not decode to ErrMalformedResponse. Non-2xx replies are *APIError values
// carrying the backend message when one could be extracted.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context; cancelling it aborts the request.
package client
