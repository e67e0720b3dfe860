// Package common contains shared constants and sentinel errors used across
// babysteps components.
package common

// IdentityHeaderName is the HTTP header used to carry the identifying email
// on outbound requests that mutate server state.
const IdentityHeaderName = "X-Identity-Email"

// RefreshEventName names the client-wide signal broadcast after any mutation
// so live-data pollers re-fetch out of cycle.
const RefreshEventName = "refresh-live-data"
