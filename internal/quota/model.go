// Package quota gates Gemini-backed geocoding lookups behind a per-user
// monthly allowance, adapted from the ride-hailing module's AI-chat token
// ledger.
package quota

import "errors"

// ErrInsufficientTokens is returned when uid has no lookups remaining for
// the current month.
var ErrInsufficientTokens = errors.New("quota: insufficient geocoding lookups remaining this month")

// DefaultLookups is the number of geocoding lookups granted per user per
// month.
const DefaultLookups = 100
