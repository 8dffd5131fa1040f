package config

// DefaultDatabasePath is the default path for the main application database
const DefaultDatabasePath = "./getitdone.db"

// DefaultInterestCap bounds how many projects a user may hold active
// interest in at once. Arbitrary product threshold, overridable via
// INTEREST_MAX_ACTIVE.
const DefaultInterestCap = 5
