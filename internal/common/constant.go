package common

// DefaultUser is recorded on audit entries when the caller does not
// identify themselves.
const DefaultUser = "unknown"
