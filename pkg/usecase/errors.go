package usecase

// maxUpdateAttempts bounds how often a mutation is re-applied after a version conflict
const maxUpdateAttempts = 3

// Context keys for error values
const (
	AttemptKey = "attempt"
)
