package usecase

// MaxUpdateAttempts is exported for testing
const MaxUpdateAttempts = maxUpdateAttempts
