package service

// AuthMetrics records authentication outcomes for monitoring. Implementations
// must be safe for concurrent use.
type AuthMetrics interface {
	RegistrationAttempt(success bool)
	LoginAttempt(success bool)
	TokenRefresh(success bool)
}
