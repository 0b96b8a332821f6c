package lib

// GenerateCSRFToken generates a cryptographically secure random token for the double-submit cookie
func GenerateCSRFToken() (string, error) {
	return GenerateRandomToken()
}
