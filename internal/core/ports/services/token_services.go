package services

// TokenSvcFacade defines operations for issuing and validating access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed bearer token for the given subject.
	GenerateAccessToken(subject string) (string, error)

	// ParseAccessToken validates a bearer token and returns its subject.
	// Expired, tampered, or otherwise malformed tokens fail closed.
	ParseAccessToken(tokenString string) (string, error)
}
