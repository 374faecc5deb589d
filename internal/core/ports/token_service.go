package ports

// TokenService issues and verifies the stateless bearer tokens used by the
// API. Tokens are valid until natural expiry; there is no revocation list.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id. Failures are classified as
	// domain.ErrTokenExpired or domain.ErrTokenInvalid; callers react
	// differently to the two.
	Verify(token string) (string, error)
}
