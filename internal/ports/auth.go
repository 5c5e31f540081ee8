package ports

// AuthClaims is the identity extracted from a bearer token by the transport
// layer.
type AuthClaims struct {
	Subject string
	Role    string
}

// TokenVerifier validates a raw bearer token. This service never issues
// tokens; the course platform's auth service does.
type TokenVerifier interface {
	Verify(raw string) (AuthClaims, error)
}
