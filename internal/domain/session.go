package domain

// Session holds the backend-issued bearer credential for one portal session.
// Both fields are opaque here; no well-formedness validation happens at this
// layer.
type Session struct {
	Token     string
	TokenType string
}

// HasToken reports whether a bearer token is present.
func (s Session) HasToken() bool {
	return s.Token != ""
}
