package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by Claims when the session is anonymous.
var ErrNoToken = errors.New("session: no token held")

// Claims is the displayable subset of the bearer token's registered claims.
// The token is parsed without signature verification: the client has no key
// material, and the values are used for display only, never authorization.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without an exp claim never report expired.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// Claims introspects the held bearer token.
func (s *Store) Claims() (*Claims, error) {
	sess := s.Snapshot()
	if sess.Token == "" {
		return nil, ErrNoToken
	}

	parsed := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, parsed); err != nil {
		return nil, err
	}

	out := &Claims{}
	if sub, err := parsed.GetSubject(); err == nil {
		out.Subject = sub
	}
	if role, ok := parsed["role"].(string); ok {
		out.Role = role
	}
	if iat, err := parsed.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := parsed.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
