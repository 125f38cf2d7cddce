package platform

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// tokenTTL bounds the validity of one signed bearer token. Clients are
// per-request, so a token rarely outlives a single call; the TTL exists
// so a leaked token expires quickly.
const tokenTTL = 10 * time.Minute

// jwtTokenSource mints HS256 bearer tokens for the Lattice API from the
// deployment's organization/environment/secret triple. Wrapped in
// oauth2.ReuseTokenSource so one client re-signs only on expiry.
type jwtTokenSource struct {
	organizationID string
	environmentID  string
	secret         []byte
	ttl            time.Duration
	now            func() time.Time
}

// Token implements oauth2.TokenSource.
func (s *jwtTokenSource) Token() (*oauth2.Token, error) {
	now := s.now()
	expiry := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"iss": "lattice-mcp",
		"sub": s.organizationID,
		"env": s.environmentID,
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign claims: %w", err)
	}

	return &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
