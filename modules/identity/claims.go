package identity

import (
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject is the object-valued sub claim carried by access and refresh
// tokens. Clients read display data straight from the token without a
// profile round trip.
type Subject struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Claims is the payload of every token this module signs. Access and
// refresh tokens share the shape and differ only in lifetime.
type Claims struct {
	Username  string             `json:"username"`
	Subject   Subject            `json:"sub"`
	Issuer    string             `json:"iss,omitempty"`
	IssuedAt  *jwtv5.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwtv5.NumericDate `json:"exp,omitempty"`
	TokenID   string             `json:"jti,omitempty"`
}

func newClaims(p *Principal, issuer string, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		Username: p.PrimaryEmail,
		Subject: Subject{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		},
		Issuer:    issuer,
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		TokenID:   uuid.NewString(),
	}
}

// The jwtv5.Claims interface, backed by the struct fields above. The string
// form of sub is the principal ID; the structured form stays available on
// the Subject field.

func (c *Claims) GetExpirationTime() (*jwtv5.NumericDate, error) { return c.ExpiresAt, nil }
func (c *Claims) GetIssuedAt() (*jwtv5.NumericDate, error)       { return c.IssuedAt, nil }
func (c *Claims) GetNotBefore() (*jwtv5.NumericDate, error)      { return nil, nil }
func (c *Claims) GetIssuer() (string, error)                     { return c.Issuer, nil }
func (c *Claims) GetAudience() (jwtv5.ClaimStrings, error)       { return nil, nil }

func (c *Claims) GetSubject() (string, error) {
	return strconv.FormatInt(c.Subject.ID, 10), nil
}
