package calendar

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// StateCodec signs and verifies the OAuth state parameter so the connect
// callback can trust which partner a returning authorization code belongs to.
type StateCodec struct {
	secret []byte
}

// NewStateCodec builds a codec over the shared signing secret.
func NewStateCodec(secret string) *StateCodec {
	return &StateCodec{secret: []byte(secret)}
}

type stateClaims struct {
	PartnerID     string `json:"partnerId"`
	CredentialRef string `json:"credentialRef"`
	jwt.StandardClaims
}

// Sign produces a short-lived signed state token for the connect flow.
func (c *StateCodec) Sign(partnerID, credentialRef string) (string, error) {
	claims := stateClaims{
		PartnerID:     partnerID,
		CredentialRef: credentialRef,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign connect state: %w", err)
	}
	return signed, nil
}

// Verify validates a state token and returns the partner id and credential
// handle embedded in it.
func (c *StateCodec) Verify(state string) (partnerID, credentialRef string, err error) {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid connect state: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid connect state")
	}
	return claims.PartnerID, claims.CredentialRef, nil
}
