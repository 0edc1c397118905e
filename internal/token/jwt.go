package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authgate/authgate-server/internal/model"
)

// Ensure JWT implements the model.TokenManager interface.
var _ model.TokenManager = (*JWT)(nil)

// Claims represents session token claims. The subject carries the email
// the session was issued for.
type Claims struct {
	jwt.RegisteredClaims
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a JWT token manager signing with secretKey and binding
// each token to a fixed ttl from issuance.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Generate creates a signed session token for email expiring ttl from now.
func (j *JWT) Generate(email model.Email) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the token signature and expiry and returns its claims.
// Any verification failure is reported as model.ErrInvalidToken.
func (j *JWT) Parse(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return model.Claims{}, model.ErrInvalidToken
	}

	email, err := model.ParseEmail(claims.Subject)
	if err != nil {
		return model.Claims{}, model.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return model.Claims{}, model.ErrInvalidToken
	}

	return model.Claims{
		Email:     email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
