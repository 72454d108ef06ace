package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier validates access tokens issued by the external identity
// provider and extracts the request principal. Tokens are HS256 with
// "user_id" and "role" claims.
type Verifier struct {
	hmacSecret []byte
}

// NewVerifier creates a token verifier for the shared HS256 secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{hmacSecret: []byte(secret)}
}

// Verify parses and validates a token string, returning the principal it
// carries. Expiry and signature are checked by the JWT library; the role
// must additionally be a recognized platform role.
func (v *Verifier) Verify(tokenString string) (domain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.hmacSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}
	role := domain.GlobalRole(rawRole)
	if !role.Known() {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{ID: userID, Role: role}, nil
}
