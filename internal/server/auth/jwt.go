// Package auth signs and verifies session cookies and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session cookie. The subject is the
// server-side session id; the cookie alone never grants access without a
// matching session row.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"aid"`
}

// GenerateSessionToken signs an HS256 token for the session, valid until expiresAt.
func GenerateSessionToken(sessionID string, accountID int64, expiresAt time.Time, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken verifies the signature and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields common.ErrInvalidToken.
func ParseSessionToken(tokenString string, secretKey []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.AccountID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
