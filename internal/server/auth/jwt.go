// Package auth issues and verifies the signed session tokens handed out on
// login. Tokens are HS256 JWTs carrying the member id; possession of a valid
// token only proves identity, admin status is decided per request against the
// allowlist.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ronin-designs/studiokeeper/internal/common"
)

// Claims extends the registered claim set with the authenticated member id.
type Claims struct {
	jwt.RegisteredClaims
	MemberID string
}

func GenerateToken(memberID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		MemberID: memberID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetMemberIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.MemberID, nil
}
