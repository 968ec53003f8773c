package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
)

type UserClaims struct {
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Zone      string `json:"zone"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Load private key from PEM
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(b)
}

// Load public key from PEM
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(b)
}

// ========== Token Generators ==========

func GenerateUserToken(user models.UserAccount, privateKey *rsa.PrivateKey, ttl time.Duration) (string, error) {
	return generateUserTokenTyped(user, privateKey, ttl, "access")
}

func GenerateUserRefreshToken(user models.UserAccount, privateKey *rsa.PrivateKey, ttl time.Duration) (string, error) {
	return generateUserTokenTyped(user, privateKey, ttl, "refresh")
}

func generateUserTokenTyped(user models.UserAccount, privateKey *rsa.PrivateKey, ttl time.Duration, typ string) (string, error) {
	claims := &UserClaims{
		UserID:    user.UserID,
		Role:      user.Role,
		Zone:      user.Zone,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(privateKey)
}

// ========== Token Parsers ==========

func ParseUserToken(tokenStr string, publicKey *rsa.PublicKey) (*UserClaims, error) {
	return parseUserTokenTyped(tokenStr, publicKey, "access")
}

func ParseUserRefreshToken(tokenStr string, publicKey *rsa.PublicKey) (*UserClaims, error) {
	return parseUserTokenTyped(tokenStr, publicKey, "refresh")
}

func parseUserTokenTyped(tokenStr string, publicKey *rsa.PublicKey, wantType string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, jwt.ErrTokenExpired
	}
	if claims.TokenType != wantType {
		return nil, errors.New("token type mismatch")
	}
	return claims, nil
}
