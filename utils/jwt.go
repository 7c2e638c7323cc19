package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is the identity carried by a signed token.
type TokenClaims struct {
	Subject string
	Email   string
	Name    string
	Role    string
	Kind    string
}

// GenerateToken creates a signed HS256 JWT for the claims that expires after duration.
func GenerateToken(secret []byte, c TokenClaims, issuedAt time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   c.Subject,
		"email": c.Email,
		"name":  c.Name,
		"role":  c.Role,
		"kind":  c.Kind,
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(secret []byte, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	out := &TokenClaims{Subject: sub}
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	out.Role, _ = claims["role"].(string)
	out.Kind, _ = claims["kind"].(string)
	return out, nil
}
