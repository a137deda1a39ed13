package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"medbuddy/config"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret)
}

// GenerateAdminToken creates a signed JWT for the clinic admin.
// The token expires after the specified duration.
func GenerateAdminToken(duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IsAdminToken validates a token string and checks the admin claim.
func IsAdminToken(tokenString string) (bool, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return false, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return false, errors.New("invalid token")
	}
	admin, ok := claims["admin"].(bool)
	if !ok || !admin {
		return false, errors.New("token does not carry the admin claim")
	}
	return true, nil
}
