package authUtils

import (
	"fmt"
	"time"

	"civicsync/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 72 * time.Hour

// GenerateAndSetToken generates a JWT token for a demo user
func GenerateAndSetToken(user models.DemoUser, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.Email,
		"user_type": string(user.Type),
		"name":      user.Name,
		"exp":       time.Now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
