package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
)

// signToken issues an HMAC access token carrying the user id and email.
func signToken(secret string, expireSeconds int64, user *store.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"iat":    now.Unix(),
		"exp":    now.Add(time.Duration(expireSeconds) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
