package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims содержимое access токена
type UserClaims struct {
	jwt.RegisteredClaims
	// Dev разрешает ставки с подменой вероятности
	Dev bool `json:"dev,omitempty"`
}
