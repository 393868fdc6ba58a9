package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims represents service token custom claims
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}
