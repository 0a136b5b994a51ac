package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	OperatorID string `json:"operator_id"`
	jwt.RegisteredClaims
}
