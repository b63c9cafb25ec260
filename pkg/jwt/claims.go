package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims identify a caller of the wager read API.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RolePlayer Role = "player"
)
