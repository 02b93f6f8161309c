package transfer

import "github.com/golang-jwt/jwt/v5"

// CustomClaims is the session payload carried in the auth cookie. UserID is
// the local account id, not the Google subject.
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
