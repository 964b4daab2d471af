package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	ActorID int64
	Role    enums.ActorRole
	// Nome carries the admin username or the customer display name.
	Nome string
	JTI  string
}

// AccessTokenClaims represents the typed JWT issued to admin and customer
// callers. The role claim is what keeps the two surfaces apart: an admin
// middleware rejects customer tokens and vice versa.
type AccessTokenClaims struct {
	ActorID int64           `json:"actor_id"`
	Role    enums.ActorRole `json:"role"`
	Nome    string          `json:"nome,omitempty"`
	jwt.RegisteredClaims
}
