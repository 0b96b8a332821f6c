package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub  string    `json:"sub"` // admin username
	Role string    `json:"role"`
	Iat  time.Time `json:"iat"`
	Exp  time.Time `json:"exp"`
	Jti  uuid.UUID `json:"jti"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}
