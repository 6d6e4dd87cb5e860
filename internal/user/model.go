package user

import (
	"time"

	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	Role         identity.Role `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Patch holds the profile fields a user may change; nil means unchanged.
type Patch struct {
	Name         *string
	Phone        *string
	Address      *string
	PasswordHash *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil && p.PasswordHash == nil
}
