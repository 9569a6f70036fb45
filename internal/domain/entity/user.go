package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner     = "owner"
	RoleAssistant = "assistant"
)

// User representa un operador del punto de venta.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"` // bcrypt hash, nunca plano después de persistir
	PIN          string    `json:"pin,omitempty"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`   // owner, assistant
	Status       string    `json:"status"` // active, inactive
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
