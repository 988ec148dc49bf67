package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
)

// User usuario de la aplicación (autenticación JWT).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}
