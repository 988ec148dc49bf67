package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDuplicateComponent = errors.New("componente duplicado en la fórmula")
	ErrNoRecipe           = errors.New("el producto no tiene receta de producción")
)
