package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los resultados de negocio (no elegible, duplicado marcado, rechazado) NO son errores;
// solo las fallas de validación, autorización, estado o infraestructura usan este canal.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("estado de lead no reconocido")
	ErrDependency         = errors.New("falla de un servicio colaborador")
	ErrPersistence        = errors.New("falla de persistencia")
)

// Variantes de ErrNotFound por entidad: errors.Is(ErrLeadNotFound, ErrNotFound) es verdadero.
var (
	ErrUserNotFound = fmt.Errorf("usuario: %w", ErrNotFound)
	ErrLeadNotFound = fmt.Errorf("lead: %w", ErrNotFound)
)

// ValidationError entrada inválida con el detalle de qué campo falló.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Is permite comparar con ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError lead duplicado rechazado; Field indica el dato que colisionó (mobile, email).
// errors.Is(err, ErrConflict) y errors.Is(err, ErrDuplicate) son verdaderos.
type ConflictError struct {
	Field  string
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// Is permite comparar con ErrConflict y ErrDuplicate.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict || target == ErrDuplicate
}
