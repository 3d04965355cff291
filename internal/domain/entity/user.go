package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User representa un empleado que refiere candidatos (o un admin que los revisa).
// Earning es una proyección cacheada del Lead Ledger: nunca se parchea con deltas,
// siempre se recalcula con earning.Aggregate sobre todos sus leads.
type User struct {
	ID           string
	Email        string
	Name         string
	EmployeeID   string
	PasswordHash string          // bcrypt hash, nunca plano en dominio después de persistir
	Role         string          // standard, admin
	Earning      int64           // créditos (cache derivado)
	Payout       decimal.Decimal // Earning × valor del crédito al último recálculo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario puede revisar leads y transicionar estados.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Actor identidad del usuario autenticado que ejecuta una operación.
// La provee el middleware de auth; el core nunca re-autentica.
type Actor struct {
	UserID  string
	Email   string
	IsAdmin bool
}
