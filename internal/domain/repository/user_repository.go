package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetForUpdate obtiene el usuario y bloquea la fila; serializa las escrituras del cache de ganancias.
	GetForUpdate(ctx context.Context, id string) (*entity.User, error)
	// UpdateEarning escribe el cache de créditos y el monto a pagar derivado.
	UpdateEarning(ctx context.Context, id string, earning int64, payout decimal.Decimal) error
	UpdateRole(ctx context.Context, id, role string) error
	// ListByRole lista usuarios de un rol (ej. todos los standard para el reporte de ganancias).
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}
