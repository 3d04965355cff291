package repository

import (
	"context"

	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia del Lead Ledger.
// Usado dentro de transacciones (TxRunner) para las mutaciones.
type LeadRepository interface {
	Insert(ctx context.Context, lead *entity.Lead) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Lead, error)
	// GetForUpdate obtiene el lead y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status entity.LeadStatus) error
	// FindByContact devuelve los leads (de cualquier usuario) con el mismo email o mobile.
	FindByContact(ctx context.Context, email, mobile string) ([]*entity.Lead, error)
	// LockContact toma locks de transacción sobre las claves de contacto para que la
	// detección de duplicados no compita con otra inserción concurrente.
	LockContact(ctx context.Context, keys ...string) error
	// ListAllByOwner devuelve todos los leads del usuario (para recalcular ganancias).
	ListAllByOwner(ctx context.Context, ownerID string) ([]*entity.Lead, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Lead, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Lead, int, error)
	// CountByOwner lead count por usuario (leaderboard), ordenado de mayor a menor.
	CountByOwner(ctx context.Context) ([]OwnerLeadCount, error)
}

// OwnerLeadCount fila del leaderboard.
type OwnerLeadCount struct {
	UserID    string
	Name      string
	Email     string
	LeadCount int
}
