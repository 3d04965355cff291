package leads

import (
	"context"

	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

// LedgerTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Si fn devuelve error se hace Rollback: el lead/estado y el cache de
// ganancias del dueño se confirman juntos o no se confirman.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		userRepo repository.UserRepository,
	) error) error
}

// DuplicatePolicy qué hacer cuando el contacto ya existe en otro lead.
type DuplicatePolicy string

const (
	// DuplicateFlag inserta el lead con is_duplicate=true.
	DuplicateFlag DuplicatePolicy = "flag"
	// DuplicateReject rechaza la inserción con un ConflictError.
	DuplicateReject DuplicatePolicy = "reject"
)
