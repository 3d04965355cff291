package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/domain"
)

// Errores de los colaboradores externos. Ambos envuelven domain.ErrDependency:
// el core los trata como "sin señal" y no aborta la operación.
var (
	ErrExtractionFailed   = fmt.Errorf("%w: extracción del documento", domain.ErrDependency)
	ErrStorageUnavailable = fmt.Errorf("%w: almacenamiento no disponible", domain.ErrDependency)
)

// DocumentExtractor lee el documento referenciado y reporta si menciona la calificación
// requerida por el programa. Falla con ErrExtractionFailed.
type DocumentExtractor interface {
	HasQualification(ctx context.Context, ref string) (bool, error)
}

// BlobStorage guarda los CVs y devuelve una referencia opaca; el core nunca guarda bytes.
// Falla con ErrStorageUnavailable.
type BlobStorage interface {
	Put(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// LeaderboardCache cache del ranking público. ok es false si no hay entrada vigente.
// Cada Invalidate incrementa la generación; SetIfGeneration descarta un ranking calculado
// antes de la última invalidación (stored=false).
type LeaderboardCache interface {
	Get(ctx context.Context) (entries []dto.LeaderboardEntry, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	SetIfGeneration(ctx context.Context, generation int64, entries []dto.LeaderboardEntry) (stored bool, err error)
	Invalidate(ctx context.Context) error
}

// StatementGenerator genera el PDF del estado de ganancias de un empleado.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, statement *dto.EarningBreakdownResponse) ([]byte, error)
}

// LeadMetrics contadores del ledger (Prometheus en producción, Nop en tests).
type LeadMetrics interface {
	LeadSubmitted(eligible, duplicate bool)
	StatusTransitioned(from, to string)
	EarningRecomputed(start time.Time)
	DependencyFailed(dependency string)
}

// NopMetrics implementación vacía de LeadMetrics.
type NopMetrics struct{}

func (NopMetrics) LeadSubmitted(bool, bool)          {}
func (NopMetrics) StatusTransitioned(string, string) {}
func (NopMetrics) EarningRecomputed(time.Time)       {}
func (NopMetrics) DependencyFailed(string)           {}
