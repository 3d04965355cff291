package leads

import (
	"context"
	"fmt"

	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// StatementUseCase genera el estado de ganancias en PDF del usuario autenticado.
type StatementUseCase struct {
	earnings  *EarningsUseCase
	generator ports.StatementGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(earnings *EarningsUseCase, generator ports.StatementGenerator) *StatementUseCase {
	return &StatementUseCase{earnings: earnings, generator: generator}
}

// Statement recalcula el desglose del actor y lo renderiza. Devuelve bytes del PDF y nombre sugerido.
func (uc *StatementUseCase) Statement(ctx context.Context, actor entity.Actor) ([]byte, string, error) {
	breakdown, err := uc.earnings.Breakdown(ctx, actor.UserID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStatement(ctx, breakdown)
	if err != nil {
		return nil, "", fmt.Errorf("generar estado de ganancias: %w", err)
	}
	name := "estado-ganancias.pdf"
	if breakdown.EmployeeID != "" {
		name = fmt.Sprintf("estado-ganancias-%s.pdf", breakdown.EmployeeID)
	}
	return pdf, name, nil
}
