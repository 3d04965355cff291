package leads

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
	"github.com/DheemanKumar/lead-manager/internal/domain/transition"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

// TransitionStatusUseCase cambia el estado de un lead (solo admin) y recalcula las
// ganancias del dueño en la misma transacción.
type TransitionStatusUseCase struct {
	txRunner    LedgerTxRunner
	policy      transition.Policy
	creditValue decimal.Decimal
	metrics     ports.LeadMetrics
	log         *logger.Logger
}

// NewTransitionStatusUseCase construye el caso de uso.
func NewTransitionStatusUseCase(
	txRunner LedgerTxRunner,
	policy transition.Policy,
	creditValue decimal.Decimal,
	metrics ports.LeadMetrics,
	log *logger.Logger,
) *TransitionStatusUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TransitionStatusUseCase{
		txRunner:    txRunner,
		policy:      policy,
		creditValue: creditValue,
		metrics:     metrics,
		log:         log.Component("leads"),
	}
}

// TransitionStatus aplica leadID → target.
//
// Errores: ErrForbidden si el actor no es admin (antes de tocar la DB), ErrInvalidState si
// target no es review|shortlisted|joined|rejected, ErrLeadNotFound si el lead no existe,
// ErrConflict si la política estricta no admite el cambio. Reaplicar el estado actual es
// un no-op que igualmente recalcula (idempotente).
func (uc *TransitionStatusUseCase) TransitionStatus(ctx context.Context, actor entity.Actor, leadID int64, target string) (_ *dto.TransitionResponse, err error) {
	ctx, span := tracer.Start(ctx, "leads.TransitionStatus")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("lead.id", leadID), attribute.String("lead.target_status", target))

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	status, err := transition.ParseTarget(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, target)
	}

	var (
		previous entity.LeadStatus
		ownerID  string
		result   recomputed
	)
	err = uc.txRunner.RunLedger(ctx, func(leadRepo repository.LeadRepository, userRepo repository.UserRepository) error {
		lead, err := leadRepo.GetForUpdate(ctx, leadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.ErrLeadNotFound
		}
		previous, ownerID = lead.Status, lead.OwnerID
		if err := uc.policy.Check(lead.Status, status); err != nil {
			return err
		}
		if lead.Status != status {
			if err := leadRepo.UpdateStatus(ctx, leadID, status); err != nil {
				return err
			}
		}
		result, err = recomputeOwner(ctx, leadRepo, userRepo, lead.OwnerID, uc.creditValue)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.StatusTransitioned(string(previous), string(status))
	uc.log.Info().
		Int64("lead_id", leadID).
		Str("actor", actor.Email).
		Str("from", string(previous)).
		Str("to", string(status)).
		Int64("owner_earning", result.Summary.Final).
		Msg("estado de lead actualizado")

	return &dto.TransitionResponse{
		LeadID:         leadID,
		PreviousStatus: string(previous),
		NewStatus:      string(status),
		OwnerID:        ownerID,
		OwnerEarning:   result.Summary.Final,
	}, nil
}
