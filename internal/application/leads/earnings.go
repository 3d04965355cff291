package leads

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/earning"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

// recomputeConcurrency usuarios recalculados en paralelo por RecomputeAll.
const recomputeConcurrency = 4

// EarningsUseCase desglose, reporte y recálculo de ganancias.
type EarningsUseCase struct {
	txRunner    LedgerTxRunner
	userRepo    repository.UserRepository
	creditValue decimal.Decimal
	metrics     ports.LeadMetrics
	log         *logger.Logger
}

// NewEarningsUseCase construye el caso de uso. creditValue convierte créditos en monto a pagar.
func NewEarningsUseCase(
	txRunner LedgerTxRunner,
	userRepo repository.UserRepository,
	creditValue decimal.Decimal,
	metrics ports.LeadMetrics,
	log *logger.Logger,
) *EarningsUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EarningsUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		creditValue: creditValue,
		metrics:     metrics,
		log:         log.Component("earnings"),
	}
}

// Breakdown recalcula las ganancias del usuario (y las persiste) y devuelve el aporte de
// cada lead junto con total, bono, final y monto a pagar.
func (uc *EarningsUseCase) Breakdown(ctx context.Context, userID string) (_ *dto.EarningBreakdownResponse, err error) {
	ctx, span := tracer.Start(ctx, "earnings.Breakdown")
	defer func() { endSpan(span, err) }()

	result, err := uc.recompute(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary, rows := earning.Breakdown(result.Leads)
	out := &dto.EarningBreakdownResponse{
		UserID:         result.Owner.ID,
		Name:           result.Owner.Name,
		Email:          result.Owner.Email,
		EmployeeID:     result.Owner.EmployeeID,
		Leads:          make([]dto.LeadEarningRow, 0, len(rows)),
		EarningSummary: toEarningSummary(summary),
		Payout:         result.Payout,
	}
	for _, r := range rows {
		out.Leads = append(out.Leads, dto.LeadEarningRow{
			LeadID:      r.LeadID,
			Name:        r.Name,
			Status:      string(r.Status),
			IsEligible:  r.IsEligible,
			IsDuplicate: r.IsDuplicate,
			Credits:     r.Credits,
		})
	}
	return out, nil
}

// BreakdownByEmail igual que Breakdown pero buscando al usuario por email (CLI).
func (uc *EarningsUseCase) BreakdownByEmail(ctx context.Context, email string) (*dto.EarningBreakdownResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.Breakdown(ctx, user.ID)
}

// AllEmployeeEarnings reporte de ganancias de todos los empleados (solo admin).
// Lee créditos y monto persistidos; RecomputeAll los refresca.
func (uc *EarningsUseCase) AllEmployeeEarnings(ctx context.Context, actor entity.Actor) ([]dto.EmployeeEarning, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.ListByRole(ctx, entity.RoleStandard)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeEarning, 0, len(users))
	for _, u := range users {
		out = append(out, dto.EmployeeEarning{
			UserID:     u.ID,
			Name:       u.Name,
			Email:      u.Email,
			EmployeeID: u.EmployeeID,
			Earning:    u.Earning,
			Payout:     u.Payout,
		})
	}
	return out, nil
}

// RecomputeAll recalcula el cache de todos los empleados standard (solo admin).
// Cada usuario se recalcula en su propia transacción; el primer error cancela el resto.
func (uc *EarningsUseCase) RecomputeAll(ctx context.Context, actor entity.Actor) (_ *dto.RecomputeResponse, err error) {
	ctx, span := tracer.Start(ctx, "earnings.RecomputeAll")
	defer func() { endSpan(span, err) }()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.ListByRole(ctx, entity.RoleStandard)
	if err != nil {
		return nil, err
	}

	var changed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)
	for _, u := range users {
		u := u
		g.Go(func() error {
			result, err := uc.recompute(gctx, u.ID)
			if err != nil {
				return err
			}
			if result.Changed() {
				changed.Add(1)
				uc.log.Info().
					Str("user_id", u.ID).
					Int64("previous", result.Previous).
					Int64("earning", result.Summary.Final).
					Msg("cache de ganancias corregido")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("earnings.users", len(users)), attribute.Int64("earnings.changed", changed.Load()))
	uc.log.Info().Str("actor", actor.Email).Int("users", len(users)).Int64("changed", changed.Load()).Msg("recálculo de ganancias completado")
	return &dto.RecomputeResponse{Users: len(users), Changed: int(changed.Load())}, nil
}

// Recompute recalcula un único usuario y devuelve el resumen.
func (uc *EarningsUseCase) Recompute(ctx context.Context, userID string) (dto.EarningSummary, error) {
	result, err := uc.recompute(ctx, userID)
	if err != nil {
		return dto.EarningSummary{}, err
	}
	return toEarningSummary(result.Summary), nil
}

func (uc *EarningsUseCase) recompute(ctx context.Context, userID string) (recomputed, error) {
	start := time.Now()
	var result recomputed
	err := uc.txRunner.RunLedger(ctx, func(leadRepo repository.LeadRepository, userRepo repository.UserRepository) error {
		var err error
		result, err = recomputeOwner(ctx, leadRepo, userRepo, userID, uc.creditValue)
		return err
	})
	if err != nil {
		return recomputed{}, err
	}
	uc.metrics.EarningRecomputed(start)
	return result, nil
}
