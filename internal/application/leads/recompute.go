package leads

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/earning"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

// recomputed resultado de recomputeOwner.
type recomputed struct {
	Owner          *entity.User
	Leads          []*entity.Lead
	Summary        earning.Summary
	Payout         decimal.Decimal
	Previous       int64
	PreviousPayout decimal.Decimal
}

// Changed indica si el cache persistido difería del recálculo. Un cambio del valor del
// crédito deja los créditos iguales pero el monto desactualizado.
func (r recomputed) Changed() bool {
	return r.Previous != r.Summary.Final || !r.PreviousPayout.Equal(r.Payout)
}

// recomputeOwner bloquea la fila del dueño (SELECT FOR UPDATE), relee todos sus leads
// y persiste Aggregate(leads).Final junto con su monto a creditValue. Debe correr dentro de RunLedger: el bloqueo serializa
// los recálculos concurrentes del mismo usuario y cada uno lee el ledger completo.
func recomputeOwner(
	ctx context.Context,
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	ownerID string,
	creditValue decimal.Decimal,
) (recomputed, error) {
	owner, err := userRepo.GetForUpdate(ctx, ownerID)
	if err != nil {
		return recomputed{}, err
	}
	if owner == nil {
		return recomputed{}, domain.ErrUserNotFound
	}
	all, err := leadRepo.ListAllByOwner(ctx, ownerID)
	if err != nil {
		return recomputed{}, err
	}
	summary := earning.Aggregate(all)
	payout := earning.Payout(summary.Final, creditValue)
	if err := userRepo.UpdateEarning(ctx, ownerID, summary.Final, payout); err != nil {
		return recomputed{}, err
	}
	out := recomputed{
		Owner:          owner,
		Leads:          all,
		Summary:        summary,
		Payout:         payout,
		Previous:       owner.Earning,
		PreviousPayout: owner.Payout,
	}
	owner.Earning = summary.Final
	owner.Payout = payout
	return out, nil
}
