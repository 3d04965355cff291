package leads

import (
	"context"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/earning"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

// DashboardUseCase consultas de solo lectura sobre el ledger (orden: id DESC).
type DashboardUseCase struct {
	leadRepo repository.LeadRepository
	userRepo repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(leadRepo repository.LeadRepository, userRepo repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{leadRepo: leadRepo, userRepo: userRepo}
}

// OwnerDashboard datos del usuario, sus leads paginados y el resumen de ganancias.
func (uc *DashboardUseCase) OwnerDashboard(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.OwnerDashboardResponse, error) {
	page.Normalize()
	user, err := uc.currentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.leadRepo.ListByOwner(ctx, user.ID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	all, err := uc.leadRepo.ListAllByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerDashboardResponse{
		User:       toUserResponse(user),
		Leads:      toLeadResponses(list),
		Pagination: dto.NewPageResponse(page, total),
		Earning:    toEarningSummary(earning.Aggregate(all)),
	}, nil
}

// ListAllLeads todos los leads de todos los usuarios (solo admin).
func (uc *DashboardUseCase) ListAllLeads(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.LeadPageResponse, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	page.Normalize()
	list, total, err := uc.leadRepo.ListAll(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.LeadPageResponse{
		Items:      toLeadResponses(list),
		Pagination: dto.NewPageResponse(page, total),
	}, nil
}

// AdminDashboard datos del admin y la primera vista de todos los leads (solo admin).
func (uc *DashboardUseCase) AdminDashboard(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.AdminDashboardResponse, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.currentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	leads, err := uc.ListAllLeads(ctx, actor, page)
	if err != nil {
		return nil, err
	}
	return &dto.AdminDashboardResponse{
		User:       toUserResponse(user),
		Leads:      leads.Items,
		Pagination: leads.Pagination,
	}, nil
}

func (uc *DashboardUseCase) currentUser(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
