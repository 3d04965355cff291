package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para los tests de handlers. txMu serializa RunLedger y dataMu
// protege los mapas en cada operación (sin rollback: los handlers no lo necesitan).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	txMu   sync.Mutex
	dataMu sync.Mutex
	users  map[string]*entity.User
	leads  map[int64]*entity.Lead
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*entity.User{}, leads: map[int64]*entity.Lead{}}
}

func (s *memStore) RunLedger(_ context.Context, fn func(repository.LeadRepository, repository.UserRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s, userRepo{s})
}

// ── LeadRepository ───────────────────────────────────────────────────────────

func (s *memStore) Insert(_ context.Context, l *entity.Lead) (int64, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.nextID++
	cp := *l
	cp.ID = s.nextID
	s.leads[cp.ID] = &cp
	return cp.ID, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*entity.Lead, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if l, ok := s.leads[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) GetForUpdate(ctx context.Context, id int64) (*entity.Lead, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateStatus(_ context.Context, id int64, status entity.LeadStatus) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return domain.ErrLeadNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) FindByContact(_ context.Context, email, mobile string) ([]*entity.Lead, error) {
	return s.filter(func(l *entity.Lead) bool {
		return (email != "" && l.Email == email) || (mobile != "" && l.Mobile == mobile)
	}), nil
}

func (s *memStore) LockContact(context.Context, ...string) error { return nil }

func (s *memStore) ListAllByOwner(_ context.Context, ownerID string) ([]*entity.Lead, error) {
	return s.filter(func(l *entity.Lead) bool { return l.OwnerID == ownerID }), nil
}

func (s *memStore) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Lead, int, error) {
	all := s.filter(func(l *entity.Lead) bool { return l.OwnerID == ownerID })
	return paginate(all, limit, offset), len(all), nil
}

func (s *memStore) ListAll(_ context.Context, limit, offset int) ([]*entity.Lead, int, error) {
	all := s.filter(func(*entity.Lead) bool { return true })
	return paginate(all, limit, offset), len(all), nil
}

func (s *memStore) CountByOwner(context.Context) ([]repository.OwnerLeadCount, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	counts := map[string]int{}
	for _, l := range s.leads {
		counts[l.OwnerID]++
	}
	out := make([]repository.OwnerLeadCount, 0, len(counts))
	for id, n := range counts {
		u := s.users[id]
		out = append(out, repository.OwnerLeadCount{UserID: id, Name: u.Name, Email: u.Email, LeadCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LeadCount != out[j].LeadCount {
			return out[i].LeadCount > out[j].LeadCount
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

// filter devuelve copias ordenadas por id DESC.
func (s *memStore) filter(keep func(*entity.Lead) bool) []*entity.Lead {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	var out []*entity.Lead
	for _, l := range s.leads {
		if keep(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func paginate(list []*entity.Lead, limit, offset int) []*entity.Lead {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── UserRepository ───────────────────────────────────────────────────────────

type userRepo struct{ s *memStore }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r userRepo) UpdateEarning(_ context.Context, id string, earning int64, payout decimal.Decimal) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Earning = earning
	u.Payout = payout
	return nil
}

func (r userRepo) UpdateRole(_ context.Context, id, role string) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r userRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
