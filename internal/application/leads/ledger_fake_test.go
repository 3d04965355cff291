package leads_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DheemanKumar/lead-manager/internal/application/leads"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ledger en memoria: RunLedger serializa las transacciones con un mutex y
// restaura el estado previo si fn devuelve error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

var errInjected = errors.New("falla inyectada")

type memLedger struct {
	mu     sync.Mutex
	leads  map[int64]*entity.Lead
	users  map[string]*entity.User
	nextID int64

	failUpdateEarning  error
	updateEarningCalls int
	lockedKeys         []string
}

var _ leads.LedgerTxRunner = (*memLedger)(nil)

func newMemLedger(users ...*entity.User) *memLedger {
	m := &memLedger{leads: map[int64]*entity.Lead{}, users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		m.users[u.ID] = &cp
	}
	return m
}

func (m *memLedger) RunLedger(ctx context.Context, fn func(repository.LeadRepository, repository.UserRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	leadsSnap, usersSnap, nextSnap := m.snapshot()
	if err := fn(&memLeadRepo{m: m, inTx: true}, &memUserRepo{m: m, inTx: true}); err != nil {
		m.leads, m.users, m.nextID = leadsSnap, usersSnap, nextSnap
		return err
	}
	return nil
}

func (m *memLedger) snapshot() (map[int64]*entity.Lead, map[string]*entity.User, int64) {
	ls := make(map[int64]*entity.Lead, len(m.leads))
	for id, l := range m.leads {
		cp := *l
		ls[id] = &cp
	}
	us := make(map[string]*entity.User, len(m.users))
	for id, u := range m.users {
		cp := *u
		us[id] = &cp
	}
	return ls, us, m.nextID
}

// LeadRepo / UserRepo repos fuera de transacción (lecturas de dashboard y leaderboard).
func (m *memLedger) LeadRepo() repository.LeadRepository { return &memLeadRepo{m: m} }
func (m *memLedger) UserRepo() repository.UserRepository { return &memUserRepo{m: m} }

// seedLead inserta un lead directamente (fixture) y devuelve su id.
func (m *memLedger) seedLead(l entity.Lead) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l.ID = m.nextID
	if l.Status == "" {
		l.Status = entity.StatusSubmitted
	}
	m.leads[l.ID] = &l
	return l.ID
}

func (m *memLedger) lead(id int64) *entity.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil
	}
	cp := *l
	return &cp
}

func (m *memLedger) earningOf(userID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].Earning
}

func (m *memLedger) payoutOf(userID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].Payout
}

func (m *memLedger) leadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leads)
}

func (m *memLedger) ownerLeads(ownerID string) []*entity.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byOwner(ownerID)
}

func (m *memLedger) byOwner(ownerID string) []*entity.Lead {
	var out []*entity.Lead
	for _, l := range m.sortedLeads() {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out
}

// sortedLeads copia de todos los leads ordenados por id DESC.
func (m *memLedger) sortedLeads() []*entity.Lead {
	out := make([]*entity.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// ── LeadRepository ───────────────────────────────────────────────────────────

type memLeadRepo struct {
	m    *memLedger
	inTx bool
}

func (r *memLeadRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.m.mu.Lock()
	return r.m.mu.Unlock
}

func (r *memLeadRepo) Insert(_ context.Context, lead *entity.Lead) (int64, error) {
	defer r.lock()()
	r.m.nextID++
	cp := *lead
	cp.ID = r.m.nextID
	r.m.leads[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id int64) (*entity.Lead, error) {
	defer r.lock()()
	l, ok := r.m.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLeadRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r *memLeadRepo) UpdateStatus(_ context.Context, id int64, status entity.LeadStatus) error {
	defer r.lock()()
	l, ok := r.m.leads[id]
	if !ok {
		return fmt.Errorf("update lead status: lead %d inexistente", id)
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (r *memLeadRepo) FindByContact(_ context.Context, email, mobile string) ([]*entity.Lead, error) {
	defer r.lock()()
	var out []*entity.Lead
	for _, l := range r.m.sortedLeads() {
		if (email != "" && l.Email == email) || (mobile != "" && l.Mobile == mobile) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLeadRepo) LockContact(_ context.Context, keys ...string) error {
	defer r.lock()()
	r.m.lockedKeys = append(r.m.lockedKeys, keys...)
	return nil
}

func (r *memLeadRepo) ListAllByOwner(_ context.Context, ownerID string) ([]*entity.Lead, error) {
	defer r.lock()()
	return r.m.byOwner(ownerID), nil
}

func (r *memLeadRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Lead, int, error) {
	defer r.lock()()
	all := r.m.byOwner(ownerID)
	return paginate(all, limit, offset), len(all), nil
}

func (r *memLeadRepo) ListAll(_ context.Context, limit, offset int) ([]*entity.Lead, int, error) {
	defer r.lock()()
	all := r.m.sortedLeads()
	return paginate(all, limit, offset), len(all), nil
}

func (r *memLeadRepo) CountByOwner(_ context.Context) ([]repository.OwnerLeadCount, error) {
	defer r.lock()()
	counts := map[string]int{}
	for _, l := range r.m.leads {
		counts[l.OwnerID]++
	}
	out := make([]repository.OwnerLeadCount, 0, len(counts))
	for id, n := range counts {
		u := r.m.users[id]
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

func paginate(all []*entity.Lead, limit, offset int) []*entity.Lead {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ── UserRepository ───────────────────────────────────────────────────────────

type memUserRepo struct {
	m    *memLedger
	inTx bool
}

func (r *memUserRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.m.mu.Lock()
	return r.m.mu.Unlock
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.lock()()
	cp := *user
	r.m.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *memUserRepo) UpdateEarning(_ context.Context, id string, earning int64, payout decimal.Decimal) error {
	defer r.lock()()
	r.m.updateEarningCalls++
	if r.m.failUpdateEarning != nil {
		return r.m.failUpdateEarning
	}
	u, ok := r.m.users[id]
	if !ok {
		return fmt.Errorf("update earning: usuario %s inexistente", id)
	}
	u.Earning = earning
	u.Payout = payout
	return nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id, role string) error {
	defer r.lock()()
	u, ok := r.m.users[id]
	if !ok {
		return fmt.Errorf("update role: usuario %s inexistente", id)
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	defer r.lock()()
	var out []*entity.User
	for _, u := range r.m.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// ── fixtures ─────────────────────────────────────────────────────────────────

const (
	aliceID = "00000000-0000-0000-0000-00000000000a"
	bobID   = "00000000-0000-0000-0000-00000000000b"
	adminID = "00000000-0000-0000-0000-0000000000ad"
)

func testUsers() []*entity.User {
	return []*entity.User{
		{ID: aliceID, Email: "alice@corp.test", Name: "Alice", EmployeeID: "E-001", Role: entity.RoleStandard},
		{ID: bobID, Email: "bob@corp.test", Name: "Bob", EmployeeID: "E-002", Role: entity.RoleStandard},
		{ID: adminID, Email: "admin@corp.test", Name: "Admin", Role: entity.RoleAdmin},
	}
}

func actorFor(id string) entity.Actor {
	for _, u := range testUsers() {
		if u.ID == id {
			return entity.Actor{UserID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin()}
		}
	}
	return entity.Actor{UserID: id}
}
