package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, owner_id, COALESCE(candidate_id, ''), name, mobile, email, degree, course, college,
	year_of_passing, resume_ref, is_duplicate, is_eligible, eligibility_reason, status, created_at, updated_at`

// LeadRepo implementación de LeadRepository sobre PostgreSQL (usable con pool o tx).
// Los leads nunca se borran: el ledger completo es la fuente de las ganancias.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de leads. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Insert persiste el lead y devuelve el id generado (BIGSERIAL).
func (r *LeadRepo) Insert(ctx context.Context, lead *entity.Lead) (int64, error) {
	query := `
		INSERT INTO leads (owner_id, candidate_id, name, mobile, email, degree, course, college,
			year_of_passing, resume_ref, is_duplicate, is_eligible, eligibility_reason, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		lead.OwnerID, lead.CandidateID, lead.Name, lead.Mobile, lead.Email, lead.Degree, lead.Course,
		lead.College, lead.YearOfPassing, lead.ResumeRef, lead.IsDuplicate, lead.IsEligible,
		lead.EligibilityReason, string(lead.Status), lead.CreatedAt, lead.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, persistenceErr("insert lead", err)
	}
	return id, nil
}

// GetByID obtiene un lead por id. nil, nil si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id int64) (*entity.Lead, error) {
	return r.getOne(ctx, "get lead by id", `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
}

// GetForUpdate obtiene el lead y bloquea la fila para update (SELECT FOR UPDATE).
func (r *LeadRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Lead, error) {
	return r.getOne(ctx, "get lead for update", `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus cambia solo el estado; is_duplicate e is_eligible no se tocan.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id int64, status entity.LeadStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return persistenceErr("update lead status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// FindByContact leads de cualquier usuario con el mismo email o móvil (ya normalizados).
func (r *LeadRepo) FindByContact(ctx context.Context, email, mobile string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND mobile = $2)
		ORDER BY id`
	return r.list(ctx, "find leads by contact", query, email, mobile)
}

// LockContact toma un advisory lock de transacción por clave (se libera en Commit/Rollback).
// Las claves se ordenan para que dos transacciones nunca las pidan en orden inverso.
func (r *LeadRepo) LockContact(ctx context.Context, keys ...string) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, k); err != nil {
			return persistenceErr("lock contact", err)
		}
	}
	return nil
}

// ListAllByOwner todos los leads del usuario (recálculo de ganancias).
func (r *LeadRepo) ListAllByOwner(ctx context.Context, ownerID string) ([]*entity.Lead, error) {
	return r.list(ctx, "list leads by owner", `SELECT `+leadColumns+` FROM leads WHERE owner_id = $1 ORDER BY id DESC`, ownerID)
}

// ListByOwner página de leads del usuario (id DESC) y el total.
func (r *LeadRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Lead, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, persistenceErr("count leads by owner", err)
	}
	list, err := r.list(ctx, "list leads by owner",
		`SELECT `+leadColumns+` FROM leads WHERE owner_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll página de todos los leads (id DESC) y el total.
func (r *LeadRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Lead, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return nil, 0, persistenceErr("count leads", err)
	}
	list, err := r.list(ctx, "list leads",
		`SELECT `+leadColumns+` FROM leads ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountByOwner cantidad de leads por usuario, de mayor a menor (usuarios sin leads no aparecen).
func (r *LeadRepo) CountByOwner(ctx context.Context) ([]repository.OwnerLeadCount, error) {
	query := `
		SELECT u.id, u.name, u.email, COUNT(l.id) AS lead_count
		FROM leads l
		JOIN users u ON u.id = l.owner_id
		GROUP BY u.id, u.name, u.email
		ORDER BY lead_count DESC, u.email`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, persistenceErr("count leads by owner", err)
	}
	defer rows.Close()
	var out []repository.OwnerLeadCount
	for rows.Next() {
		var c repository.OwnerLeadCount
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &c.LeadCount); err != nil {
			return nil, persistenceErr("scan lead count", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("count leads by owner", err)
	}
	return out, nil
}

func (r *LeadRepo) getOne(ctx context.Context, op, query string, id int64) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceErr(op, err)
	}
	return l, nil
}

func (r *LeadRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr(op, err)
	}
	defer rows.Close()
	var out []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, persistenceErr(op, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr(op, err)
	}
	return out, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		l      entity.Lead
		status string
	)
	if err := row.Scan(
		&l.ID, &l.OwnerID, &l.CandidateID, &l.Name, &l.Mobile, &l.Email, &l.Degree, &l.Course, &l.College,
		&l.YearOfPassing, &l.ResumeRef, &l.IsDuplicate, &l.IsEligible, &l.EligibilityReason, &status,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	return &l, nil
}
