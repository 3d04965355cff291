// Package transition valida los cambios de estado de un lead.
package transition

import (
	"fmt"
	"strings"

	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// Policy regla de re-entrada entre estados.
type Policy string

const (
	// Permissive acepta cualquier estado destino reconocido: como las ganancias se
	// recalculan siempre desde el ledger completo, el resultado es correcto igual.
	Permissive Policy = "permissive"
	// Strict solo avanza en el pipeline (se permite saltar etapas), rejected desde
	// cualquier estado no terminal, y joined/rejected no cambian a otro estado.
	Strict Policy = "strict"
)

// ParsePolicy valida el valor de configuración. Vacío equivale a Permissive.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Permissive, nil
	case Permissive, Strict:
		return p, nil
	}
	return "", fmt.Errorf("política de transición desconocida %q (permissive|strict)", s)
}

// ParseTarget valida el estado destino: review, shortlisted, joined o rejected.
// submitted no es un destino (solo se asigna al crear el lead).
func ParseTarget(s string) (entity.LeadStatus, error) {
	st, ok := entity.ParseStatus(s)
	if !ok || st == entity.StatusSubmitted {
		return "", domain.ErrInvalidState
	}
	return st, nil
}

// Check decide si current → target está permitido bajo la política.
// Reaplicar el estado actual siempre es válido (no-op idempotente).
func (p Policy) Check(current, target entity.LeadStatus) error {
	if p != Strict {
		return nil
	}
	cur, _ := entity.ParseStatus(string(current))
	if cur == target {
		return nil
	}
	if cur.IsTerminal() {
		return fmt.Errorf("%w: el lead ya está en estado terminal %q", domain.ErrConflict, cur)
	}
	if target == entity.StatusRejected {
		return nil
	}
	if target.Rank() > cur.Rank() {
		return nil
	}
	return fmt.Errorf("%w: no se permite retroceder de %q a %q", domain.ErrConflict, cur, target)
}
