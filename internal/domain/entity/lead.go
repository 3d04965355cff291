package entity

import (
	"strings"
	"time"
)

// LeadStatus etapa del ciclo de vida de un lead; determina cuánto aporta a las ganancias.
type LeadStatus string

// Estados válidos (conjunto fijo y ordenado).
const (
	StatusSubmitted   LeadStatus = "submitted"
	StatusReview      LeadStatus = "review"
	StatusShortlisted LeadStatus = "shortlisted"
	StatusJoined      LeadStatus = "joined"
	StatusRejected    LeadStatus = "rejected"
)

// Etiquetas heredadas de los datos históricos (antes de normalizar los estados).
var legacyStatusLabels = map[string]LeadStatus{
	"qualified lead": StatusSubmitted,
	"review stage":   StatusReview,
}

// ParseStatus normaliza un estado (mayúsculas/espacios) y acepta las etiquetas heredadas.
// ok es false si el valor no corresponde a ningún estado conocido.
func ParseStatus(s string) (LeadStatus, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch st := LeadStatus(key); st {
	case StatusSubmitted, StatusReview, StatusShortlisted, StatusJoined, StatusRejected:
		return st, true
	}
	if st, ok := legacyStatusLabels[key]; ok {
		return st, true
	}
	return "", false
}

// IsTerminal indica si el estado no admite transiciones a otro estado distinto.
func (s LeadStatus) IsTerminal() bool {
	return s == StatusJoined || s == StatusRejected
}

// Rank posición en el pipeline submitted → review → shortlisted → joined.
// rejected y desconocidos devuelven -1 (fuera del orden lineal).
func (s LeadStatus) Rank() int {
	switch s {
	case StatusSubmitted:
		return 0
	case StatusReview:
		return 1
	case StatusShortlisted:
		return 2
	case StatusJoined:
		return 3
	}
	return -1
}

// Lead candidato referido por un usuario.
// IsDuplicate e IsEligible se fijan al crear el lead y las transiciones nunca los modifican.
type Lead struct {
	ID                int64
	OwnerID           string // User.ID del que lo refirió
	CandidateID       string // id externo opcional del candidato
	Name              string
	Mobile            string
	Email             string
	Degree            string
	Course            string
	College           string
	YearOfPassing     string
	ResumeRef         *string // referencia opaca al documento en el blob storage
	IsDuplicate       bool
	IsEligible        bool
	EligibilityReason string // motivo cuando no es elegible o la señal del CV no se resolvió
	Status            LeadStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
