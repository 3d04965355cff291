// Package earning implementa el motor de reglas de ganancias (servicio de dominio puro).
//
// Tabla de créditos por lead:
//
//	submitted / review  → 50 si es elegible y no duplicado, 0 en otro caso
//	shortlisted         → 1000
//	joined              → 5000
//	rejected / otro     → 0
//
// Bono: 10000 por cada 5 leads en joined (división entera, sin crédito parcial).
package earning

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

const (
	QualifiedCredits   int64 = 50
	ShortlistedCredits int64 = 1000
	JoinedCredits      int64 = 5000

	BonusPerTier       int64 = 10000
	JoinedPerBonusTier int   = 5
)

// Summary resultado de Aggregate.
type Summary struct {
	Total       int64
	JoinedCount int
	Bonus       int64
	Final       int64
}

// LeadEarning aporte de un lead individual (para el desglose).
type LeadEarning struct {
	LeadID      int64
	Name        string
	Status      entity.LeadStatus
	IsEligible  bool
	IsDuplicate bool
	Credits     int64
}

// ValuePerLead créditos que aporta un lead según su estado y flags. El estado se compara
// sin distinguir mayúsculas; estados desconocidos valen 0.
func ValuePerLead(status entity.LeadStatus, isEligible, isDuplicate bool) int64 {
	st, ok := entity.ParseStatus(strings.TrimSpace(string(status)))
	if !ok {
		return 0
	}
	switch st {
	case entity.StatusSubmitted, entity.StatusReview:
		if isEligible && !isDuplicate {
			return QualifiedCredits
		}
		return 0
	case entity.StatusShortlisted:
		return ShortlistedCredits
	case entity.StatusJoined:
		return JoinedCredits
	}
	return 0
}

// BonusFor bono por tramos completos de joined.
func BonusFor(joinedCount int) int64 {
	if joinedCount <= 0 {
		return 0
	}
	return int64(joinedCount/JoinedPerBonusTier) * BonusPerTier
}

// Payout monto a pagar por los créditos: credits × creditValue redondeado a centavos,
// la misma escala que la columna users.payout.
func Payout(credits int64, creditValue decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(credits).Mul(creditValue).Round(2)
}

// Aggregate recalcula desde cero las ganancias de un conjunto de leads.
// Es idempotente e independiente del orden (suma conmutativa).
func Aggregate(leads []*entity.Lead) Summary {
	s, _ := Breakdown(leads)
	return s
}

// Breakdown igual que Aggregate pero devuelve además el aporte de cada lead, en el mismo orden.
func Breakdown(leads []*entity.Lead) (Summary, []LeadEarning) {
	var s Summary
	rows := make([]LeadEarning, 0, len(leads))
	for _, l := range leads {
		if l == nil {
			continue
		}
		credits := ValuePerLead(l.Status, l.IsEligible, l.IsDuplicate)
		if st, ok := entity.ParseStatus(string(l.Status)); ok && st == entity.StatusJoined {
			s.JoinedCount++
		}
		s.Total += credits
		rows = append(rows, LeadEarning{
			LeadID:      l.ID,
			Name:        l.Name,
			Status:      l.Status,
			IsEligible:  l.IsEligible,
			IsDuplicate: l.IsDuplicate,
			Credits:     credits,
		})
	}
	s.Bonus = BonusFor(s.JoinedCount)
	s.Final = s.Total + s.Bonus
	return s, rows
}
