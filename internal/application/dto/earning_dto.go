package dto

import "github.com/shopspring/decimal"

// EarningSummary total + bono + final de un usuario.
type EarningSummary struct {
	Total       int64 `json:"total"`
	JoinedCount int   `json:"joined_count"`
	Bonus       int64 `json:"bonus"`
	Final       int64 `json:"final"`
}

// LeadEarningRow aporte de un lead en el desglose.
type LeadEarningRow struct {
	LeadID      int64  `json:"lead_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	IsEligible  bool   `json:"is_eligible"`
	IsDuplicate bool   `json:"is_duplicate"`
	Credits     int64  `json:"credits"`
}

// EarningBreakdownResponse desglose de GET /api/earnings.
// Payout = Final × EARNING_CREDIT_VALUE.
type EarningBreakdownResponse struct {
	UserID     string           `json:"user_id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	EmployeeID string           `json:"employee_id,omitempty"`
	Leads      []LeadEarningRow `json:"leads"`
	EarningSummary
	Payout decimal.Decimal `json:"payout"`
}

// EmployeeEarning fila del reporte de ganancias (admin).
type EmployeeEarning struct {
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	EmployeeID string          `json:"employee_id,omitempty"`
	Earning    int64           `json:"earning"`
	Payout     decimal.Decimal `json:"payout"`
}

// RecomputeResponse resultado del recálculo masivo.
type RecomputeResponse struct {
	Users   int `json:"users"`
	Changed int `json:"changed"`
}

// LeaderboardEntry fila del ranking público (por cantidad de leads).
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	LeadCount int    `json:"lead_count"`
}
