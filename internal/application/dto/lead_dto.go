package dto

import "time"

// SubmitLeadRequest datos del candidato (JSON o multipart; el CV viaja en el campo "resume").
type SubmitLeadRequest struct {
	CandidateID   string `json:"candidate_id" form:"candidate_id"`
	Name          string `json:"name" form:"name" validate:"required"`
	Mobile        string `json:"mobile" form:"mobile" validate:"required"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Degree        string `json:"degree" form:"degree"`
	Course        string `json:"course" form:"course"`
	College       string `json:"college" form:"college"`
	YearOfPassing string `json:"year_of_passing" form:"year_of_passing"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID                int64     `json:"id"`
	OwnerID           string    `json:"owner_id"`
	CandidateID       string    `json:"candidate_id,omitempty"`
	Name              string    `json:"name"`
	Mobile            string    `json:"mobile"`
	Email             string    `json:"email"`
	Degree            string    `json:"degree"`
	Course            string    `json:"course"`
	College           string    `json:"college"`
	YearOfPassing     string    `json:"year_of_passing"`
	ResumeRef         *string   `json:"resume_ref,omitempty"`
	IsDuplicate       bool      `json:"is_duplicate"`
	IsEligible        bool      `json:"is_eligible"`
	EligibilityReason string    `json:"eligibility_reason,omitempty"`
	Status            string    `json:"status"`
	Credits           int64     `json:"credits"`
	CreatedAt         time.Time `json:"created_at"`
}

// SubmitLeadResponse lead creado + ganancias recalculadas del dueño.
type SubmitLeadResponse struct {
	Lead        LeadResponse `json:"lead"`
	DuplicateOf string       `json:"duplicate_field,omitempty"` // mobile | email cuando is_duplicate
	Earning     int64        `json:"earning"`
}

// LeadPageResponse página de leads.
type LeadPageResponse struct {
	Items      []LeadResponse `json:"items"`
	Pagination PageResponse   `json:"pagination"`
}

// TransitionRequest entrada de PATCH /api/admin/leads/:id/status.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=review shortlisted joined rejected"`
}

// TransitionResponse resultado de una transición de estado.
type TransitionResponse struct {
	LeadID         int64  `json:"lead_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	OwnerID        string `json:"owner_id"`
	OwnerEarning   int64  `json:"owner_earning"`
}

// OwnerDashboardResponse leads paginados del usuario + resumen de ganancias.
type OwnerDashboardResponse struct {
	User       UserResponse   `json:"user"`
	Leads      []LeadResponse `json:"leads"`
	Pagination PageResponse   `json:"pagination"`
	Earning    EarningSummary `json:"earning"`
}

// AdminDashboardResponse datos del admin + todos los leads paginados.
type AdminDashboardResponse struct {
	User       UserResponse   `json:"user"`
	Leads      []LeadResponse `json:"leads"`
	Pagination PageResponse   `json:"pagination"`
}
