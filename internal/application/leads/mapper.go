package leads

import (
	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/domain/earning"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:                l.ID,
		OwnerID:           l.OwnerID,
		CandidateID:       l.CandidateID,
		Name:              l.Name,
		Mobile:            l.Mobile,
		Email:             l.Email,
		Degree:            l.Degree,
		Course:            l.Course,
		College:           l.College,
		YearOfPassing:     l.YearOfPassing,
		ResumeRef:         l.ResumeRef,
		IsDuplicate:       l.IsDuplicate,
		IsEligible:        l.IsEligible,
		EligibilityReason: l.EligibilityReason,
		Status:            string(l.Status),
		Credits:           earning.ValuePerLead(l.Status, l.IsEligible, l.IsDuplicate),
		CreatedAt:         l.CreatedAt,
	}
}

func toLeadResponses(list []*entity.Lead) []dto.LeadResponse {
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLeadResponse(l))
	}
	return out
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
		Earning:    u.Earning,
		CreatedAt:  u.CreatedAt,
	}
}

func toEarningSummary(s earning.Summary) dto.EarningSummary {
	return dto.EarningSummary{
		Total:       s.Total,
		JoinedCount: s.JoinedCount,
		Bonus:       s.Bonus,
		Final:       s.Final,
	}
}
