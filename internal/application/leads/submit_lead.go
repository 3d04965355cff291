package leads

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/eligibility"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

// ResumeUpload CV adjunto a la solicitud.
type ResumeUpload struct {
	Filename string
	Data     []byte
}

// SubmitLeadInput entrada de SubmitLead.
type SubmitLeadInput struct {
	Actor  entity.Actor
	Lead   dto.SubmitLeadRequest
	Resume *ResumeUpload // nil si no se adjuntó CV
}

// SubmitLeadUseCase registra un lead nuevo: evalúa elegibilidad, detecta duplicados e
// inserta el lead y recalcula las ganancias del dueño en una sola transacción.
//
// El CV se guarda y se analiza ANTES de abrir la transacción (no se retienen locks
// mientras se espera a colaboradores externos). Si el almacenamiento o el extractor
// fallan, la señal del CV queda "no resuelta" y la solicitud sigue adelante.
type SubmitLeadUseCase struct {
	txRunner    LedgerTxRunner
	evaluator   *eligibility.Evaluator
	blobs       ports.BlobStorage
	extractor   ports.DocumentExtractor
	leaderboard ports.LeaderboardCache
	metrics     ports.LeadMetrics
	policy      DuplicatePolicy
	creditValue decimal.Decimal
	log         *logger.Logger
}

// NewSubmitLeadUseCase construye el caso de uso. leaderboard puede ser nil (sin cache).
func NewSubmitLeadUseCase(
	txRunner LedgerTxRunner,
	evaluator *eligibility.Evaluator,
	blobs ports.BlobStorage,
	extractor ports.DocumentExtractor,
	leaderboard ports.LeaderboardCache,
	metrics ports.LeadMetrics,
	policy DuplicatePolicy,
	creditValue decimal.Decimal,
	log *logger.Logger,
) *SubmitLeadUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if policy == "" {
		policy = DuplicateFlag
	}
	return &SubmitLeadUseCase{
		txRunner:    txRunner,
		evaluator:   evaluator,
		blobs:       blobs,
		extractor:   extractor,
		leaderboard: leaderboard,
		metrics:     metrics,
		policy:      policy,
		creditValue: creditValue,
		log:         log.Component("leads"),
	}
}

// SubmitLead valida → guarda CV → analiza CV → [tx: lock contacto → duplicados →
// elegibilidad → insert → recálculo del dueño] → invalida el leaderboard.
func (uc *SubmitLeadUseCase) SubmitLead(ctx context.Context, in SubmitLeadInput) (_ *dto.SubmitLeadResponse, err error) {
	ctx, span := tracer.Start(ctx, "leads.SubmitLead")
	defer func() { endSpan(span, err) }()

	if in.Actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	req := trimRequest(in.Lead)
	if err := validateSubmit(req); err != nil {
		return nil, err
	}
	email := eligibility.NormalizeEmail(req.Email)
	mobile := eligibility.NormalizeMobile(req.Mobile)

	resumeRef, signal, unresolved := uc.resolveResume(ctx, in.Resume)

	now := time.Now()
	lead := &entity.Lead{
		OwnerID:       in.Actor.UserID,
		CandidateID:   req.CandidateID,
		Name:          req.Name,
		Mobile:        mobile,
		Email:         email,
		Degree:        req.Degree,
		Course:        req.Course,
		College:       req.College,
		YearOfPassing: req.YearOfPassing,
		ResumeRef:     resumeRef,
		Status:        entity.StatusSubmitted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var (
		dup    eligibility.DuplicateCheck
		result recomputed
	)
	err = uc.txRunner.RunLedger(ctx, func(leadRepo repository.LeadRepository, userRepo repository.UserRepository) error {
		if err := leadRepo.LockContact(ctx, contactKeys(email, mobile)...); err != nil {
			return err
		}
		existing, err := leadRepo.FindByContact(ctx, email, mobile)
		if err != nil {
			return err
		}
		dup = eligibility.CheckDuplicate(email, mobile, existing)
		if dup.IsDuplicate && uc.policy == DuplicateReject {
			return &domain.ConflictError{
				Field:  dup.Field,
				Reason: fmt.Sprintf("ya existe un lead con el mismo %s", dup.Field),
			}
		}

		decision := uc.evaluator.Evaluate(eligibility.Candidate{
			Degree:           req.Degree,
			Course:           req.Course,
			Resume:           signal,
			ResumeUnresolved: unresolved,
		})
		lead.IsDuplicate = dup.IsDuplicate
		lead.IsEligible = decision.IsEligible
		lead.EligibilityReason = decision.Reason

		id, err := leadRepo.Insert(ctx, lead)
		if err != nil {
			return err
		}
		lead.ID = id

		result, err = recomputeOwner(ctx, leadRepo, userRepo, lead.OwnerID, uc.creditValue)
		return err
	})
	if err != nil {
		uc.discardResume(resumeRef)
		if !errors.Is(err, domain.ErrConflict) {
			uc.log.Error().Err(err).Str("owner_id", in.Actor.UserID).Msg("no se pudo registrar el lead")
		}
		return nil, err
	}

	uc.invalidateLeaderboard(ctx)
	uc.metrics.LeadSubmitted(lead.IsEligible, lead.IsDuplicate)
	span.SetAttributes(
		attribute.Int64("lead.id", lead.ID),
		attribute.Bool("lead.eligible", lead.IsEligible),
		attribute.Bool("lead.duplicate", lead.IsDuplicate),
	)
	uc.log.Info().
		Int64("lead_id", lead.ID).
		Str("owner_id", lead.OwnerID).
		Bool("eligible", lead.IsEligible).
		Bool("duplicate", lead.IsDuplicate).
		Int64("earning", result.Summary.Final).
		Msg("lead registrado")

	resp := &dto.SubmitLeadResponse{
		Lead:    toLeadResponse(lead),
		Earning: result.Summary.Final,
	}
	if dup.IsDuplicate {
		resp.DuplicateOf = dup.Field
	}
	return resp, nil
}

// resolveResume guarda el CV y consulta al extractor. Las fallas de los colaboradores
// no abortan: devuelven unresolved=true y se registran en log y métricas.
func (uc *SubmitLeadUseCase) resolveResume(ctx context.Context, upload *ResumeUpload) (ref *string, signal *eligibility.ResumeSignal, unresolved bool) {
	if upload == nil || len(upload.Data) == 0 {
		return nil, nil, false
	}
	stored, err := uc.blobs.Put(ctx, upload.Filename, upload.Data)
	if err != nil {
		uc.metrics.DependencyFailed("blob_storage")
		uc.log.Warn().Err(err).Str("filename", upload.Filename).Msg("no se pudo guardar el CV; elegibilidad sin señal del CV")
		return nil, nil, true
	}
	ref = &stored

	found, err := uc.extractor.HasQualification(ctx, stored)
	if err != nil {
		uc.metrics.DependencyFailed("document_extractor")
		uc.log.Warn().Err(err).Str("resume_ref", stored).Msg("no se pudo analizar el CV; elegibilidad sin señal del CV")
		return ref, nil, true
	}
	return ref, &eligibility.ResumeSignal{QualificationFound: found}, false
}

// discardResume borra el CV de una solicitud que no llegó a confirmarse.
func (uc *SubmitLeadUseCase) discardResume(ref *string) {
	if ref == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.blobs.Delete(ctx, *ref); err != nil {
		uc.log.Warn().Err(err).Str("resume_ref", *ref).Msg("no se pudo borrar el CV huérfano")
	}
}

func (uc *SubmitLeadUseCase) invalidateLeaderboard(ctx context.Context) {
	if uc.leaderboard == nil {
		return
	}
	if err := uc.leaderboard.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache del leaderboard")
	}
}

func trimRequest(in dto.SubmitLeadRequest) dto.SubmitLeadRequest {
	in.CandidateID = strings.TrimSpace(in.CandidateID)
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Email = strings.TrimSpace(in.Email)
	in.Degree = strings.TrimSpace(in.Degree)
	in.Course = strings.TrimSpace(in.Course)
	in.College = strings.TrimSpace(in.College)
	in.YearOfPassing = strings.TrimSpace(in.YearOfPassing)
	return in
}

func validateSubmit(in dto.SubmitLeadRequest) error {
	if in.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "el nombre es obligatorio"}
	}
	if in.Email == "" {
		return &domain.ValidationError{Field: "email", Reason: "el email es obligatorio"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &domain.ValidationError{Field: "email", Reason: "email con formato inválido"}
	}
	if in.Mobile == "" {
		return &domain.ValidationError{Field: "mobile", Reason: "el móvil es obligatorio"}
	}
	if n := len(eligibility.NormalizeMobile(in.Mobile)); n < 7 || n > 15 {
		return &domain.ValidationError{Field: "mobile", Reason: "el móvil debe tener entre 7 y 15 dígitos"}
	}
	return nil
}

// contactKeys claves de lock por contacto normalizado.
func contactKeys(email, mobile string) []string {
	keys := make([]string, 0, 2)
	if mobile != "" {
		keys = append(keys, "lead:mobile:"+mobile)
	}
	if email != "" {
		keys = append(keys, "lead:email:"+email)
	}
	return keys
}
