// Package eligibility decide si un lead cumple los criterios del programa y si
// duplica el contacto de un lead existente. Decisiones puras: no hay I/O ni errores;
// "no elegible" es un resultado de negocio y viene acompañado de un motivo.
package eligibility

import (
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// ResumeSignal resultado del extractor de documentos sobre el CV del candidato.
type ResumeSignal struct {
	QualificationFound bool
}

// Candidate atributos que se evalúan. Resume es nil cuando no hay señal del CV
// (no se subió, o el extractor falló y Unresolved es true).
type Candidate struct {
	Degree           string
	Course           string
	Resume           *ResumeSignal
	ResumeUnresolved bool
}

// Decision resultado de Evaluate.
type Decision struct {
	IsEligible bool
	Reason     string
}

// Evaluator aplica las reglas del programa.
type Evaluator struct {
	degrees       map[string]struct{}
	courses       map[string]struct{}
	requireResume bool
}

// NewEvaluator construye el evaluador normalizando las listas permitidas.
func NewEvaluator(rules Rules) *Evaluator {
	return &Evaluator{
		degrees:       toSet(rules.Degrees),
		courses:       toSet(rules.Courses),
		requireResume: rules.RequireResume,
	}
}

// RequiresResume indica la política cuando no hay señal del CV.
func (e *Evaluator) RequiresResume() bool { return e.requireResume }

// Evaluate: elegible = grado permitido Y curso permitido (Y, si hay señal del CV,
// que el extractor haya encontrado la calificación).
func (e *Evaluator) Evaluate(c Candidate) Decision {
	if _, ok := e.degrees[Normalize(c.Degree)]; !ok {
		return Decision{Reason: "grado no elegible para el programa"}
	}
	if _, ok := e.courses[Normalize(c.Course)]; !ok {
		return Decision{Reason: "curso no elegible para el programa"}
	}
	if c.Resume != nil {
		if !c.Resume.QualificationFound {
			return Decision{Reason: "el CV no menciona la calificación requerida"}
		}
		return Decision{IsEligible: true}
	}
	if e.requireResume {
		if c.ResumeUnresolved {
			return Decision{Reason: "no se pudo verificar el CV"}
		}
		return Decision{Reason: "se requiere CV para validar la elegibilidad"}
	}
	if c.ResumeUnresolved {
		return Decision{IsEligible: true, Reason: "CV no verificado; elegibilidad por grado y curso"}
	}
	return Decision{IsEligible: true}
}

// DuplicateCheck resultado de CheckDuplicate; Field indica qué dato colisionó.
type DuplicateCheck struct {
	IsDuplicate bool
	Field       string
}

// CheckDuplicate: duplicado si algún lead existente (de cualquier usuario) comparte el
// email o el mobile. La comparación usa las formas normalizadas.
func CheckDuplicate(email, mobile string, existing []*entity.Lead) DuplicateCheck {
	email = NormalizeEmail(email)
	mobile = NormalizeMobile(mobile)
	for _, l := range existing {
		if l == nil {
			continue
		}
		if mobile != "" && NormalizeMobile(l.Mobile) == mobile {
			return DuplicateCheck{IsDuplicate: true, Field: "mobile"}
		}
		if email != "" && NormalizeEmail(l.Email) == email {
			return DuplicateCheck{IsDuplicate: true, Field: "email"}
		}
	}
	return DuplicateCheck{}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
