// Package extractor busca la calificación requerida en el texto del CV.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain/eligibility"
)

var _ ports.DocumentExtractor = (*ResumeExtractor)(nil)

// DocumentReader lee el contenido de un documento por su referencia opaca.
type DocumentReader interface {
	Read(ctx context.Context, ref string) ([]byte, error)
}

// ResumeExtractor extrae el texto del CV (PDF o texto plano) y busca alguna de las
// palabras clave de la calificación. Texto y palabras clave se comparan palabra por
// palabra (eligibility.Tokens): "M.Tech" coincide con "mtech" pero "Platform Technologies"
// no coincide con nada.
type ResumeExtractor struct {
	docs     DocumentReader
	keywords [][]string
}

// NewResumeExtractor construye el extractor con las palabras clave de las reglas.
func NewResumeExtractor(docs DocumentReader, keywords []string) *ResumeExtractor {
	normalized := make([][]string, 0, len(keywords))
	for _, k := range keywords {
		if tokens := eligibility.Tokens(k); len(tokens) > 0 {
			normalized = append(normalized, tokens)
		}
	}
	return &ResumeExtractor{docs: docs, keywords: normalized}
}

// HasQualification indica si el CV menciona alguna palabra clave.
func (e *ResumeExtractor) HasQualification(ctx context.Context, ref string) (bool, error) {
	data, err := e.docs.Read(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("%w: leer %s: %v", ports.ErrExtractionFailed, ref, err)
	}
	text, err := plainText(data)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ports.ErrExtractionFailed, ref, err)
	}
	return e.matches(text), nil
}

func (e *ResumeExtractor) matches(text string) bool {
	tokens := eligibility.Tokens(text)
	for _, k := range e.keywords {
		if eligibility.ContainsTokens(tokens, k) {
			return true
		}
	}
	return false
}

func plainText(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return pdfText(data)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("formato de documento no soportado")
	}
	return string(data), nil
}

func pdfText(data []byte) (text string, err error) {
	// El parser entra en pánico con algunos PDFs mal formados.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf mal formado: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("abrir pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extraer texto: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("leer texto: %w", err)
	}
	return buf.String(), nil
}
