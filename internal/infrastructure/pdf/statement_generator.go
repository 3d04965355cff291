// Package pdf genera el estado de ganancias de un empleado en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Email     │  ID empleado + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lead | Candidato | Estado | Elegible | Dup. | Créd. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Créditos / Bono / TOTAL / Pago                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de cálculo                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
)

var _ ports.StatementGenerator = (*StatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa ports.StatementGenerator usando Maroto v2.
type StatementGenerator struct {
	now func() time.Time
}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator {
	return &StatementGenerator{now: time.Now}
}

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatement(_ context.Context, st *dto.EarningBreakdownResponse) ([]byte, error) {
	if st == nil {
		return nil, fmt.Errorf("pdf: estado de ganancias vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de ganancias por referidos", true).
		WithAuthor(st.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(st.Leads) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin leads registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(st.Leads) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + email (izq) e ID de empleado + fecha (der).
func headerRow(st *dto.EarningBreakdownResponse, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(st.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Email, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE GANANCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Empleado: "+nonEmpty(st.EmployeeID, "—"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+at.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de leads.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lead", 1, align.Center),
		h("Candidato", 4, align.Left),
		h("Estado", 2, align.Left),
		h("Elegible", 1, align.Center),
		h("Dup.", 1, align.Center),
		h("Créditos", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por lead.
func tableDetailRows(leads []dto.LeadEarningRow) []core.Row {
	result := make([]core.Row, 0, len(leads))
	for _, l := range leads {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(l.LeadID, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Status,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(yesNo(l.IsEligible),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(yesNo(l.IsDuplicate),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatThousands(l.Credits),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(st *dto.EarningBreakdownResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right,
		})
	}

	return row.New(30).Add(
		col.New(3),
		col.New(4).Add(
			label("Créditos por leads:"),
			label(fmt.Sprintf("Bono (%d contratados):", st.JoinedCount)),
			grand("TOTAL CRÉDITOS:", 2),
			grand("PAGO:", 2),
		),
		col.New(3).Add(
			value(formatThousands(st.Total)),
			value(formatThousands(st.Bonus)),
			grand(formatThousands(st.Final), 1),
			grand("$"+formatDecimal(st.Payout.StringFixed(2)), 1),
		),
		col.New(2),
	)
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Créditos calculados sobre el ledger completo de leads al momento de emitir este documento. "+
				"Los leads duplicados no suman créditos.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func formatThousands(n int64) string {
	return formatMoney(strconv.FormatInt(n, 10))
}

// formatDecimal separa miles en la parte entera y usa coma decimal. Ej: "3025.50" → "3.025,50"
func formatDecimal(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatMoney(intPart)
	if frac != "" {
		out += "," + frac
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
