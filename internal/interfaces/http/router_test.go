package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DheemanKumar/lead-manager/internal/application/auth"
	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
	"github.com/DheemanKumar/lead-manager/internal/domain/eligibility"
	"github.com/DheemanKumar/lead-manager/internal/domain/transition"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/extractor"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/pdf"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/storage"
	apphttp "github.com/DheemanKumar/lead-manager/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	users := userRepo{store}

	blobs, err := storage.NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	rules := eligibility.DefaultRules()

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	creditValue := decimal.RequireFromString("0.5")
	earnings := leads.NewEarningsUseCase(store, users, creditValue, nil, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: authUC,
		SubmitLead: leads.NewSubmitLeadUseCase(store, eligibility.NewEvaluator(rules), blobs,
			extractor.NewResumeExtractor(blobs, rules.ResumeKeywords), nil, nil, leads.DuplicateFlag, creditValue, nil),
		Transition:     leads.NewTransitionStatusUseCase(store, transition.Permissive, creditValue, nil, nil),
		Dashboard:      leads.NewDashboardUseCase(store, users),
		Earnings:       earnings,
		Statement:      leads.NewStatementUseCase(earnings, pdf.NewStatementGenerator()),
		Leaderboard:    leads.NewLeaderboardUseCase(store, nil, nil),
		JWTSecret:      testJWTSecret,
		UploadMaxBytes: 1024,
	})
	return &testEnv{app: app, authUC: authUC}
}

// signup registra y hace login; admin=true promueve antes del login (el rol viaja en el token).
func (e *testEnv) signup(t *testing.T, email, employeeID string, admin bool) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Name: email, Email: email, EmployeeID: employeeID, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	if admin {
		_, err := e.authUC.Promote(context.Background(), email)
		require.NoError(t, err)
	}
	resp = e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return "Bearer " + out.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func candidate(n int) dto.SubmitLeadRequest {
	return dto.SubmitLeadRequest{
		Name:   fmt.Sprintf("Candidato %d", n),
		Mobile: fmt.Sprintf("98765%05d", n),
		Email:  fmt.Sprintf("cand%d@mail.test", n),
		Degree: "M.Tech",
		Course: "CSE",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SignupDuplicadoYLoginInvalido(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@corp.test", "E-001", false)

	resp := env.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Name: "Alice", Email: "ALICE@corp.test", Password: "password123",
	})
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errBody.Code)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "alice@corp.test", Password: "incorrecta"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_PerfilRequiereToken(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/dashboard", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := env.signup(t, "alice@corp.test", "E-001", false)
	resp = env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	var user dto.UserResponse
	decode(t, resp, &user)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@corp.test", user.Email)
	assert.Equal(t, "standard", user.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Leads
// ──────────────────────────────────────────────────────────────────────────────

func TestLeads_SubmitJSONYDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@corp.test", "E-001", false)

	resp := env.do(t, http.MethodPost, "/api/leads", token, candidate(1))
	var created dto.SubmitLeadResponse
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, created.Lead.IsEligible)
	assert.EqualValues(t, 50, created.Earning)

	// Mismo móvil: se marca duplicado y no suma.
	dup := candidate(2)
	dup.Mobile = candidate(1).Mobile
	resp = env.do(t, http.MethodPost, "/api/leads", token, dup)
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, created.Lead.IsDuplicate)
	assert.Equal(t, "mobile", created.DuplicateOf)
	assert.EqualValues(t, 50, created.Earning)

	resp = env.do(t, http.MethodGet, "/api/leads/dashboard?page=1&page_size=1", token, nil)
	var dash dto.OwnerDashboardResponse
	decode(t, resp, &dash)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, dash.Leads, 1)
	assert.Equal(t, 2, dash.Pagination.Total)
	assert.Equal(t, 2, dash.Pagination.TotalPages)
	assert.EqualValues(t, 50, dash.Earning.Final)
}

func TestLeads_ValidacionDevuelveCampo(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@corp.test", "E-001", false)

	bad := candidate(1)
	bad.Email = "no-es-email"
	resp := env.do(t, http.MethodPost, "/api/leads", token, bad)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "email", errBody.Field)
}

func multipartLead(t *testing.T, lead dto.SubmitLeadRequest, resume []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name": lead.Name, "mobile": lead.Mobile, "email": lead.Email,
		"degree": lead.Degree, "course": lead.Course,
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if resume != nil {
		part, err := w.CreateFormFile(apphttp.ResumeField, "cv.txt")
		require.NoError(t, err)
		_, err = part.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestLeads_SubmitMultipartConCV(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@corp.test", "E-001", false)

	cases := []struct {
		name     string
		resume   []byte
		eligible bool
	}{
		{"cv con la calificación", []byte("Master of Technology, Computer Science"), true},
		{"cv sin la calificación", []byte("B.Sc. Physics"), false},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := multipartLead(t, candidate(10+i), tc.resume)
			req := httptest.NewRequest(http.MethodPost, "/api/leads", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", token)
			resp, err := env.app.Test(req, -1)
			require.NoError(t, err)

			var created dto.SubmitLeadResponse
			decode(t, resp, &created)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
			assert.Equal(t, tc.eligible, created.Lead.IsEligible)
			assert.NotNil(t, created.Lead.ResumeRef)
		})
	}
}

func TestLeads_CVDemasiadoGrande(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@corp.test", "E-001", false)

	body, contentType := multipartLead(t, candidate(1), bytes.Repeat([]byte("a"), 2048))
	req := httptest.NewRequest(http.MethodPost, "/api/leads", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin + ganancias
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_TransicionYGanancias(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice@corp.test", "E-001", false)
	admin := env.signup(t, "admin@corp.test", "", true)

	resp := env.do(t, http.MethodPost, "/api/leads", alice, candidate(1))
	var created dto.SubmitLeadResponse
	decode(t, resp, &created)
	path := fmt.Sprintf("/api/admin/leads/%d/status", created.Lead.ID)

	// Un empleado standard no puede transicionar.
	resp = env.do(t, http.MethodPatch, path, alice, dto.TransitionRequest{Status: "joined"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, path, admin, dto.TransitionRequest{Status: "ascendido"})
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATUS", errBody.Code)

	resp = env.do(t, http.MethodPatch, "/api/admin/leads/999/status", admin, dto.TransitionRequest{Status: "joined"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, path, admin, dto.TransitionRequest{Status: "joined"})
	var tr dto.TransitionResponse
	decode(t, resp, &tr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "submitted", tr.PreviousStatus)
	assert.Equal(t, "joined", tr.NewStatus)
	assert.EqualValues(t, 5000, tr.OwnerEarning)

	resp = env.do(t, http.MethodGet, "/api/earnings/breakdown", alice, nil)
	var breakdown dto.EarningBreakdownResponse
	decode(t, resp, &breakdown)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5000, breakdown.Final)
	assert.True(t, breakdown.Payout.Equal(decimal.NewFromInt(2500)))

	resp = env.do(t, http.MethodGet, "/api/earnings/admin", admin, nil)
	var report []dto.EmployeeEarning
	decode(t, resp, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, report, 1)
	assert.EqualValues(t, 5000, report[0].Earning)

	resp = env.do(t, http.MethodGet, "/api/admin/leads", admin, nil)
	var page dto.LeadPageResponse
	decode(t, resp, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, page.Pagination.Total)

	resp = env.do(t, http.MethodPost, "/api/earnings/admin/recompute", admin, nil)
	var rec dto.RecomputeResponse
	decode(t, resp, &rec)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, rec.Changed)
}

func TestEarnings_StatementPDF(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@corp.test", "E-001", false)
	resp := env.do(t, http.MethodPost, "/api/leads", token, candidate(1))
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/earnings/statement", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "estado-ganancias-E-001.pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestLeaderboard_Publico(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice@corp.test", "E-001", false)
	bob := env.signup(t, "bob@corp.test", "E-002", false)
	for i := 1; i <= 2; i++ {
		env.do(t, http.MethodPost, "/api/leads", alice, candidate(i)).Body.Close()
	}
	env.do(t, http.MethodPost, "/api/leads", bob, candidate(3)).Body.Close()

	resp := env.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	var board []dto.LeaderboardEntry
	decode(t, resp, &board)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[0].LeadCount)
	assert.Equal(t, 2, board[1].Rank)
}
