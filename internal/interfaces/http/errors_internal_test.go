package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain"
)

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"validación", &domain.ValidationError{Field: "mobile", Reason: "requerido"}, 400, "VALIDATION", "mobile"},
		{"duplicado rechazado", &domain.ConflictError{Field: "email", Reason: "ya existe"}, 409, "DUPLICATE", "email"},
		{"email registrado", domain.ErrEmailAlreadyExists, 409, "EMAIL_EXISTS", "email"},
		{"estado inválido", fmt.Errorf("%w: %q", domain.ErrInvalidState, "x"), 400, "INVALID_STATUS", "status"},
		{"no autorizado", domain.ErrUnauthorized, 401, "UNAUTHORIZED", ""},
		{"prohibido", domain.ErrForbidden, 403, "FORBIDDEN", ""},
		{"lead inexistente", domain.ErrLeadNotFound, 404, "LEAD_NOT_FOUND", ""},
		{"usuario inexistente", domain.ErrUserNotFound, 404, "USER_NOT_FOUND", ""},
		{"conflicto de política", fmt.Errorf("%w: terminal", domain.ErrConflict), 409, "CONFLICT", ""},
		{"dependencia", ports.ErrStorageUnavailable, 503, "DEPENDENCY_UNAVAILABLE", ""},
		{"persistencia", fmt.Errorf("insert lead: %w", errors.Join(domain.ErrPersistence, errors.New("conn reset"))), 500, "INTERNAL", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.field, body.Field)
			if tc.code == "INTERNAL" {
				assert.NotContains(t, body.Message, "conn reset", "no se filtran detalles internos")
			}
		})
	}
}
