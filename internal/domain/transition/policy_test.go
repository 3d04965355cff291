package transition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DheemanKumar/lead-manager/internal/domain"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
	"github.com/DheemanKumar/lead-manager/internal/domain/transition"
)

func TestParseTarget(t *testing.T) {
	for _, s := range []string{"review", "Shortlisted", " JOINED ", "rejected", "Review Stage"} {
		_, err := transition.ParseTarget(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"submitted", "qualified lead", "", "hired"} {
		_, err := transition.ParseTarget(s)
		assert.ErrorIs(t, err, domain.ErrInvalidState, s)
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := transition.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, transition.Permissive, p)

	p, err = transition.ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, transition.Strict, p)

	_, err = transition.ParsePolicy("loose")
	assert.Error(t, err)
}

func TestPermissive_AceptaTodo(t *testing.T) {
	p := transition.Permissive
	assert.NoError(t, p.Check(entity.StatusJoined, entity.StatusReview))
	assert.NoError(t, p.Check(entity.StatusRejected, entity.StatusJoined))
	assert.NoError(t, p.Check(entity.StatusSubmitted, entity.StatusJoined))
}

func TestStrict_Transiciones(t *testing.T) {
	p := transition.Strict

	// avances (incluido saltar etapas)
	assert.NoError(t, p.Check(entity.StatusSubmitted, entity.StatusReview))
	assert.NoError(t, p.Check(entity.StatusSubmitted, entity.StatusJoined))
	assert.NoError(t, p.Check(entity.StatusReview, entity.StatusShortlisted))
	// rejected desde cualquier no terminal
	assert.NoError(t, p.Check(entity.StatusShortlisted, entity.StatusRejected))
	// idempotente
	assert.NoError(t, p.Check(entity.StatusJoined, entity.StatusJoined))
	assert.NoError(t, p.Check(entity.LeadStatus("Review Stage"), entity.StatusReview))

	// retroceso y salida de terminal
	assert.ErrorIs(t, p.Check(entity.StatusShortlisted, entity.StatusReview), domain.ErrConflict)
	assert.ErrorIs(t, p.Check(entity.StatusJoined, entity.StatusRejected), domain.ErrConflict)
	assert.ErrorIs(t, p.Check(entity.StatusRejected, entity.StatusReview), domain.ErrConflict)
}
