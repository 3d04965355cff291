package eligibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DheemanKumar/lead-manager/internal/domain/eligibility"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "mtech", eligibility.Normalize("M. Tech"))
	assert.Equal(t, "machinelearning", eligibility.Normalize("Machine Learning"))
	assert.Equal(t, "ingenieria", eligibility.Normalize("Ingeniería"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"mtech"}, eligibility.Tokens("M.Tech"))
	assert.Equal(t, []string{"m", "tech"}, eligibility.Tokens("M. Tech."))
	assert.Equal(t, []string{"mtech", "cse"}, eligibility.Tokens("MTech (CSE)"))
	assert.Equal(t, []string{"platform", "technologies"}, eligibility.Tokens("Platform Technologies"))
	assert.Equal(t, []string{"maestria", "en", "ia"}, eligibility.Tokens("Maestría en IA"))
	assert.Nil(t, eligibility.Tokens(" . ; "))
}

func TestContainsTokens(t *testing.T) {
	text := eligibility.Tokens("Worked at Platform Technologies; M. Tech in Computer Science")

	assert.True(t, eligibility.ContainsTokens(text, eligibility.Tokens("m. tech.")))
	assert.True(t, eligibility.ContainsTokens(text, eligibility.Tokens("computer science")))
	assert.False(t, eligibility.ContainsTokens(text, eligibility.Tokens("mtech")))
	assert.False(t, eligibility.ContainsTokens(text, eligibility.Tokens("science computer")))
	assert.False(t, eligibility.ContainsTokens(text, nil))
	assert.False(t, eligibility.ContainsTokens(nil, eligibility.Tokens("mtech")))
}
