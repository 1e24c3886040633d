package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearchTerm(t *testing.T) {
	assert.Equal(t, "joao alvares", NormalizeSearchTerm("João Álvares"))
	assert.Equal(t, "colecistectomia", NormalizeSearchTerm("Colecistectomia"))
	assert.Equal(t, "consulta medica", NormalizeSearchTerm("CONSULTA MÉDICA"))
	assert.Equal(t, "", NormalizeSearchTerm(""))
}

func TestNormalizeSearchTermIsIdempotent(t *testing.T) {
	for _, s := range []string{"João Álvares", "secretária", "plain ascii"} {
		once := NormalizeSearchTerm(s)
		assert.Equal(t, once, NormalizeSearchTerm(once), s)
	}
}

func TestContainsNormalized(t *testing.T) {
	assert.True(t, ContainsNormalized("João Álvares", "joao"))
	assert.True(t, ContainsNormalized("João Álvares", "ALVARES"))
	assert.True(t, ContainsNormalized("Artroplastia de quadril", "QUADRIL"))
	assert.True(t, ContainsNormalized("anything", ""))
	assert.False(t, ContainsNormalized("João Álvares", "maria"))
}
