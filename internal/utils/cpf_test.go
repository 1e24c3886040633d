package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"11144477735",
	}
	for _, cpf := range valid {
		assert.True(t, ValidateCPF(cpf), cpf)
	}

	invalid := []string{
		"",
		"52998224724",
		"00000000000",
		"11111111111",
		"1234567890",
		"123456789012",
		"529.982.247-2a",
	}
	for _, cpf := range invalid {
		assert.False(t, ValidateCPF(cpf), cpf)
	}
}

func TestValidateCNPJ(t *testing.T) {
	valid := []string{
		"11222333000181",
		"11.222.333/0001-81",
	}
	for _, cnpj := range valid {
		assert.True(t, ValidateCNPJ(cnpj), cnpj)
	}

	invalid := []string{
		"",
		"11222333000182",
		"00000000000000",
		"1122233300018",
	}
	for _, cnpj := range invalid {
		assert.False(t, ValidateCNPJ(cnpj), cnpj)
	}
}
