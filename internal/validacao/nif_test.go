package validacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidarNIF(t *testing.T) {
	casos := []struct {
		nome   string
		nif    string
		valido bool
	}{
		{"coletivo com dígito de controlo correto", "501234560", true},
		{"coletivo com dígito de controlo errado", "501234561", false},
		{"coletivo com pontuação", "501 234 560", true},
		{"singular valida apenas formato", "123456789", true},
		{"singular com pontuação", "123.456.789", true},
		{"curto demais", "5012345", false},
		{"longo demais", "5012345601", false},
		{"vazio", "", false},
		{"letras no meio não contam como dígitos", "50123456A", false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.valido, ValidarNIF(c.nif))
		})
	}
}

func TestValidarDigitoControloNIF(t *testing.T) {
	// 500000000: soma ponderada 45, 45 % 11 = 1, controlo 10 -> 0
	assert.True(t, validarDigitoControloNIF("500000000"))
	assert.False(t, validarDigitoControloNIF("500000001"))
}
