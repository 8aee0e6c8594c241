package validacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidarCPE(t *testing.T) {
	assert.True(t, ValidarCPE("PT0002123456789012AB"))
	assert.True(t, ValidarCPE("  pt0002123456789012ab  "), "minúsculas e espaços são normalizados")

	assert.False(t, ValidarCPE("PT0001123456789012AB"), "prefixo errado")
	assert.False(t, ValidarCPE("PT000212345678901AB"), "onze dígitos")
	assert.False(t, ValidarCPE("PT000212345678901234"), "termina em dígitos")
	assert.False(t, ValidarCPE(""))
}

func TestValidarCUI(t *testing.T) {
	assert.True(t, ValidarCUI("PT16123456789012345XY"))
	assert.True(t, ValidarCUI("pt16123456789012345xy"))

	assert.False(t, ValidarCUI("PT1612345678901234XY"), "catorze dígitos")
	assert.False(t, ValidarCUI("PT17123456789012345XY"), "prefixo errado")
	assert.False(t, ValidarCUI(""))
}

func TestNormalizarCodigo(t *testing.T) {
	assert.Equal(t, "PT0002123456789012AB", NormalizarCodigo(" pt0002123456789012ab "))
	// normalizar duas vezes não altera o resultado
	normalizado := NormalizarCodigo("pt16123456789012345xy")
	assert.Equal(t, normalizado, NormalizarCodigo(normalizado))
}
