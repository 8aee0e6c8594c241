package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidarSenhaForte(t *testing.T) {
	casos := []struct {
		nome   string
		senha  string
		valida bool
	}{
		{"cumpre a política", "Ab1!2345", true},
		{"sem maiúscula", "ab1!2345", false},
		{"sem dígito", "Abc!defg", false},
		{"sem especial", "Ab123456", false},
		{"curta demais", "Ab1!234", false},
		{"especial fora do conjunto", "Ab123456-", false},
		{"vazia", "", false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.valida, ValidarSenhaForte(c.senha))
		})
	}
}

func TestGerarSenhaForte(t *testing.T) {
	for i := 0; i < 50; i++ {
		senha, err := GerarSenhaForte(8)
		require.NoError(t, err)
		assert.Len(t, senha, 8)
		assert.True(t, ValidarSenhaForte(senha), "senha gerada deve cumprir a política: %q", senha)
	}
}

func TestGerarSenhaForteTamanhoMinimo(t *testing.T) {
	senha, err := GerarSenhaForte(4)
	require.NoError(t, err)
	assert.Len(t, senha, 8, "tamanhos abaixo de 8 são elevados ao mínimo")
}

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("Ab1!2345")
	require.NoError(t, err)
	assert.NotEqual(t, "Ab1!2345", hash)

	assert.True(t, VerificarSenha(hash, "Ab1!2345"))
	assert.False(t, VerificarSenha(hash, "Ab1!2346"))
}
