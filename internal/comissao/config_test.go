package comissao

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFonteEscaloesUnmarshalPlana(t *testing.T) {
	var f FonteEscaloes
	err := json.Unmarshal([]byte(`{"tiers":[{"min_sales":0,"commission_value":20},{"min_sales":5,"commission_value":30}]}`), &f)
	require.NoError(t, err)

	assert.Nil(t, f.PorServico)
	require.Len(t, f.Plana, 2)
	assert.Equal(t, int64(5), f.Plana[1].MinVendas)
	assert.Equal(t, 30.0, f.Plana[1].ValorComissao)
}

func TestFonteEscaloesUnmarshalPorServico(t *testing.T) {
	var f FonteEscaloes
	err := json.Unmarshal([]byte(`{"M3":{"tiers":[{"min_sales":0,"multiplier":1.5}]},"default":{"tiers":[{"min_sales":0,"multiplier":1.0}]}}`), &f)
	require.NoError(t, err)

	assert.Nil(t, f.Plana)
	require.Len(t, f.PorServico, 2)
	assert.Equal(t, 1.5, f.PorServico["M3"][0].Multiplicador)
	assert.Equal(t, 1.0, f.PorServico[TipoServicoPadrao][0].Multiplicador)
}

func TestFonteEscaloesRoundTrip(t *testing.T) {
	casos := []string{
		`{"tiers":[{"min_sales":0,"commission_value":20}]}`,
		`{"M3":{"tiers":[{"min_sales":3,"multiplier":2}]}}`,
	}
	for _, bruto := range casos {
		var f FonteEscaloes
		require.NoError(t, json.Unmarshal([]byte(bruto), &f))

		emitido, err := json.Marshal(f)
		require.NoError(t, err)

		var relida FonteEscaloes
		require.NoError(t, json.Unmarshal(emitido, &relida))
		assert.Equal(t, f, relida, "round-trip de %s", bruto)
	}
}

func TestConfigCompleta(t *testing.T) {
	bruto := `{
		"particular": {"tiers": [{"min_sales": 0, "commission_value": 20}]},
		"empresarial": {"M3": {"tiers": [{"min_sales": 0, "multiplier": 1.5}]}}
	}`
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(bruto), &cfg))

	assert.NotNil(t, cfg[ClienteParticular].Plana)
	assert.NotNil(t, cfg[ClienteEmpresarial].PorServico)
}
