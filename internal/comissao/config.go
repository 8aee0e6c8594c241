// Package comissao contém a configuração de escalões das operadoras e o
// cálculo de comissão de uma venda.
package comissao

import "encoding/json"

// Âmbitos de produto reconhecidos pelo cálculo.
const (
	AmbitoTelecomunicacoes = "telecomunicacoes"
	AmbitoEnergia          = "energia"
	AmbitoSolar            = "solar"
	AmbitoDual             = "dual"
)

// Tipos de cliente.
const (
	ClienteParticular  = "particular"
	ClienteEmpresarial = "empresarial"
)

// TipoServicoPadrao é a chave de recurso quando o tipo de serviço da venda
// não tem configuração própria.
const TipoServicoPadrao = "default"

// Escalao é um degrau de comissão: aplica-se a partir de MinVendas vendas
// anteriores do parceiro na operadora. Telecomunicações usa Multiplicador
// sobre a mensalidade; energia/solar usam ValorComissao fixo.
type Escalao struct {
	MinVendas     int64   `json:"min_sales"`
	Multiplicador float64 `json:"multiplier,omitempty"`
	ValorComissao float64 `json:"commission_value,omitempty"`
}

// Escaloes é a lista de degraus de uma configuração. Não precisa vir ordenada;
// a ordenação é feita no momento do cálculo.
type Escaloes []Escalao

// FonteEscaloes é a configuração de um tipo de cliente. Tem duas variantes,
// distinguidas pela forma do JSON guardado na operadora:
//
//	{"tiers": [...]}                      -> lista plana (energia, solar)
//	{"M3": {"tiers": [...]}, "default": {"tiers": [...]}}
//	                                      -> por serviço (telecomunicações) ou
//	                                         por tipo de energia
type FonteEscaloes struct {
	Plana      Escaloes
	PorServico map[string]Escaloes
}

type listaEscaloesJSON struct {
	Escaloes Escaloes `json:"tiers"`
}

// UnmarshalJSON decide a variante pela presença da chave "tiers" no objeto.
func (f *FonteEscaloes) UnmarshalJSON(b []byte) error {
	var bruto map[string]json.RawMessage
	if err := json.Unmarshal(b, &bruto); err != nil {
		return err
	}
	if tiers, ok := bruto["tiers"]; ok {
		f.PorServico = nil
		return json.Unmarshal(tiers, &f.Plana)
	}

	f.Plana = nil
	f.PorServico = make(map[string]Escaloes, len(bruto))
	for servico, rm := range bruto {
		var lista listaEscaloesJSON
		if err := json.Unmarshal(rm, &lista); err != nil {
			return err
		}
		f.PorServico[servico] = lista.Escaloes
	}
	return nil
}

// MarshalJSON devolve a mesma forma que foi lida, para round-trip no JSONB.
func (f FonteEscaloes) MarshalJSON() ([]byte, error) {
	if f.PorServico != nil {
		porServico := make(map[string]listaEscaloesJSON, len(f.PorServico))
		for servico, lista := range f.PorServico {
			porServico[servico] = listaEscaloesJSON{Escaloes: lista}
		}
		return json.Marshal(porServico)
	}
	return json.Marshal(listaEscaloesJSON{Escaloes: f.Plana})
}

// Config mapeia tipo de cliente -> fonte de escalões. É o valor guardado no
// campo commission_config da operadora.
type Config map[string]FonteEscaloes
