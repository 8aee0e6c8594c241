package comissao

import "sort"

// DadosVenda são os atributos da venda que influenciam o cálculo.
type DadosVenda struct {
	Ambito      string
	TipoCliente string
	TipoServico string  // só telecomunicações
	TipoEnergia string  // só energia
	ValorMensal float64 // só telecomunicações
}

// Calcular determina a comissão de uma nova venda a partir da configuração da
// operadora e da contagem de vendas anteriores do parceiro nessa operadora
// (já persistidas, excluindo a venda em criação). Configuração em falta ou
// sem escalões resulta em comissão 0 — o padrão conservador do sistema.
func Calcular(cfg Config, venda DadosVenda, vendasAnteriores int64) float64 {
	fonte, ok := cfg[venda.TipoCliente]
	if !ok {
		return 0
	}

	escaloes := escaloesAplicaveis(fonte, venda)
	if len(escaloes) == 0 {
		return 0
	}

	escalao := escolherEscalao(escaloes, vendasAnteriores)

	if venda.Ambito == AmbitoTelecomunicacoes {
		return escalao.Multiplicador * venda.ValorMensal
	}
	return escalao.ValorComissao
}

// escaloesAplicaveis resolve a variante da configuração para o âmbito da
// venda. Telecomunicações procura o tipo de serviço com recurso a "default";
// energia procura o tipo de energia; solar/dual usam a lista plana.
func escaloesAplicaveis(fonte FonteEscaloes, venda DadosVenda) Escaloes {
	switch venda.Ambito {
	case AmbitoTelecomunicacoes:
		if fonte.PorServico != nil {
			if lista, ok := fonte.PorServico[venda.TipoServico]; ok {
				return lista
			}
			return fonte.PorServico[TipoServicoPadrao]
		}
		return fonte.Plana
	case AmbitoEnergia:
		if fonte.PorServico != nil {
			if lista, ok := fonte.PorServico[venda.TipoEnergia]; ok {
				return lista
			}
		}
		return fonte.Plana
	default:
		return fonte.Plana
	}
}

// escolherEscalao seleciona o degrau de maior MinVendas que o parceiro já
// atingiu. Se nenhum qualificar, o piso é o degrau de menor MinVendas — e não
// "o primeiro da lista", que dependeria da ordem de escrita da configuração.
func escolherEscalao(escaloes Escaloes, vendasAnteriores int64) Escalao {
	ordenados := make(Escaloes, len(escaloes))
	copy(ordenados, escaloes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].MinVendas > ordenados[j].MinVendas
	})

	for _, e := range ordenados {
		if vendasAnteriores >= e.MinVendas {
			return e
		}
	}
	// piso: menor MinVendas (último após ordenação descendente)
	return ordenados[len(ordenados)-1]
}
