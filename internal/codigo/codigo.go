// Package codigo gera os códigos legíveis de parceiros e vendas. As funções
// são puras sobre a contagem fornecida; quem chama é responsável por obter a
// contagem dentro da secção crítica da TrancaPorChave para que o código não
// seja invalidado por criações concorrentes.
package codigo

import (
	"fmt"
	"strings"
	"time"
)

// CodigoParceiro monta o código sequencial por tipo de parceiro.
// Ex.: tipo "D2D" com 0 parceiros existentes -> "D2D1001".
func CodigoParceiro(tipoParceiro string, existentes int64) string {
	return fmt.Sprintf("%s%d", tipoParceiro, 1001+existentes)
}

// CodigoVenda monta o código de uma venda: 3 primeiras letras do nome do
// parceiro em maiúsculas (completadas com espaço se o nome for mais curto),
// sequência de 4 dígitos (contagem do mês + 1) e mês da venda em 2 dígitos.
// Ex.: "Albuquerque", 0 vendas no mês, data em março -> "ALB000103".
func CodigoVenda(nomeParceiro string, dataVenda time.Time, vendasNoMes int64) string {
	// o prefixo conta caracteres, não bytes, para nomes com acentos
	prefixo := []rune(strings.ToUpper(nomeParceiro))
	if len(prefixo) >= 3 {
		prefixo = prefixo[:3]
	}
	for len(prefixo) < 3 {
		prefixo = append(prefixo, ' ')
	}
	return fmt.Sprintf("%s%04d%02d", string(prefixo), vendasNoMes+1, int(dataVenda.Month()))
}

// CodigoVendaSentinela é o código de recuperação usado quando o parceiro da
// venda não pôde ser resolvido: prefixo XXX com a mesma sequência mensal, para
// que várias vendas órfãs no mês não colidam no índice único. Não é um código
// de negócio válido; sinaliza uma referência quebrada que deve ser tratada
// pelo back-office.
func CodigoVendaSentinela(agora time.Time, vendasNoMes int64) string {
	return fmt.Sprintf("XXX%04d%02d", vendasNoMes+1, int(agora.Month()))
}

// LimitesDoMes devolve [início do mês, início do mês seguinte) da data, no
// fuso da própria data, para a contagem mensal de vendas.
func LimitesDoMes(data time.Time) (time.Time, time.Time) {
	inicio := time.Date(data.Year(), data.Month(), 1, 0, 0, 0, 0, data.Location())
	return inicio, inicio.AddDate(0, 1, 0)
}

// ChaveMensal identifica o balde (parceiro, mês) usado para serializar a
// geração de códigos de venda.
func ChaveMensal(parceiroID uint, data time.Time) string {
	return fmt.Sprintf("venda:%d:%s", parceiroID, data.Format("2006-01"))
}

// ChaveTipoParceiro identifica o balde de serialização da geração de códigos
// de parceiro.
func ChaveTipoParceiro(tipoParceiro string) string {
	return "tipo:" + tipoParceiro
}
