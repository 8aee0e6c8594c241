package venda

import (
	"errors"
	"time"

	"github.com/MPGrupo/api-parceiros/internal/codigo"
	"github.com/MPGrupo/api-parceiros/internal/comissao"
	"github.com/MPGrupo/api-parceiros/internal/operadora"
	"github.com/MPGrupo/api-parceiros/internal/parceiro"
	"github.com/MPGrupo/api-parceiros/internal/validacao"
	"gorm.io/gorm"
)

// Erros de validação da criação de vendas, devolvidos ao chamador com a razão
// específica.
var (
	ErrDataFutura          = errors.New("não é possível criar vendas com data futura")
	ErrNIFInvalido         = errors.New("NIF do cliente inválido")
	ErrCPEInvalido         = errors.New("CPE com formato inválido (PT0002 + 12 dígitos + 2 letras)")
	ErrCUIInvalido         = errors.New("CUI com formato inválido (PT16 + 15 dígitos + 2 letras)")
	ErrRequisicaoDuplicada = errors.New("número de requisição já existe no sistema")
	ErrStatusInvalido      = errors.New("status de venda inválido")
)

// CriarVendaInput são os dados de entrada da criação de uma venda.
type CriarVendaInput struct {
	Data        time.Time
	ParceiroID  uint
	OperadoraID uint
	Ambito      string
	TipoEnergia string
	TipoCliente string

	NomeCliente      string
	NIFCliente       string
	ContactoCliente  string
	EmailCliente     string
	IBANCliente      string
	MoradaInstalacao string

	TipoServico string
	ValorMensal float64
	Requisicao  string

	CPE         string
	Potencia    string
	TipoEntrada string
	CUI         string
	Escalao     string

	Observacoes string
}

// Servico sequencia a criação de vendas: validação, código, comissão, estado
// inicial e inserção, nesta ordem. As contagens de código e de escalão são
// lidas dentro da mesma secção crítica (parceiro+mês), para que criações
// concorrentes não partilhem contagens.
type Servico struct {
	DB         *gorm.DB
	Vendas     Repository
	Parceiros  parceiro.Repository
	Operadoras operadora.Repository
	Tranca     *codigo.TrancaPorChave
	Agora      func() time.Time
}

// NewServico cria o serviço com os repositórios reais.
func NewServico(db *gorm.DB, tranca *codigo.TrancaPorChave) *Servico {
	return &Servico{
		DB:         db,
		Vendas:     NewRepository(),
		Parceiros:  parceiro.NewRepository(),
		Operadoras: operadora.NewRepository(),
		Tranca:     tranca,
		Agora:      time.Now,
	}
}

// Criar valida a entrada, gera o código e a comissão e persiste a venda.
func (s *Servico) Criar(input CriarVendaInput, criadorID uint, papelCriador string) (*Venda, error) {
	if input.Data.After(s.Agora()) {
		return nil, ErrDataFutura
	}
	if input.NIFCliente != "" && !validacao.ValidarNIF(input.NIFCliente) {
		return nil, ErrNIFInvalido
	}
	if input.CPE != "" {
		if !validacao.ValidarCPE(input.CPE) {
			return nil, ErrCPEInvalido
		}
		input.CPE = validacao.NormalizarCodigo(input.CPE)
	}
	if input.CUI != "" {
		if !validacao.ValidarCUI(input.CUI) {
			return nil, ErrCUIInvalido
		}
		input.CUI = validacao.NormalizarCodigo(input.CUI)
	}
	if input.Ambito == comissao.AmbitoTelecomunicacoes && input.Requisicao != "" {
		duplicada, err := s.Vendas.ExisteRequisicao(s.DB, input.Requisicao, input.Ambito, 0)
		if err != nil {
			return nil, err
		}
		if duplicada {
			return nil, ErrRequisicaoDuplicada
		}
	}

	v := &Venda{
		Data:             input.Data,
		ParceiroID:       input.ParceiroID,
		CriadaPorUserID:  criadorID,
		Ambito:           input.Ambito,
		TipoEnergia:      input.TipoEnergia,
		TipoCliente:      input.TipoCliente,
		NomeCliente:      input.NomeCliente,
		NIFCliente:       input.NIFCliente,
		ContactoCliente:  input.ContactoCliente,
		EmailCliente:     input.EmailCliente,
		IBANCliente:      input.IBANCliente,
		MoradaInstalacao: input.MoradaInstalacao,
		OperadoraID:      input.OperadoraID,
		TipoServico:      input.TipoServico,
		ValorMensal:      input.ValorMensal,
		Requisicao:       input.Requisicao,
		CPE:              input.CPE,
		Potencia:         input.Potencia,
		TipoEntrada:      input.TipoEntrada,
		CUI:              input.CUI,
		Escalao:          input.Escalao,
		Status:           StatusInicial(papelCriador),
		Observacoes:      input.Observacoes,
	}

	// Referência quebrada de parceiro degrada para o código sentinela em vez
	// de falhar a operação; o código marca a venda para revisão do back-office.
	p, err := s.Parceiros.BuscarPorID(s.DB, input.ParceiroID)
	parceiroResolvido := err == nil
	if parceiroResolvido {
		v.NomeParceiro = p.Nome
	}

	// Operadora em falta cai na regra "sem configuração -> comissão 0".
	op, err := s.Operadoras.BuscarPorID(s.DB, input.OperadoraID)
	operadoraResolvida := err == nil
	if operadoraResolvida {
		v.NomeOperadora = op.Nome
	}

	if !parceiroResolvido {
		// A sequência mensal do sentinela percorre o mesmo caminho, para que
		// várias vendas órfãs no mês não colidam no índice único.
		agora := s.Agora()
		err = s.criarComSequencia(v, input, op, operadoraResolvida, agora, func(vendasNoMes int64) string {
			return codigo.CodigoVendaSentinela(agora, vendasNoMes)
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	err = s.criarComSequencia(v, input, op, operadoraResolvida, input.Data, func(vendasNoMes int64) string {
		return codigo.CodigoVenda(p.Nome, input.Data, vendasNoMes)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// criarComSequencia executa contar -> gerar código -> calcular comissão ->
// inserir dentro da tranca do balde (parceiro, mês). Ambas as contagens são
// lidas na mesma secção crítica; um conflito de unicidade (contagem invalidada
// fora deste processo) é tratado recontando e tentando uma segunda vez.
func (s *Servico) criarComSequencia(v *Venda, input CriarVendaInput, op *operadora.Operadora, operadoraResolvida bool, data time.Time, gerarCodigo func(vendasNoMes int64) string) error {
	chave := codigo.ChaveMensal(input.ParceiroID, data)
	return s.Tranca.Com(chave, func() error {
		for tentativa := 0; tentativa < 2; tentativa++ {
			inicio, fim := codigo.LimitesDoMes(data)
			vendasNoMes, err := s.Vendas.ContarDoMes(s.DB, input.ParceiroID, inicio, fim)
			if err != nil {
				return err
			}
			v.Codigo = gerarCodigo(vendasNoMes)

			if operadoraResolvida {
				contagem, err := s.contagemAnterior(input, op, 0)
				if err != nil {
					return err
				}
				v.Comissao = comissao.Calcular(op.ConfiguracaoComissao, s.dadosComissao(input, op), contagem)
			}

			err = s.Vendas.Criar(s.DB, v)
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
		}
		return gorm.ErrDuplicatedKey
	})
}

// RecalcularComissao reaplica o cálculo a uma venda existente, excluindo-a da
// contagem de vendas anteriores. Só é invocado explicitamente (admin).
func (s *Servico) RecalcularComissao(v *Venda) error {
	op, err := s.Operadoras.BuscarPorID(s.DB, v.OperadoraID)
	if err != nil {
		v.Comissao = 0
		return s.Vendas.Salvar(s.DB, v)
	}

	input := CriarVendaInput{
		ParceiroID:  v.ParceiroID,
		OperadoraID: v.OperadoraID,
		Ambito:      v.Ambito,
		TipoEnergia: v.TipoEnergia,
		TipoCliente: v.TipoCliente,
		TipoServico: v.TipoServico,
		ValorMensal: v.ValorMensal,
	}
	contagem, err := s.contagemAnterior(input, op, v.ID)
	if err != nil {
		return err
	}
	v.Comissao = comissao.Calcular(op.ConfiguracaoComissao, s.dadosComissao(input, op), contagem)
	return s.Vendas.Salvar(s.DB, v)
}

// contagemAnterior devolve a contagem de vendas já persistidas do parceiro na
// operadora, com o escopo adicional do âmbito: tipo de serviço em
// telecomunicações, tipo de energia em energia.
func (s *Servico) contagemAnterior(input CriarVendaInput, op *operadora.Operadora, excluirID uint) (int64, error) {
	switch input.Ambito {
	case comissao.AmbitoTelecomunicacoes:
		return s.Vendas.ContarNaOperadora(s.DB, input.ParceiroID, input.OperadoraID, s.tipoServicoEfetivo(input), excluirID)
	case comissao.AmbitoEnergia:
		return s.Vendas.ContarEnergiaNaOperadora(s.DB, input.ParceiroID, input.OperadoraID, s.tipoEnergiaEfetivo(input, op), excluirID)
	default:
		return s.Vendas.ContarNaOperadora(s.DB, input.ParceiroID, input.OperadoraID, "", excluirID)
	}
}

func (s *Servico) dadosComissao(input CriarVendaInput, op *operadora.Operadora) comissao.DadosVenda {
	return comissao.DadosVenda{
		Ambito:      input.Ambito,
		TipoCliente: input.TipoCliente,
		TipoServico: s.tipoServicoEfetivo(input),
		TipoEnergia: s.tipoEnergiaEfetivo(input, op),
		ValorMensal: input.ValorMensal,
	}
}

// tipoServicoEfetivo aplica o serviço padrão M3 quando a venda de
// telecomunicações não o indica.
func (s *Servico) tipoServicoEfetivo(input CriarVendaInput) string {
	if input.Ambito != comissao.AmbitoTelecomunicacoes {
		return ""
	}
	if input.TipoServico == "" {
		return "M3"
	}
	return input.TipoServico
}

// tipoEnergiaEfetivo recorre ao tipo de energia da operadora e, em último
// caso, a eletricidade.
func (s *Servico) tipoEnergiaEfetivo(input CriarVendaInput, op *operadora.Operadora) string {
	if input.Ambito != comissao.AmbitoEnergia {
		return ""
	}
	if input.TipoEnergia != "" {
		return input.TipoEnergia
	}
	if op != nil && op.TipoEnergia != "" {
		return op.TipoEnergia
	}
	return operadora.EnergiaEletricidade
}
