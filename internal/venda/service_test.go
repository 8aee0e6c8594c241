package venda

import (
	"testing"
	"time"

	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/codigo"
	"github.com/MPGrupo/api-parceiros/internal/comissao"
	"github.com/MPGrupo/api-parceiros/internal/operadora"
	"github.com/MPGrupo/api-parceiros/internal/parceiro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeVendas simula o repositório de vendas em memória. Quando
// duplicadosRestantes > 0, Criar devolve gorm.ErrDuplicatedKey e incrementa a
// contagem mensal, como se outro processo tivesse inserido entretanto.
type fakeVendas struct {
	criadas []*Venda
	salvas  []*Venda

	noMes              int64
	naOperadora        int64
	requisicaoJaExiste bool

	duplicadosRestantes int

	ultimoTipoServico string
	ultimoTipoEnergia string
	ultimoExcluirID   uint
}

func (f *fakeVendas) Criar(db *gorm.DB, v *Venda) error {
	if f.duplicadosRestantes > 0 {
		f.duplicadosRestantes--
		f.noMes++
		return gorm.ErrDuplicatedKey
	}
	f.criadas = append(f.criadas, v)
	return nil
}

func (f *fakeVendas) Salvar(db *gorm.DB, v *Venda) error {
	f.salvas = append(f.salvas, v)
	return nil
}

func (f *fakeVendas) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVendas) Listar(db *gorm.DB, filtro Filtro) ([]Venda, error) {
	return nil, nil
}

func (f *fakeVendas) ContarDoMes(db *gorm.DB, parceiroID uint, inicio, fim time.Time) (int64, error) {
	return f.noMes, nil
}

func (f *fakeVendas) ContarNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoServico string, excluirID uint) (int64, error) {
	f.ultimoTipoServico = tipoServico
	f.ultimoExcluirID = excluirID
	return f.naOperadora, nil
}

func (f *fakeVendas) ContarEnergiaNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoEnergia string, excluirID uint) (int64, error) {
	f.ultimoTipoEnergia = tipoEnergia
	f.ultimoExcluirID = excluirID
	return f.naOperadora, nil
}

func (f *fakeVendas) ExisteRequisicao(db *gorm.DB, requisicao, ambito string, excluirID uint) (bool, error) {
	return f.requisicaoJaExiste, nil
}

type fakeParceiros struct {
	p   *parceiro.Parceiro
	err error
}

func (f *fakeParceiros) Salvar(db *gorm.DB, p *parceiro.Parceiro) error { return nil }
func (f *fakeParceiros) BuscarPorID(db *gorm.DB, id uint) (*parceiro.Parceiro, error) {
	return f.p, f.err
}
func (f *fakeParceiros) BuscarPorUserID(db *gorm.DB, userID uint) (*parceiro.Parceiro, error) {
	return f.p, f.err
}
func (f *fakeParceiros) ListarTodos(db *gorm.DB) ([]parceiro.Parceiro, error) { return nil, nil }
func (f *fakeParceiros) ContarPorTipo(db *gorm.DB, tipo string) (int64, error) {
	return 0, nil
}
func (f *fakeParceiros) Atualizar(db *gorm.DB, id uint, novosDados *parceiro.Parceiro) (*parceiro.Parceiro, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeParceiros) Deletar(db *gorm.DB, id uint) error { return nil }

type fakeOperadoras struct {
	o   *operadora.Operadora
	err error
}

func (f *fakeOperadoras) Salvar(db *gorm.DB, o *operadora.Operadora) error { return nil }
func (f *fakeOperadoras) BuscarPorID(db *gorm.DB, id uint) (*operadora.Operadora, error) {
	return f.o, f.err
}
func (f *fakeOperadoras) ListarAtivas(db *gorm.DB, incluirOcultas bool) ([]operadora.Operadora, error) {
	return nil, nil
}
func (f *fakeOperadoras) Deletar(db *gorm.DB, id uint) error { return nil }

var agoraTeste = time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

func operadoraTelecom() *operadora.Operadora {
	return &operadora.Operadora{
		Nome:   "NOS",
		Ambito: comissao.AmbitoTelecomunicacoes,
		ConfiguracaoComissao: comissao.Config{
			comissao.ClienteParticular: {
				PorServico: map[string]comissao.Escaloes{
					"M3": {
						{MinVendas: 0, Multiplicador: 1.5},
						{MinVendas: 3, Multiplicador: 2.0},
					},
				},
			},
		},
	}
}

func novoServicoTeste(vendas *fakeVendas, parceiros *fakeParceiros, operadoras *fakeOperadoras) *Servico {
	return &Servico{
		Vendas:     vendas,
		Parceiros:  parceiros,
		Operadoras: operadoras,
		Tranca:     codigo.NovaTrancaPorChave(),
		Agora:      func() time.Time { return agoraTeste },
	}
}

func inputTelecom() CriarVendaInput {
	return CriarVendaInput{
		Data:        time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		ParceiroID:  1,
		OperadoraID: 2,
		Ambito:      comissao.AmbitoTelecomunicacoes,
		TipoCliente: comissao.ClienteParticular,
		NomeCliente: "Cliente Exemplo",
		NIFCliente:  "123456789",
		TipoServico: "M3",
		ValorMensal: 30,
		Requisicao:  "REQ-1",
	}
}

func TestCriarValidaEntrada(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: operadoraTelecom()})

	futura := inputTelecom()
	futura.Data = agoraTeste.Add(24 * time.Hour)
	_, err := s.Criar(futura, 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, ErrDataFutura)

	nif := inputTelecom()
	nif.NIFCliente = "501234561"
	_, err = s.Criar(nif, 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, ErrNIFInvalido)

	cpe := inputTelecom()
	cpe.CPE = "PT0001123456789012AB"
	_, err = s.Criar(cpe, 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, ErrCPEInvalido)

	cui := inputTelecom()
	cui.CUI = "PT16123XY"
	_, err = s.Criar(cui, 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, ErrCUIInvalido)

	vendas.requisicaoJaExiste = true
	_, err = s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, ErrRequisicaoDuplicada)

	assert.Empty(t, vendas.criadas, "nenhuma venda deve ser persistida")
}

func TestCriarGeraCodigoEComissao(t *testing.T) {
	vendas := &fakeVendas{noMes: 2, naOperadora: 3}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: operadoraTelecom()})

	v, err := s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	require.NoError(t, err)
	require.Len(t, vendas.criadas, 1)

	assert.Equal(t, "ALB000303", v.Codigo, "terceira venda do mês de março")
	assert.Equal(t, 60.0, v.Comissao, "3 vendas anteriores atingem o multiplicador 2.0")
	assert.Equal(t, StatusPendente, v.Status, "equipa interna cria já em Pendente")
	assert.Equal(t, "Albuquerque", v.NomeParceiro)
	assert.Equal(t, "NOS", v.NomeOperadora)
	assert.Equal(t, uint(10), v.CriadaPorUserID)
}

func TestCriarPorParceiroEntraEmParaRegisto(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: operadoraTelecom()})

	v, err := s.Criar(inputTelecom(), 10, auth.PapelParceiro)
	require.NoError(t, err)
	assert.Equal(t, StatusParaRegisto, v.Status)
}

func TestCriarNormalizaCPE(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{err: gorm.ErrRecordNotFound})

	input := inputTelecom()
	input.Ambito = comissao.AmbitoEnergia
	input.Requisicao = ""
	input.CPE = " pt0002123456789012ab "

	v, err := s.Criar(input, 10, auth.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, "PT0002123456789012AB", v.CPE)
}

func TestCriarSemParceiroUsaCodigoSentinela(t *testing.T) {
	vendas := &fakeVendas{naOperadora: 3}
	s := novoServicoTeste(vendas, &fakeParceiros{err: gorm.ErrRecordNotFound}, &fakeOperadoras{o: operadoraTelecom()})

	v, err := s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	require.NoError(t, err)
	require.Len(t, vendas.criadas, 1)

	assert.Equal(t, "XXX000103", v.Codigo)
	assert.Equal(t, 60.0, v.Comissao, "comissão calcula-se mesmo sem parceiro resolvido")
	assert.Empty(t, v.NomeParceiro)
}

func TestCriarSemOperadoraDaComissaoZero(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{err: gorm.ErrRecordNotFound})

	v, err := s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	require.NoError(t, err)
	require.Len(t, vendas.criadas, 1)

	assert.Equal(t, "ALB000103", v.Codigo)
	assert.Equal(t, 0.0, v.Comissao)
	assert.Empty(t, v.NomeOperadora)
}

func TestCriarRecontaAposCodigoDuplicado(t *testing.T) {
	vendas := &fakeVendas{noMes: 2, duplicadosRestantes: 1}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{err: gorm.ErrRecordNotFound})

	v, err := s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	require.NoError(t, err)
	require.Len(t, vendas.criadas, 1)

	// primeira tentativa geraria ALB000303; a recontagem avança a sequência
	assert.Equal(t, "ALB000403", v.Codigo)
}

func TestCriarDesisteAposSegundoDuplicado(t *testing.T) {
	vendas := &fakeVendas{duplicadosRestantes: 2}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{err: gorm.ErrRecordNotFound})

	_, err := s.Criar(inputTelecom(), 10, auth.PapelAdmin)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Empty(t, vendas.criadas)
}

func TestCriarTelecomSemServicoUsaM3(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: operadoraTelecom()})

	input := inputTelecom()
	input.TipoServico = ""
	_, err := s.Criar(input, 10, auth.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, "M3", vendas.ultimoTipoServico)
}

func TestCriarEnergiaContaPorTipo(t *testing.T) {
	vendas := &fakeVendas{}
	op := &operadora.Operadora{Nome: "EDP", Ambito: comissao.AmbitoEnergia, TipoEnergia: operadora.EnergiaGas}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: op})

	input := inputTelecom()
	input.Ambito = comissao.AmbitoEnergia
	input.Requisicao = ""
	input.TipoEnergia = "" // recorre ao tipo da operadora

	_, err := s.Criar(input, 10, auth.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, operadora.EnergiaGas, vendas.ultimoTipoEnergia)
}

func TestRecalcularComissaoExcluiAPropriaVenda(t *testing.T) {
	vendas := &fakeVendas{naOperadora: 3}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{o: operadoraTelecom()})

	v := &Venda{
		Ambito:      comissao.AmbitoTelecomunicacoes,
		TipoCliente: comissao.ClienteParticular,
		TipoServico: "M3",
		ValorMensal: 30,
		ParceiroID:  1,
		OperadoraID: 2,
		Comissao:    45,
	}
	v.ID = 99

	require.NoError(t, s.RecalcularComissao(v))
	assert.Equal(t, uint(99), vendas.ultimoExcluirID)
	assert.Equal(t, 60.0, v.Comissao)
	require.Len(t, vendas.salvas, 1)
}

func TestRecalcularComissaoSemOperadoraZera(t *testing.T) {
	vendas := &fakeVendas{}
	s := novoServicoTeste(vendas, &fakeParceiros{p: &parceiro.Parceiro{Nome: "Albuquerque"}}, &fakeOperadoras{err: gorm.ErrRecordNotFound})

	v := &Venda{Comissao: 45}
	require.NoError(t, s.RecalcularComissao(v))
	assert.Equal(t, 0.0, v.Comissao)
	require.Len(t, vendas.salvas, 1)
}
