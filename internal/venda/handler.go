package venda

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/MPGrupo/api-parceiros/internal/alerta"
	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/models"
	"github.com/MPGrupo/api-parceiros/internal/notificacao"
	"github.com/MPGrupo/api-parceiros/internal/parceiro"
	"github.com/MPGrupo/api-parceiros/internal/usuario"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarVendaDTO struct {
	Data             string  `json:"data"`
	ParceiroID       uint    `json:"parceiroId"`
	OperadoraID      uint    `json:"operadoraId"`
	Ambito           string  `json:"ambito"`
	TipoEnergia      string  `json:"tipoEnergia"`
	TipoCliente      string  `json:"tipoCliente"`
	NomeCliente      string  `json:"nomeCliente"`
	NIFCliente       string  `json:"nifCliente"`
	ContactoCliente  string  `json:"contactoCliente"`
	EmailCliente     string  `json:"emailCliente"`
	IBANCliente      string  `json:"ibanCliente"`
	MoradaInstalacao string  `json:"moradaInstalacao"`
	TipoServico      string  `json:"tipoServico"`
	ValorMensal      float64 `json:"valorMensal"`
	Requisicao       string  `json:"requisicao"`
	CPE              string  `json:"cpe"`
	Potencia         string  `json:"potencia"`
	TipoEntrada      string  `json:"tipoEntrada"`
	CUI              string  `json:"cui"`
	Escalao          string  `json:"escalao"`
	Observacoes      string  `json:"observacoes"`
}

type atualizarVendaDTO struct {
	Status            *string  `json:"status"`
	DataStatus        *string  `json:"dataStatus"`
	Requisicao        *string  `json:"requisicao"`
	PagaPelaOperadora *bool    `json:"pagaPelaOperadora"`
	DataPagamento     *string  `json:"dataPagamento"`
	Observacoes       *string  `json:"observacoes"`
	Comissao          *float64 `json:"comissao"`
}

type adicionarNotaDTO struct {
	Conteudo string `json:"conteudo"`
}

type anexarDocumentoDTO struct {
	Nome string `json:"nome"`
	URL  string `json:"url"`
}

// Handler gerencia rotas de vendas
type Handler struct {
	DB        *gorm.DB
	Servico   *Servico
	Alertas   alerta.Repository
	Usuarios  usuario.Repository
	Parceiros parceiro.Repository
}

// NewHandler cria um novo Handler de vendas
func NewHandler(db *gorm.DB, servico *Servico) *Handler {
	return &Handler{
		DB:        db,
		Servico:   servico,
		Alertas:   alerta.NewRepository(),
		Usuarios:  usuario.NewRepository(),
		Parceiros: parceiro.NewRepository(),
	}
}

func parseData(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// CriarVenda regista uma venda: validação, código, comissão e estado inicial
// acontecem no serviço; aqui ficam a descodificação, os códigos HTTP e o
// alerta de nova venda.
func (h *Handler) CriarVenda(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	var dto criarVendaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	data, err := parseData(dto.Data)
	if err != nil {
		http.Error(w, "data inválida", http.StatusBadRequest)
		return
	}

	input := CriarVendaInput{
		Data:             data,
		ParceiroID:       dto.ParceiroID,
		OperadoraID:      dto.OperadoraID,
		Ambito:           dto.Ambito,
		TipoEnergia:      dto.TipoEnergia,
		TipoCliente:      dto.TipoCliente,
		NomeCliente:      dto.NomeCliente,
		NIFCliente:       dto.NIFCliente,
		ContactoCliente:  dto.ContactoCliente,
		EmailCliente:     dto.EmailCliente,
		IBANCliente:      dto.IBANCliente,
		MoradaInstalacao: dto.MoradaInstalacao,
		TipoServico:      dto.TipoServico,
		ValorMensal:      dto.ValorMensal,
		Requisicao:       dto.Requisicao,
		CPE:              dto.CPE,
		Potencia:         dto.Potencia,
		TipoEntrada:      dto.TipoEntrada,
		CUI:              dto.CUI,
		Escalao:          dto.Escalao,
		Observacoes:      dto.Observacoes,
	}

	v, err := h.Servico.Criar(input, userID, papel)
	switch {
	case err == nil:
	case errors.Is(err, ErrRequisicaoDuplicada):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, ErrDataFutura),
		errors.Is(err, ErrNIFInvalido),
		errors.Is(err, ErrCPEInvalido),
		errors.Is(err, ErrCUIInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		http.Error(w, "erro ao criar venda", http.StatusInternalServerError)
		return
	}

	h.criarAlerta(r, alerta.TipoNovaVenda, v,
		fmt.Sprintf("Nova venda registada: %s - %s", v.Codigo, v.NomeParceiro))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

// ListarVendas devolve as vendas visíveis ao utilizador: parceiros veem as do
// seu parceiro, comerciais de parceiro as que criaram, a equipa interna todas.
func (h *Handler) ListarVendas(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	filtro := Filtro{Status: r.URL.Query().Get("status")}

	switch papel {
	case auth.PapelParceiro:
		p, err := h.Parceiros.BuscarPorUserID(h.DB, userID)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]Venda{})
			return
		}
		filtro.ParceiroID = p.ID
	case auth.PapelParceiroComercial:
		filtro.CriadaPorUserID = userID
	}

	vendas, err := h.Servico.Vendas.Listar(h.DB, filtro)
	if err != nil {
		http.Error(w, "erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendas)
}

// BuscarPorID retorna uma venda pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	v, err := h.Servico.Vendas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "venda não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// AtualizarVenda aplica alterações de estado/pagamento/requisição. Parceiros
// não atualizam vendas; a comissão manual é exclusiva do admin. A entrada em
// Concluido ou Ativo dispara o alerta de mudança de estado.
func (h *Handler) AtualizarVenda(w http.ResponseWriter, r *http.Request) {
	_, papel := auth.UsuarioDoContexto(r.Context())
	if auth.PapelDeParceiro(papel) {
		http.Error(w, "parceiros não podem atualizar vendas", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Vendas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "venda não encontrada", http.StatusNotFound)
		return
	}

	var dto atualizarVendaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if dto.Comissao != nil && papel != auth.PapelAdmin {
		http.Error(w, "apenas o admin altera a comissão", http.StatusForbidden)
		return
	}

	var evento *EventoNotificacao
	if dto.Status != nil && *dto.Status != v.Status {
		ev, ok := Transicao(v.Status, *dto.Status)
		if !ok {
			http.Error(w, ErrStatusInvalido.Error(), http.StatusBadRequest)
			return
		}
		evento = ev
		v.Status = *dto.Status
		agora := time.Now()
		v.DataStatus = &agora
	}

	if dto.Requisicao != nil && *dto.Requisicao != v.Requisicao {
		duplicada, err := h.Servico.Vendas.ExisteRequisicao(h.DB, *dto.Requisicao, v.Ambito, v.ID)
		if err != nil {
			http.Error(w, "erro ao verificar requisição", http.StatusInternalServerError)
			return
		}
		if duplicada {
			http.Error(w, ErrRequisicaoDuplicada.Error(), http.StatusConflict)
			return
		}
		v.Requisicao = *dto.Requisicao
	}
	if dto.PagaPelaOperadora != nil {
		v.PagaPelaOperadora = *dto.PagaPelaOperadora
	}
	if dto.DataPagamento != nil {
		if t, err := parseData(*dto.DataPagamento); err == nil {
			v.DataPagamento = &t
		}
	}
	if dto.DataStatus != nil {
		if t, err := parseData(*dto.DataStatus); err == nil {
			v.DataStatus = &t
		}
	}
	if dto.Observacoes != nil {
		v.Observacoes = *dto.Observacoes
	}
	if dto.Comissao != nil {
		v.Comissao = *dto.Comissao
	}

	if err := h.Servico.Vendas.Salvar(h.DB, v); err != nil {
		http.Error(w, "erro ao atualizar venda", http.StatusInternalServerError)
		return
	}

	if evento != nil {
		h.criarAlerta(r, alerta.TipoMudancaStatus, v,
			fmt.Sprintf("Status alterado para %s: %s", evento.Para, v.Codigo))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// AdicionarNota acrescenta uma nota ao histórico (append-only) da venda
func (h *Handler) AdicionarNota(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dto adicionarNotaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Conteudo == "" {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Vendas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "venda não encontrada", http.StatusNotFound)
		return
	}

	autor := "sistema"
	if u, err := h.Usuarios.BuscarPorID(h.DB, userID); err == nil {
		autor = u.Nome
	}

	nota := models.NovaNota(dto.Conteudo, autor, papel)
	v.Notas = append(v.Notas, nota)

	if err := h.Servico.Vendas.Salvar(h.DB, v); err != nil {
		http.Error(w, "erro ao guardar nota", http.StatusInternalServerError)
		return
	}

	h.criarAlerta(r, alerta.TipoNotaAdicionada, v,
		fmt.Sprintf("Nova nota adicionada em %s por %s", v.Codigo, autor))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(nota)
}

// AnexarDocumento acrescenta metadados de um anexo à venda
func (h *Handler) AnexarDocumento(w http.ResponseWriter, r *http.Request) {
	_, papel := auth.UsuarioDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dto anexarDocumentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Vendas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "venda não encontrada", http.StatusNotFound)
		return
	}

	doc := models.NovoDocumento(dto.Nome, dto.URL, papel)
	v.Documentos = append(v.Documentos, doc)

	if err := h.Servico.Vendas.Salvar(h.DB, v); err != nil {
		http.Error(w, "erro ao anexar documento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

// RecalcularComissao reaplica o cálculo de comissão (apenas admin; a comissão
// nunca é recalculada implicitamente em edições)
func (h *Handler) RecalcularComissao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Vendas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "venda não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Servico.RecalcularComissao(v); err != nil {
		http.Error(w, "erro ao recalcular comissão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// criarAlerta persiste o alerta para o parceiro, o criador da venda e a
// equipa interna (excluindo quem agiu) e dispara o webhook externo sem
// bloquear a resposta.
func (h *Handler) criarAlerta(r *http.Request, tipo string, v *Venda, mensagem string) {
	userID, _ := auth.UsuarioDoContexto(r.Context())

	destinatarios := map[uint]bool{}
	if p, err := h.Parceiros.BuscarPorID(h.DB, v.ParceiroID); err == nil && p.UserID != nil {
		destinatarios[*p.UserID] = true
	}
	if v.CriadaPorUserID != 0 {
		destinatarios[v.CriadaPorUserID] = true
	}
	if internos, err := h.Usuarios.ListarPorPapeis(h.DB, []string{auth.PapelAdmin, auth.PapelBackOffice}); err == nil {
		for _, u := range internos {
			destinatarios[u.ID] = true
		}
	}
	delete(destinatarios, userID)

	ids := make([]uint, 0, len(destinatarios))
	for id := range destinatarios {
		ids = append(ids, id)
	}

	nomeAutor := ""
	if u, err := h.Usuarios.BuscarPorID(h.DB, userID); err == nil {
		nomeAutor = u.Nome
	}

	a := alerta.Alerta{
		Tipo:          tipo,
		VendaID:       v.ID,
		CodigoVenda:   v.Codigo,
		Mensagem:      mensagem,
		Destinatarios: ids,
		LidaPor:       []uint{},
		CriadaPorID:   userID,
		CriadaPorNome: nomeAutor,
	}
	if err := h.Alertas.Salvar(h.DB, &a); err != nil {
		log.Printf("Erro ao criar alerta da venda %s: %v", v.Codigo, err)
		return
	}

	go notificacao.EnviarAlertaVenda(notificacao.AlertaVenda{
		Tipo:        tipo,
		CodigoVenda: v.Codigo,
		NomeCliente: v.NomeCliente,
		NIFCliente:  v.NIFCliente,
		Ambito:      v.Ambito,
		Mensagem:    mensagem,
	})
}
