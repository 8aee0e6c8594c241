package operadora

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MPGrupo/api-parceiros/internal/comissao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type operadoraRequest struct {
	Nome                 string          `json:"nome"`
	Ambito               string          `json:"ambito"`
	TipoEnergia          string          `json:"tipoEnergia"`
	ConfiguracaoComissao comissao.Config `json:"configuracaoComissao"`
}

// Handler gerencia rotas de operadoras
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo Handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func ambitoValido(a string) bool {
	switch a {
	case comissao.AmbitoTelecomunicacoes, comissao.AmbitoEnergia, comissao.AmbitoSolar, comissao.AmbitoDual:
		return true
	}
	return false
}

// CriarOperadora cadastra uma operadora (apenas admin)
func (h *Handler) CriarOperadora(w http.ResponseWriter, r *http.Request) {
	var req operadoraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !ambitoValido(req.Ambito) {
		http.Error(w, "âmbito inválido", http.StatusBadRequest)
		return
	}

	o := Operadora{
		Nome:                 req.Nome,
		Ambito:               req.Ambito,
		TipoEnergia:          req.TipoEnergia,
		Ativa:                true,
		ConfiguracaoComissao: req.ConfiguracaoComissao,
	}
	if err := h.Repository.Salvar(h.DB, &o); err != nil {
		http.Error(w, "erro ao salvar operadora", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(o)
}

// ListarOperadoras retorna as operadoras ativas. Com ?incluirOcultas=true
// inclui também as ocultas (visão da equipa interna).
func (h *Handler) ListarOperadoras(w http.ResponseWriter, r *http.Request) {
	incluirOcultas := r.URL.Query().Get("incluirOcultas") == "true"

	operadoras, err := h.Repository.ListarAtivas(h.DB, incluirOcultas)
	if err != nil {
		http.Error(w, "erro ao listar operadoras", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(operadoras)
}

// BuscarPorID retorna uma operadora pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "operadora não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

// AtualizarOperadora altera nome, âmbito e configuração de comissões. A
// configuração nova só afeta comissões de vendas futuras; as já calculadas
// não são recalculadas.
func (h *Handler) AtualizarOperadora(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "operadora não encontrada", http.StatusNotFound)
		return
	}

	var req operadoraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !ambitoValido(req.Ambito) {
		http.Error(w, "âmbito inválido", http.StatusBadRequest)
		return
	}

	o.Nome = req.Nome
	o.Ambito = req.Ambito
	o.TipoEnergia = req.TipoEnergia
	o.ConfiguracaoComissao = req.ConfiguracaoComissao

	if err := h.Repository.Salvar(h.DB, o); err != nil {
		http.Error(w, "erro ao atualizar operadora", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

// AlternarVisibilidade alterna o campo oculta da operadora
func (h *Handler) AlternarVisibilidade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "operadora não encontrada", http.StatusNotFound)
		return
	}

	o.Oculta = !o.Oculta
	if err := h.Repository.Salvar(h.DB, o); err != nil {
		http.Error(w, "erro ao atualizar operadora", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"oculta": o.Oculta})
}

// DeletarOperadora desativa a operadora (soft delete de negócio)
func (h *Handler) DeletarOperadora(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "operadora não encontrada", http.StatusNotFound)
		return
	}

	o.Ativa = false
	if err := h.Repository.Salvar(h.DB, o); err != nil {
		http.Error(w, "erro ao desativar operadora", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
