package alerta

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MPGrupo/api-parceiros/internal/auth"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de alertas
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo Handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// ListarAlertas devolve os alertas do utilizador autenticado. Com
// ?arquivadas=true devolve o arquivo.
func (h *Handler) ListarAlertas(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UsuarioDoContexto(r.Context())
	arquivadas := r.URL.Query().Get("arquivadas") == "true"

	alertas, err := h.Repository.ListarParaUsuario(h.DB, userID, arquivadas)
	if err != nil {
		http.Error(w, "erro ao listar alertas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alertas)
}

// MarcarComoLida regista a leitura do alerta pelo utilizador autenticado
func (h *Handler) MarcarComoLida(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UsuarioDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "alerta não encontrado", http.StatusNotFound)
		return
	}

	for _, lido := range a.LidaPor {
		if lido == userID {
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	a.LidaPor = append(a.LidaPor, userID)

	if err := h.Repository.Salvar(h.DB, a); err != nil {
		http.Error(w, "erro ao atualizar alerta", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Arquivar move o alerta para o arquivo
func (h *Handler) Arquivar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "alerta não encontrado", http.StatusNotFound)
		return
	}

	a.Arquivada = true
	if err := h.Repository.Salvar(h.DB, a); err != nil {
		http.Error(w, "erro ao arquivar alerta", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
