package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token                 string  `json:"token"`
	Usuario               Usuario `json:"usuario"`
	PrecisaRedefinirSenha bool    `json:"precisaRedefinirSenha"`
}

type criarUsuarioRequest struct {
	Nome       string `json:"nome"`
	Email      string `json:"email"`
	Senha      string `json:"senha"`
	Papel      string `json:"papel"`
	Funcao     string `json:"funcao"`
	ParceiroID *uint  `json:"parceiroId"`
}

type alterarSenhaRequest struct {
	SenhaAtual       string `json:"senhaAtual"`
	NovaSenha        string `json:"novaSenha"`
	ConfirmacaoSenha string `json:"confirmacaoSenha"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.Email, user.Papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		Token:                 token,
		Usuario:               *user,
		PrecisaRedefinirSenha: user.PrecisaRedefinirSenha,
	})
}

// CriarUsuario cadastra novo utilizador (apenas admin). Sem senha no payload,
// gera uma senha inicial forte e devolve-a na resposta para comunicação ao
// utilizador.
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		http.Error(w, "email já registado", http.StatusBadRequest)
		return
	}

	senha := req.Senha
	senhaGerada := false
	if senha == "" {
		var err error
		senha, err = utils.GerarSenhaForte(8)
		if err != nil {
			http.Error(w, "erro ao gerar senha inicial", http.StatusInternalServerError)
			return
		}
		senhaGerada = true
	} else if !utils.ValidarSenhaForte(senha) {
		http.Error(w, "senha fraca: mínimo 8 caracteres, uma maiúscula, um dígito e um caractere especial", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:                  req.Nome,
		Email:                 req.Email,
		Papel:                 req.Papel,
		Funcao:                req.Funcao,
		ParceiroID:            req.ParceiroID,
		Senha:                 hash,
		PrecisaRedefinirSenha: true,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar utilizador", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{"usuario": u}
	if senhaGerada {
		resp["senhaInicial"] = senha
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// AlterarSenha troca a senha do utilizador autenticado
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UsuarioDoContexto(r.Context())

	var req alterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if req.NovaSenha != req.ConfirmacaoSenha {
		http.Error(w, "confirmação de senha não coincide", http.StatusBadRequest)
		return
	}
	if !utils.ValidarSenhaForte(req.NovaSenha) {
		http.Error(w, "senha fraca: mínimo 8 caracteres, uma maiúscula, um dígito e um caractere especial", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "utilizador não encontrado", http.StatusNotFound)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	user.Senha = hash
	user.PrecisaRedefinirSenha = false
	if err := h.Repository.Salvar(h.DB, user); err != nil {
		http.Error(w, "erro ao atualizar senha", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("senha alterada com sucesso"))
}

// ListarUsuarios retorna todos os utilizadores (apenas admin)
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar utilizadores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(usuarios)
}

// DeletarUsuario remove um utilizador (apenas admin)
func (h *Handler) DeletarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir utilizador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("utilizador excluído com sucesso"))
}

// Me retorna o utilizador autenticado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UsuarioDoContexto(r.Context())

	user, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "utilizador não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
