package parceiro

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/codigo"
	"github.com/MPGrupo/api-parceiros/internal/models"
	"github.com/MPGrupo/api-parceiros/internal/usuario"
	"github.com/MPGrupo/api-parceiros/internal/utils"
	"github.com/MPGrupo/api-parceiros/internal/validacao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarParceiroRequest struct {
	Tipo              string   `json:"tipo"`
	Nome              string   `json:"nome"`
	Email             string   `json:"email"`
	EmailsComunicacao []string `json:"emailsComunicacao"`
	Telefone          string   `json:"telefone"`
	PessoaContacto    string   `json:"pessoaContacto"`
	Rua               string   `json:"rua"`
	NumeroPorta       string   `json:"numeroPorta"`
	CodigoPostal      string   `json:"codigoPostal"`
	Localidade        string   `json:"localidade"`
	NIF               string   `json:"nif"`
	CRC               string   `json:"crc"`
	CriarAcesso       bool     `json:"criarAcesso"`
}

type anexarDocumentoRequest struct {
	Nome string `json:"nome"`
	URL  string `json:"url"`
}

// Handler encapsula DB, repository e a tranca de geração de códigos
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Tranca     *codigo.TrancaPorChave
	Usuarios   usuario.Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, tranca *codigo.TrancaPorChave) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Tranca:     tranca,
		Usuarios:   usuario.NewRepository(),
	}
}

// CriarParceiro cadastra um parceiro (equipa interna). O código sequencial é
// atribuído dentro da secção crítica do tipo, para que criações concorrentes
// do mesmo tipo não leiam a mesma contagem. Opcionalmente cria o acesso do
// parceiro com uma senha inicial gerada.
func (h *Handler) CriarParceiro(w http.ResponseWriter, r *http.Request) {
	var req criarParceiroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if !TipoValido(req.Tipo) {
		http.Error(w, "tipo de parceiro inválido (D2D, Rev ou Rev+)", http.StatusBadRequest)
		return
	}
	if !validacao.ValidarNIF(req.NIF) {
		http.Error(w, "NIF inválido", http.StatusBadRequest)
		return
	}

	p := Parceiro{
		Tipo:              req.Tipo,
		Nome:              req.Nome,
		Email:             req.Email,
		EmailsComunicacao: req.EmailsComunicacao,
		Telefone:          req.Telefone,
		PessoaContacto:    req.PessoaContacto,
		Rua:               req.Rua,
		NumeroPorta:       req.NumeroPorta,
		CodigoPostal:      req.CodigoPostal,
		Localidade:        req.Localidade,
		NIF:               req.NIF,
		CRC:               req.CRC,
		Documentos:        []models.Documento{},
	}

	if err := h.criarComCodigo(&p); err != nil {
		http.Error(w, "erro ao salvar parceiro", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{"parceiro": &p}

	if req.CriarAcesso {
		senha, err := utils.GerarSenhaForte(8)
		if err != nil {
			http.Error(w, "erro ao gerar senha inicial", http.StatusInternalServerError)
			return
		}
		hash, err := utils.HashSenha(senha)
		if err != nil {
			http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
			return
		}
		u := usuario.Usuario{
			Nome:                  p.Nome,
			Email:                 p.Email,
			Papel:                 auth.PapelParceiro,
			ParceiroID:            &p.ID,
			Senha:                 hash,
			PrecisaRedefinirSenha: true,
		}
		if err := h.Usuarios.Salvar(h.DB, &u); err != nil {
			http.Error(w, "parceiro criado, mas falhou a criação do acesso", http.StatusInternalServerError)
			return
		}
		p.UserID = &u.ID
		if err := h.Repository.Salvar(h.DB, &p); err != nil {
			http.Error(w, "erro ao associar acesso ao parceiro", http.StatusInternalServerError)
			return
		}
		resp["senhaInicial"] = senha
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// criarComCodigo atribui o código dentro da tranca do tipo e insere. Um
// conflito de unicidade (contagem invalidada por outra criação fora deste
// processo) é tratado recontando e tentando uma segunda vez.
func (h *Handler) criarComCodigo(p *Parceiro) error {
	return h.Tranca.Com(codigo.ChaveTipoParceiro(p.Tipo), func() error {
		for tentativa := 0; tentativa < 2; tentativa++ {
			existentes, err := h.Repository.ContarPorTipo(h.DB, p.Tipo)
			if err != nil {
				return err
			}
			p.Codigo = codigo.CodigoParceiro(p.Tipo, existentes)
			err = h.DB.Create(p).Error
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

// ListarParceiros retorna todos, ou apenas o próprio para utilizadores de parceiro
func (h *Handler) ListarParceiros(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	w.Header().Set("Content-Type", "application/json")

	if auth.PapelDeParceiro(papel) {
		p, err := h.Repository.BuscarPorUserID(h.DB, userID)
		if err != nil {
			json.NewEncoder(w).Encode([]Parceiro{})
			return
		}
		json.NewEncoder(w).Encode([]Parceiro{*p})
		return
	}

	parceiros, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar parceiros", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(parceiros)
}

// BuscarPorID retorna um parceiro pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// AtualizarParceiro altera os dados de contacto (código e tipo são imutáveis)
func (h *Handler) AtualizarParceiro(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dados Parceiro
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	atualizado, err := h.Repository.Atualizar(h.DB, uint(id), &dados)
	if err != nil {
		http.Error(w, "erro ao atualizar parceiro", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// AnexarDocumento acrescenta metadados de um documento ao parceiro
func (h *Handler) AnexarDocumento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req anexarDocumentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}

	_, papel := auth.UsuarioDoContexto(r.Context())
	doc := models.NovoDocumento(req.Nome, req.URL, papel)
	p.Documentos = append(p.Documentos, doc)

	if err := h.Repository.Salvar(h.DB, p); err != nil {
		http.Error(w, "erro ao anexar documento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

// DeletarParceiro remove um parceiro
func (h *Handler) DeletarParceiro(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir parceiro", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("parceiro excluído com sucesso"))
}
