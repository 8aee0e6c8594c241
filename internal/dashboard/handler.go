// Package dashboard agrega os números apresentados na página inicial. São
// agrupamentos simples sobre as vendas persistidas; nenhum valor é calculado
// aqui além de somas e contagens.
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/parceiro"
	"github.com/MPGrupo/api-parceiros/internal/venda"

	"gorm.io/gorm"
)

type porStatus struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type porOperadora struct {
	NomeOperadora string  `json:"nomeOperadora"`
	Total         int64   `json:"total"`
	Comissao      float64 `json:"comissao"`
}

type estatisticas struct {
	TotalVendas    int64          `json:"totalVendas"`
	TotalComissao  float64        `json:"totalComissao"`
	ComissaoAPagar float64        `json:"comissaoAPagar"`
	PorStatus      []porStatus    `json:"porStatus"`
	PorOperadora   []porOperadora `json:"porOperadora"`
}

// Handler gerencia a rota de estatísticas
type Handler struct {
	DB        *gorm.DB
	Parceiros parceiro.Repository
}

// NewHandler cria um novo Handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Parceiros: parceiro.NewRepository()}
}

// Estatisticas devolve os agregados visíveis ao utilizador, com o mesmo
// escopo da listagem de vendas: parceiros veem as vendas do seu parceiro,
// comerciais de parceiro as que criaram, e o back-office vê tudo menos os
// valores de comissão.
func (h *Handler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	base := h.DB.Model(&venda.Venda{})
	switch papel {
	case auth.PapelParceiro:
		p, err := h.Parceiros.BuscarPorUserID(h.DB, userID)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(estatisticas{PorStatus: []porStatus{}, PorOperadora: []porOperadora{}})
			return
		}
		base = base.Where("parceiro_id = ?", p.ID)
	case auth.PapelParceiroComercial:
		base = base.Where("criada_por_user_id = ?", userID)
	}

	var stats estatisticas

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalVendas).Error; err != nil {
		http.Error(w, "erro ao agregar vendas", http.StatusInternalServerError)
		return
	}

	if papel != auth.PapelBackOffice {
		base.Session(&gorm.Session{}).
			Select("COALESCE(SUM(comissao), 0)").
			Scan(&stats.TotalComissao)

		// comissão a pagar: vendas ativas ainda não pagas pela operadora
		base.Session(&gorm.Session{}).
			Where("status = ? AND paga_pela_operadora = ?", venda.StatusAtivo, false).
			Select("COALESCE(SUM(comissao), 0)").
			Scan(&stats.ComissaoAPagar)
	}

	stats.PorStatus = []porStatus{}
	base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&stats.PorStatus)

	stats.PorOperadora = []porOperadora{}
	consulta := base.Session(&gorm.Session{}).
		Select("nome_operadora, COUNT(*) AS total, COALESCE(SUM(comissao), 0) AS comissao").
		Group("nome_operadora")
	consulta.Scan(&stats.PorOperadora)
	if papel == auth.PapelBackOffice {
		for i := range stats.PorOperadora {
			stats.PorOperadora[i].Comissao = 0
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
