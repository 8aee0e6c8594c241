package alerta

import "gorm.io/gorm"

// Tipos de alerta gerados pelo ciclo de vida das vendas.
const (
	TipoNovaVenda      = "new_sale"
	TipoMudancaStatus  = "status_change"
	TipoNotaAdicionada = "note_added"
)

// Alerta é uma notificação interna sobre uma venda, dirigida a um conjunto de
// utilizadores. A leitura é registada por utilizador.
type Alerta struct {
	gorm.Model
	Tipo          string `json:"tipo" gorm:"size:30;not null"`
	VendaID       uint   `json:"vendaId" gorm:"not null;index"`
	CodigoVenda   string `json:"codigoVenda"`
	Mensagem      string `json:"mensagem" gorm:"not null"`
	Destinatarios []uint `json:"destinatarios" gorm:"type:jsonb;serializer:json"`
	LidaPor       []uint `json:"lidaPor" gorm:"type:jsonb;serializer:json"`
	CriadaPorID   uint   `json:"criadaPorId"`
	CriadaPorNome string `json:"criadaPorNome"`
	Arquivada     bool   `json:"arquivada" gorm:"not null;default:false"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Alerta{})
}
