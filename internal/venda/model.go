package venda

import (
	"time"

	"github.com/MPGrupo/api-parceiros/internal/models"
	"gorm.io/gorm"
)

// Venda representa uma venda registada por um parceiro. Codigo e Comissao são
// fixados na criação; depois disso a venda só muda por atualizações de
// estado/pagamento/requisição e por acréscimo de notas e documentos.
type Venda struct {
	gorm.Model
	Codigo          string    `json:"codigo" gorm:"size:12;not null;uniqueIndex:idx_vendas_parceiro_codigo"`
	Data            time.Time `json:"data" gorm:"not null;index"`
	ParceiroID      uint      `json:"parceiroId" gorm:"not null;index;uniqueIndex:idx_vendas_parceiro_codigo"`
	NomeParceiro    string    `json:"nomeParceiro"`
	CriadaPorUserID uint      `json:"criadaPorUserId" gorm:"index"`

	Ambito      string `json:"ambito" gorm:"size:30;not null"`
	TipoEnergia string `json:"tipoEnergia,omitempty" gorm:"size:20"`
	TipoCliente string `json:"tipoCliente" gorm:"size:20;not null"` // particular, empresarial

	NomeCliente      string `json:"nomeCliente" gorm:"not null"`
	NIFCliente       string `json:"nifCliente" gorm:"size:9"`
	ContactoCliente  string `json:"contactoCliente"`
	EmailCliente     string `json:"emailCliente,omitempty"`
	IBANCliente      string `json:"ibanCliente,omitempty"`
	MoradaInstalacao string `json:"moradaInstalacao,omitempty"`

	OperadoraID   uint   `json:"operadoraId" gorm:"not null;index"`
	NomeOperadora string `json:"nomeOperadora"`

	// Telecomunicações
	TipoServico string  `json:"tipoServico,omitempty" gorm:"size:10"` // M3, M4
	ValorMensal float64 `json:"valorMensal,omitempty"`
	Requisicao  string  `json:"requisicao,omitempty"`

	// Energia / solar
	CPE         string `json:"cpe,omitempty" gorm:"size:20"`
	Potencia    string `json:"potencia,omitempty"`
	TipoEntrada string `json:"tipoEntrada,omitempty"`
	CUI         string `json:"cui,omitempty" gorm:"size:21"`
	Escalao     string `json:"escalao,omitempty"`

	Status            string     `json:"status" gorm:"size:30;not null;index"`
	DataStatus        *time.Time `json:"dataStatus,omitempty"`
	PagaPelaOperadora bool       `json:"pagaPelaOperadora" gorm:"not null;default:false"`
	DataPagamento     *time.Time `json:"dataPagamento,omitempty"`
	Comissao          float64    `json:"comissao" gorm:"not null;default:0"`
	Observacoes       string     `json:"observacoes,omitempty"`

	Notas      []models.Nota      `json:"notas" gorm:"type:jsonb;serializer:json"`
	Documentos []models.Documento `json:"documentos" gorm:"type:jsonb;serializer:json"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{})
}
