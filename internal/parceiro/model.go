package parceiro

import (
	"github.com/MPGrupo/api-parceiros/internal/models"
	"gorm.io/gorm"
)

// Tipos de parceiro reconhecidos. O tipo entra no código sequencial.
const (
	TipoD2D     = "D2D"
	TipoRev     = "Rev"
	TipoRevPlus = "Rev+"
)

// TipoValido indica se o tipo de parceiro é um dos reconhecidos.
func TipoValido(tipo string) bool {
	return tipo == TipoD2D || tipo == TipoRev || tipo == TipoRevPlus
}

// Parceiro representa um parceiro comercial. Codigo e Tipo são atribuídos na
// criação e imutáveis depois; os campos de contacto podem ser atualizados.
type Parceiro struct {
	gorm.Model
	Codigo            string             `json:"codigo" gorm:"uniqueIndex;size:20;not null"`
	Tipo              string             `json:"tipo" gorm:"size:10;not null;index"`
	Nome              string             `json:"nome" gorm:"not null"`
	Email             string             `json:"email" gorm:"not null"`
	EmailsComunicacao []string           `json:"emailsComunicacao" gorm:"type:jsonb;serializer:json"`
	Telefone          string             `json:"telefone"`
	PessoaContacto    string             `json:"pessoaContacto"`
	Rua               string             `json:"rua"`
	NumeroPorta       string             `json:"numeroPorta"`
	CodigoPostal      string             `json:"codigoPostal"`
	Localidade        string             `json:"localidade"`
	NIF               string             `json:"nif" gorm:"size:9;not null"`
	CRC               string             `json:"crc"`
	Documentos        []models.Documento `json:"documentos" gorm:"type:jsonb;serializer:json"`
	UserID            *uint              `json:"userId,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parceiro{})
}
