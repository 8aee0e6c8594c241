package operadora

import (
	"github.com/MPGrupo/api-parceiros/internal/comissao"
	"github.com/MPGrupo/api-parceiros/internal/models"
	"gorm.io/gorm"
)

// Tipos de energia possíveis quando o âmbito é energia.
const (
	EnergiaEletricidade = "eletricidade"
	EnergiaGas          = "gas"
	EnergiaDual         = "dual"
)

// Operadora representa uma operadora de telecomunicações, energia ou solar.
// ConfiguracaoComissao é consumida tal como guardada pelo motor de comissões.
type Operadora struct {
	gorm.Model
	Nome                 string             `json:"nome" gorm:"not null"`
	Ambito               string             `json:"ambito" gorm:"size:30;not null;index"` // telecomunicacoes, energia, solar, dual
	TipoEnergia          string             `json:"tipoEnergia,omitempty" gorm:"size:20"` // só quando ambito = energia
	Ativa                bool               `json:"ativa" gorm:"not null;default:true"`
	Oculta               bool               `json:"oculta" gorm:"not null;default:false"`
	ConfiguracaoComissao comissao.Config    `json:"configuracaoComissao" gorm:"type:jsonb;serializer:json"`
	Documentos           []models.Documento `json:"documentos" gorm:"type:jsonb;serializer:json"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Operadora{})
}
