package usuario

import "gorm.io/gorm"

type Usuario struct {
	gorm.Model
	Nome                  string `json:"nome"`
	Email                 string `json:"email" gorm:"not null;uniqueIndex:idx_usuarios_email_ativos,where:deleted_at IS NULL"`
	Papel                 string `json:"papel" gorm:"size:50;not null"` // admin, bo, partner, partner_commercial
	Funcao                string `json:"funcao"`
	ParceiroID            *uint  `json:"parceiroId,omitempty" gorm:"index"`
	Senha                 string `json:"-"`
	PrecisaRedefinirSenha bool   `json:"precisaRedefinirSenha"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
