package alerta

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, a *Alerta) error
	BuscarPorID(db *gorm.DB, id uint) (*Alerta, error)
	ListarParaUsuario(db *gorm.DB, userID uint, arquivadas bool) ([]Alerta, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *Alerta) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Alerta, error) {
	var a Alerta
	err := db.First(&a, id).Error
	return &a, err
}

// ListarParaUsuario devolve os alertas dirigidos ao utilizador, mais
// recentes primeiro. A pertença é verificada no JSONB de destinatários.
func (r *repositoryImpl) ListarParaUsuario(db *gorm.DB, userID uint, arquivadas bool) ([]Alerta, error) {
	var alertas []Alerta
	err := db.
		Where("destinatarios @> to_jsonb(?::int)", userID).
		Where("arquivada = ?", arquivadas).
		Order("created_at DESC").
		Find(&alertas).Error
	return alertas, err
}
