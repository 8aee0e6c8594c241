package operadora

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, o *Operadora) error
	BuscarPorID(db *gorm.DB, id uint) (*Operadora, error)
	ListarAtivas(db *gorm.DB, incluirOcultas bool) ([]Operadora, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, o *Operadora) error {
	return db.Save(o).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Operadora, error) {
	var o Operadora
	err := db.First(&o, id).Error
	return &o, err
}

func (r *repositoryImpl) ListarAtivas(db *gorm.DB, incluirOcultas bool) ([]Operadora, error) {
	var operadoras []Operadora
	q := db.Where("ativa = ?", true)
	if !incluirOcultas {
		q = q.Where("oculta = ?", false)
	}
	err := q.Order("nome").Find(&operadoras).Error
	return operadoras, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Operadora{}, id).Error
}
