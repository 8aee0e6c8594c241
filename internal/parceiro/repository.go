package parceiro

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, p *Parceiro) error
	BuscarPorID(db *gorm.DB, id uint) (*Parceiro, error)
	BuscarPorUserID(db *gorm.DB, userID uint) (*Parceiro, error)
	ListarTodos(db *gorm.DB) ([]Parceiro, error)
	ContarPorTipo(db *gorm.DB, tipo string) (int64, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Parceiro) (*Parceiro, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Parceiro) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Parceiro, error) {
	var p Parceiro
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) BuscarPorUserID(db *gorm.DB, userID uint) (*Parceiro, error) {
	var p Parceiro
	err := db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Parceiro, error) {
	var parceiros []Parceiro
	err := db.Order("codigo").Find(&parceiros).Error
	return parceiros, err
}

// ContarPorTipo conta os parceiros já criados de um tipo, incluindo os
// removidos: o código de um parceiro removido continua reservado no índice
// único, por isso continua a contar para a sequência. É a contagem usada na
// atribuição do código sequencial; deve ser lida dentro da secção crítica da
// criação.
func (r *repositoryImpl) ContarPorTipo(db *gorm.DB, tipo string) (int64, error) {
	var total int64
	err := db.Unscoped().Model(&Parceiro{}).Where("tipo = ?", tipo).Count(&total).Error
	return total, err
}

// Atualizar altera apenas os campos de contacto. Codigo, Tipo e NIF de
// registo ficam como foram criados.
func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Parceiro) (*Parceiro, error) {
	var existente Parceiro
	if err := db.First(&existente, id).Error; err != nil {
		return nil, err
	}

	existente.Nome = novosDados.Nome
	existente.Email = novosDados.Email
	existente.EmailsComunicacao = novosDados.EmailsComunicacao
	existente.Telefone = novosDados.Telefone
	existente.PessoaContacto = novosDados.PessoaContacto
	existente.Rua = novosDados.Rua
	existente.NumeroPorta = novosDados.NumeroPorta
	existente.CodigoPostal = novosDados.CodigoPostal
	existente.Localidade = novosDados.Localidade
	existente.CRC = novosDados.CRC

	if err := db.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Parceiro{}, id).Error
}
