package venda

import (
	"time"

	"gorm.io/gorm"
)

// Filtro restringe a listagem de vendas.
type Filtro struct {
	Status          string
	ParceiroID      uint
	CriadaPorUserID uint
}

type Repository interface {
	Criar(db *gorm.DB, v *Venda) error
	Salvar(db *gorm.DB, v *Venda) error
	BuscarPorID(db *gorm.DB, id uint) (*Venda, error)
	Listar(db *gorm.DB, filtro Filtro) ([]Venda, error)
	ContarDoMes(db *gorm.DB, parceiroID uint, inicio, fim time.Time) (int64, error)
	ContarNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoServico string, excluirID uint) (int64, error)
	ContarEnergiaNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoEnergia string, excluirID uint) (int64, error)
	ExisteRequisicao(db *gorm.DB, requisicao, ambito string, excluirID uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, v *Venda) error {
	return db.Create(v).Error
}

func (r *repositoryImpl) Salvar(db *gorm.DB, v *Venda) error {
	return db.Save(v).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	var v Venda
	err := db.First(&v, id).Error
	return &v, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, filtro Filtro) ([]Venda, error) {
	q := db.Order("data DESC")
	if filtro.Status != "" {
		q = q.Where("status = ?", filtro.Status)
	}
	if filtro.ParceiroID != 0 {
		q = q.Where("parceiro_id = ?", filtro.ParceiroID)
	}
	if filtro.CriadaPorUserID != 0 {
		q = q.Where("criada_por_user_id = ?", filtro.CriadaPorUserID)
	}

	var vendas []Venda
	err := q.Find(&vendas).Error
	return vendas, err
}

// ContarDoMes conta as vendas já persistidas do parceiro no intervalo
// [inicio, fim). Alimenta a sequência do código de venda.
func (r *repositoryImpl) ContarDoMes(db *gorm.DB, parceiroID uint, inicio, fim time.Time) (int64, error) {
	var total int64
	err := db.Model(&Venda{}).
		Where("parceiro_id = ? AND data >= ? AND data < ?", parceiroID, inicio, fim).
		Count(&total).Error
	return total, err
}

// ContarNaOperadora conta as vendas anteriores do parceiro na operadora,
// restritas ao tipo de serviço quando indicado. excluirID permite recalcular
// a comissão de uma venda já persistida sem a contar a si própria.
func (r *repositoryImpl) ContarNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoServico string, excluirID uint) (int64, error) {
	q := db.Model(&Venda{}).
		Where("parceiro_id = ? AND operadora_id = ?", parceiroID, operadoraID)
	if tipoServico != "" {
		q = q.Where("tipo_servico = ?", tipoServico)
	}
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ContarEnergiaNaOperadora conta as vendas de energia anteriores do parceiro
// na operadora para o tipo de energia dado; vendas "dual" contam para
// qualquer tipo.
func (r *repositoryImpl) ContarEnergiaNaOperadora(db *gorm.DB, parceiroID, operadoraID uint, tipoEnergia string, excluirID uint) (int64, error) {
	q := db.Model(&Venda{}).
		Where("parceiro_id = ? AND operadora_id = ? AND ambito = ?", parceiroID, operadoraID, "energia").
		Where("tipo_energia = ? OR tipo_energia = ?", tipoEnergia, "dual")
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ExisteRequisicao verifica duplicados do número de requisição dentro de um
// âmbito (usado para telecomunicações).
func (r *repositoryImpl) ExisteRequisicao(db *gorm.DB, requisicao, ambito string, excluirID uint) (bool, error) {
	q := db.Model(&Venda{}).
		Where("requisicao = ? AND ambito = ?", requisicao, ambito)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}
