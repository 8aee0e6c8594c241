package parceiro

import (
	"testing"

	"github.com/MPGrupo/api-parceiros/internal/codigo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupParceiroTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Parceiro{}))
	return db
}

func novoHandlerTeste(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Tranca:     codigo.NovaTrancaPorChave(),
	}
}

func TestCriarComCodigoSequenciaPorTipo(t *testing.T) {
	db := setupParceiroTestDB(t)
	h := novoHandlerTeste(db)

	p1 := Parceiro{Tipo: TipoD2D, Nome: "Primeiro", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&p1))
	assert.Equal(t, "D2D1001", p1.Codigo)

	p2 := Parceiro{Tipo: TipoD2D, Nome: "Segundo", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&p2))
	assert.Equal(t, "D2D1002", p2.Codigo)

	// tipos diferentes têm sequências próprias
	r1 := Parceiro{Tipo: TipoRev, Nome: "Revenda", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&r1))
	assert.Equal(t, "Rev1001", r1.Codigo)
}

func TestCriarComCodigoAposRemocao(t *testing.T) {
	db := setupParceiroTestDB(t)
	h := novoHandlerTeste(db)

	p1 := Parceiro{Tipo: TipoD2D, Nome: "Primeiro", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&p1))
	p2 := Parceiro{Tipo: TipoD2D, Nome: "Segundo", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&p2))

	require.NoError(t, h.Repository.Deletar(db, p1.ID))

	// o código do parceiro removido continua reservado: a sequência avança em
	// vez de reatribuir D2D1002
	p3 := Parceiro{Tipo: TipoD2D, Nome: "Terceiro", NIF: "123456789"}
	require.NoError(t, h.criarComCodigo(&p3))
	assert.Equal(t, "D2D1003", p3.Codigo)
}
