package usuario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUsuarioTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Usuario{}))
	return db
}

func TestEmailUnicoEntreAtivos(t *testing.T) {
	db := setupUsuarioTestDB(t)
	repo := NewRepository()

	u1 := Usuario{Nome: "Um", Email: "a@exemplo.pt", Papel: "bo"}
	require.NoError(t, repo.Salvar(db, &u1))

	u2 := Usuario{Nome: "Dois", Email: "a@exemplo.pt", Papel: "bo"}
	err := repo.Salvar(db, &u2)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestEmailReutilizavelAposRemocao(t *testing.T) {
	db := setupUsuarioTestDB(t)
	repo := NewRepository()

	u1 := Usuario{Nome: "Um", Email: "a@exemplo.pt", Papel: "bo"}
	require.NoError(t, repo.Salvar(db, &u1))
	require.NoError(t, repo.Deletar(db, u1.ID))

	// o índice é parcial: o email de um utilizador removido fica livre
	u2 := Usuario{Nome: "Dois", Email: "a@exemplo.pt", Papel: "bo"}
	require.NoError(t, repo.Salvar(db, &u2))

	encontrado, err := repo.BuscarPorEmail(db, "a@exemplo.pt")
	require.NoError(t, err)
	assert.Equal(t, u2.ID, encontrado.ID)
}
