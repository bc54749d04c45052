package database_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"sgp/internal/config"
	"sgp/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:         config.DriverSQLite,
		DatabaseDSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBConnectRetries: 1,
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, database.Migrate(db))

	for _, table := range []string{"tb_usuarios", "tb_projetos", "tb_tarefas"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
	}
	assert.True(t, db.Migrator().HasColumn("tb_projetos", "usuario_resp_id"))
	assert.True(t, db.Migrator().HasColumn("tb_tarefas", "status_prioridade_tarefa"))
	assert.True(t, db.Migrator().HasIndex("tb_tarefas", "idx_tb_tarefas_projeto_id"))

	// running twice is a no-op
	require.NoError(t, database.Migrate(db))
}

func TestMigrate_EnforcesConstraints(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, database.Migrate(db))

	insertUsuario := `INSERT INTO tb_usuarios (nome, cpf, email, senha, senha_digest, data_nascimento, status, created_at, updated_at)
		VALUES (?, ?, ?, 'hash', ?, '1990-01-01', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	require.NoError(t, db.Exec(insertUsuario, "Ana", "12345678901", "ana@x.com", "d1", "ATIVO").Error)

	// unique cpf
	assert.Error(t, db.Exec(insertUsuario, "Bia", "12345678901", "bia@x.com", "d2", "ATIVO").Error)
	// unique senha digest
	assert.Error(t, db.Exec(insertUsuario, "Bia", "10987654321", "bia@x.com", "d1", "ATIVO").Error)
	// enum vocabulary
	assert.Error(t, db.Exec(insertUsuario, "Bia", "10987654321", "bia@x.com", "d2", "SUMIDO").Error)
	// required nome
	assert.Error(t, db.Exec(insertUsuario, nil, "10987654321", "bia@x.com", "d2", "ATIVO").Error)
	assert.Error(t, db.Exec(insertUsuario, "", "10987654321", "bia@x.com", "d2", "ATIVO").Error)
	// cpf is exactly 11 digits
	for _, cpf := range []string{"123", "-1234567890", "1234567.890", "123456789012"} {
		assert.Error(t, db.Exec(insertUsuario, "Bia", cpf, "bia@x.com", "d2", "ATIVO").Error, cpf)
	}
	// nome length
	assert.Error(t, db.Exec(insertUsuario, strings.Repeat("b", 51), "10987654321", "bia@x.com", "d2", "ATIVO").Error)
	require.NoError(t, db.Exec(insertUsuario, "Bia", "10987654321", "bia@x.com", "d2", "ATIVO").Error)

	insertProjeto := `INSERT INTO tb_projetos (nome, data_inicio, status, usuario_resp_id, created_at, updated_at)
		VALUES ('SGP', '2024-01-01', 'EM_ANDAMENTO', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	// dangling responsavel
	assert.Error(t, db.Exec(insertProjeto, 999).Error)
}

func TestRollback(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, database.Rollback(db))
	assert.False(t, db.Migrator().HasIndex("tb_tarefas", "idx_tb_tarefas_projeto_id"))
	assert.True(t, db.Migrator().HasTable("tb_tarefas"))

	require.NoError(t, database.Rollback(db))
	assert.False(t, db.Migrator().HasTable("tb_usuarios"))
}

func TestHealthAndStats(t *testing.T) {
	db := openSQLite(t)
	assert.NoError(t, database.Health(context.Background(), db))

	stats := database.Stats(db)
	assert.Equal(t, 1, stats["max_open_connections"])

	assert.Error(t, database.Health(context.Background(), nil))
}
