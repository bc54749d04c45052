package database

import (
	"fmt"
	"strings"

	"sgp/internal/models"
	"sgp/pkg/logutils"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrate applies every pending schema migration.
func Migrate(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return fmt.Errorf("could not migrate: %w", err)
	}
	logutils.Log.Info("Database schema is up to date")
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(db *gorm.DB) error {
	if err := newMigrator(db).RollbackLast(); err != nil {
		return fmt.Errorf("could not roll back: %w", err)
	}
	return nil
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// create tb_usuarios, tb_projetos, tb_tarefas
			ID: "202401010001",
			Migrate: func(tx *gorm.DB) error {
				d := dialectOf(tx)
				for _, stmt := range []string{
					`CREATE TABLE tb_usuarios (
						` + d.identity() + `,
						nome VARCHAR(50) NOT NULL ` + checkLength("nome", 1, 50) + `,
						cpf VARCHAR(11) NOT NULL UNIQUE ` + d.checkDigits("cpf", 11) + `,
						email VARCHAR(255) NOT NULL UNIQUE ` + checkLength("email", 3, 255) + ` CHECK (email LIKE '%_@_%'),
						senha VARCHAR(60) NOT NULL ` + checkLength("senha", 1, 60) + `,
						senha_digest VARCHAR(64) NOT NULL UNIQUE ` + checkLength("senha_digest", 1, 64) + `,
						data_nascimento DATE NOT NULL,
						status VARCHAR(20) NOT NULL ` + checkIn("status", models.StatusUsuario("").Values()) + `,
						created_at ` + d.timestamp() + ` NOT NULL,
						updated_at ` + d.timestamp() + ` NOT NULL
					)`,
					`CREATE TABLE tb_projetos (
						` + d.identity() + `,
						nome VARCHAR(100) NOT NULL ` + checkLength("nome", 1, 100) + `,
						descricao TEXT,
						data_inicio DATE NOT NULL,
						data_final DATE,
						status VARCHAR(20) NOT NULL ` + checkIn("status", models.StatusProjeto("").Values()) + `,
						usuario_resp_id BIGINT NOT NULL REFERENCES tb_usuarios(id) ON DELETE RESTRICT,
						created_at ` + d.timestamp() + ` NOT NULL,
						updated_at ` + d.timestamp() + ` NOT NULL
					)`,
					`CREATE TABLE tb_tarefas (
						` + d.identity() + `,
						titulo VARCHAR(100) NOT NULL ` + checkLength("titulo", 1, 100) + `,
						descricao TEXT,
						data_criacao DATE NOT NULL,
						data_conclusao DATE,
						status_prioridade_tarefa VARCHAR(20) NOT NULL ` + checkIn("status_prioridade_tarefa", models.StatusPrioridadeTarefa("").Values()) + `,
						status_tarefa VARCHAR(20) ` + checkIn("status_tarefa", models.StatusTarefa("").Values()) + `,
						projeto_id BIGINT NOT NULL REFERENCES tb_projetos(id) ON DELETE RESTRICT,
						usuario_id BIGINT NOT NULL REFERENCES tb_usuarios(id) ON DELETE RESTRICT,
						created_at ` + d.timestamp() + ` NOT NULL,
						updated_at ` + d.timestamp() + ` NOT NULL
					)`,
				} {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("tb_tarefas", "tb_projetos", "tb_usuarios")
			},
		},
		{
			// index foreign keys used by the list filters
			ID: "202401010002",
			Migrate: func(tx *gorm.DB) error {
				for _, stmt := range []string{
					"CREATE INDEX IF NOT EXISTS idx_tb_projetos_usuario_resp_id ON tb_projetos (usuario_resp_id)",
					"CREATE INDEX IF NOT EXISTS idx_tb_projetos_status ON tb_projetos (status)",
					"CREATE INDEX IF NOT EXISTS idx_tb_tarefas_projeto_id ON tb_tarefas (projeto_id)",
					"CREATE INDEX IF NOT EXISTS idx_tb_tarefas_usuario_id ON tb_tarefas (usuario_id)",
				} {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, name := range []string{
					"idx_tb_projetos_usuario_resp_id",
					"idx_tb_projetos_status",
					"idx_tb_tarefas_projeto_id",
					"idx_tb_tarefas_usuario_id",
				} {
					if err := tx.Exec("DROP INDEX IF EXISTS " + name).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})
}

type dialect string

func dialectOf(tx *gorm.DB) dialect {
	return dialect(tx.Dialector.Name())
}

func (d dialect) identity() string {
	if d == "sqlite" {
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
}

func (d dialect) timestamp() string {
	if d == "sqlite" {
		return "DATETIME"
	}
	return "TIMESTAMPTZ"
}

// checkLength bounds a text column. SQLite does not enforce VARCHAR(n).
func checkLength(column string, lo, hi int) string {
	return fmt.Sprintf("CHECK (length(%s) BETWEEN %d AND %d)", column, lo, hi)
}

func (d dialect) checkDigits(column string, n int) string {
	if d == "sqlite" {
		return fmt.Sprintf("CHECK (length(%s) = %d AND %s NOT GLOB '*[^0-9]*')", column, n, column)
	}
	return fmt.Sprintf("CHECK (%s ~ '^[0-9]{%d}$')", column, n)
}

func checkIn(column string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("CHECK (%s IN (%s))", column, strings.Join(quoted, ", "))
}
