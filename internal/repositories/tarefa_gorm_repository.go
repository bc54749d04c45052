package repositories

import (
	"context"
	"fmt"

	"sgp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tarefaSortColumns = map[string]string{
	"id":                     "id",
	"titulo":                 "titulo",
	"dataCriacao":            "data_criacao",
	"dataConclusao":          "data_conclusao",
	"statusPrioridadeTarefa": "status_prioridade_tarefa",
	"statusTarefa":           "status_tarefa",
	"createdAt":              "created_at",
}

// GORMTarefaRepository is a GORM implementation of TarefaRepository.
type GORMTarefaRepository struct {
	db *gorm.DB
}

// NewGORMTarefaRepository creates a new instance of GORMTarefaRepository.
func NewGORMTarefaRepository(db *gorm.DB) *GORMTarefaRepository {
	return &GORMTarefaRepository{db: db}
}

func (r *GORMTarefaRepository) Create(ctx context.Context, tarefa *models.Tarefa) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tarefa).Error; err != nil {
		return fmt.Errorf("failed to create tarefa: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a tarefa with its projeto and usuario loaded.
func (r *GORMTarefaRepository) GetByID(ctx context.Context, id uint) (*models.Tarefa, error) {
	var tarefa models.Tarefa
	err := r.db.WithContext(ctx).
		Preload("Projeto").
		Preload("Usuario").
		First(&tarefa, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tarefa by ID %d: %w", id, translate(err))
	}
	return &tarefa, nil
}

func (r *GORMTarefaRepository) List(ctx context.Context, filter TarefaFilter, opts ListOptions) (*Page[models.Tarefa], error) {
	query := r.db.WithContext(ctx).Model(&models.Tarefa{})
	if filter.ProjetoID != 0 {
		query = query.Where("projeto_id = ?", filter.ProjetoID)
	}
	if filter.UsuarioID != 0 {
		query = query.Where("usuario_id = ?", filter.UsuarioID)
	}
	if filter.Status != "" {
		query = query.Where("status_tarefa = ?", filter.Status)
	}
	if filter.Prioridade != "" {
		query = query.Where("status_prioridade_tarefa = ?", filter.Prioridade)
	}
	page, err := paginate[models.Tarefa](query, opts, tarefaSortColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to list tarefas: %w", err)
	}
	return page, nil
}

func (r *GORMTarefaRepository) CountByProjeto(ctx context.Context, projetoID uint) (int64, error) {
	return r.count(ctx, "projeto_id", projetoID)
}

func (r *GORMTarefaRepository) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	return r.count(ctx, "usuario_id", usuarioID)
}

func (r *GORMTarefaRepository) count(ctx context.Context, column string, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tarefa{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tarefas by %s %d: %w", column, id, translate(err))
	}
	return count, nil
}

func (r *GORMTarefaRepository) Update(ctx context.Context, tarefa *models.Tarefa) error {
	res := r.db.WithContext(ctx).
		Model(tarefa).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(tarefa)
	if res.Error != nil {
		return fmt.Errorf("failed to update tarefa %d: %w", tarefa.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tarefa with ID %d not found for update: %w", tarefa.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMTarefaRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Tarefa{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tarefa %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tarefa with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
