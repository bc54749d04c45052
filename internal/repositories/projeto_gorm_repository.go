package repositories

import (
	"context"
	"fmt"

	"sgp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var projetoSortColumns = map[string]string{
	"id":         "id",
	"nome":       "nome",
	"dataInicio": "data_inicio",
	"dataFinal":  "data_final",
	"status":     "status",
	"createdAt":  "created_at",
}

// GORMProjetoRepository is a GORM implementation of ProjetoRepository.
type GORMProjetoRepository struct {
	db *gorm.DB
}

// NewGORMProjetoRepository creates a new instance of GORMProjetoRepository.
func NewGORMProjetoRepository(db *gorm.DB) *GORMProjetoRepository {
	return &GORMProjetoRepository{db: db}
}

func (r *GORMProjetoRepository) Create(ctx context.Context, projeto *models.Projeto) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(projeto).Error; err != nil {
		return fmt.Errorf("failed to create projeto: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a projeto with its responsavel loaded.
func (r *GORMProjetoRepository) GetByID(ctx context.Context, id uint) (*models.Projeto, error) {
	var projeto models.Projeto
	if err := r.db.WithContext(ctx).Preload("Responsavel").First(&projeto, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get projeto by ID %d: %w", id, translate(err))
	}
	return &projeto, nil
}

func (r *GORMProjetoRepository) List(ctx context.Context, filter ProjetoFilter, opts ListOptions) (*Page[models.Projeto], error) {
	query := r.db.WithContext(ctx).Model(&models.Projeto{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ResponsavelID != 0 {
		query = query.Where("usuario_resp_id = ?", filter.ResponsavelID)
	}
	page, err := paginate[models.Projeto](query, opts, projetoSortColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to list projetos: %w", err)
	}
	return page, nil
}

func (r *GORMProjetoRepository) CountByResponsavel(ctx context.Context, usuarioID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Projeto{}).Where("usuario_resp_id = ?", usuarioID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count projetos of usuario %d: %w", usuarioID, translate(err))
	}
	return count, nil
}

func (r *GORMProjetoRepository) Update(ctx context.Context, projeto *models.Projeto) error {
	res := r.db.WithContext(ctx).
		Model(projeto).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(projeto)
	if res.Error != nil {
		return fmt.Errorf("failed to update projeto %d: %w", projeto.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("projeto with ID %d not found for update: %w", projeto.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMProjetoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Projeto{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete projeto %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("projeto with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
