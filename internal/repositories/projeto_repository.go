package repositories

import (
	"context"

	"sgp/internal/models"
)

// ProjetoFilter narrows List results; zero values are ignored.
type ProjetoFilter struct {
	Status        models.StatusProjeto
	ResponsavelID uint
}

// ProjetoRepository defines the interface for projeto data access.
type ProjetoRepository interface {
	Create(ctx context.Context, projeto *models.Projeto) error
	GetByID(ctx context.Context, id uint) (*models.Projeto, error)
	List(ctx context.Context, filter ProjetoFilter, opts ListOptions) (*Page[models.Projeto], error)
	CountByResponsavel(ctx context.Context, usuarioID uint) (int64, error)
	Update(ctx context.Context, projeto *models.Projeto) error
	Delete(ctx context.Context, id uint) error
}
