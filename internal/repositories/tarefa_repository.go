package repositories

import (
	"context"

	"sgp/internal/models"
)

// TarefaFilter narrows List results; zero values are ignored.
type TarefaFilter struct {
	ProjetoID  uint
	UsuarioID  uint
	Status     models.StatusTarefa
	Prioridade models.StatusPrioridadeTarefa
}

// TarefaRepository defines the interface for tarefa data access.
type TarefaRepository interface {
	Create(ctx context.Context, tarefa *models.Tarefa) error
	GetByID(ctx context.Context, id uint) (*models.Tarefa, error)
	List(ctx context.Context, filter TarefaFilter, opts ListOptions) (*Page[models.Tarefa], error)
	CountByProjeto(ctx context.Context, projetoID uint) (int64, error)
	CountByUsuario(ctx context.Context, usuarioID uint) (int64, error)
	Update(ctx context.Context, tarefa *models.Tarefa) error
	Delete(ctx context.Context, id uint) error
}
