package services

import (
	"context"
	"fmt"

	"sgp/internal/cache"
	"sgp/internal/models"
	"sgp/internal/repositories"

	"gorm.io/datatypes"
)

const entityTarefa = "tarefa"

// TarefaInput holds every writable field of a tarefa.
type TarefaInput struct {
	Titulo                 string
	Descricao              string
	DataCriacao            datatypes.Date
	DataConclusao          *datatypes.Date
	StatusPrioridadeTarefa models.StatusPrioridadeTarefa
	StatusTarefa           *models.StatusTarefa
	ProjetoID              uint
	UsuarioID              uint
}

func (in TarefaInput) validate() error {
	if !in.StatusPrioridadeTarefa.IsValid() {
		return invalidf("unknown statusPrioridadeTarefa %q", in.StatusPrioridadeTarefa)
	}
	if in.StatusTarefa != nil && !in.StatusTarefa.IsValid() {
		return invalidf("unknown statusTarefa %q", *in.StatusTarefa)
	}
	if in.DataConclusao != nil && models.DateBefore(*in.DataConclusao, in.DataCriacao) {
		return invalidf("dataConclusao %s is before dataCriacao %s", models.FormatDate(*in.DataConclusao), models.FormatDate(in.DataCriacao))
	}
	return nil
}

func (in TarefaInput) apply(t *models.Tarefa) {
	t.Titulo = in.Titulo
	t.Descricao = in.Descricao
	t.DataCriacao = in.DataCriacao
	t.DataConclusao = in.DataConclusao
	t.StatusPrioridadeTarefa = in.StatusPrioridadeTarefa
	t.StatusTarefa = in.StatusTarefa
	t.ProjetoID = in.ProjetoID
	t.UsuarioID = in.UsuarioID
}

// TarefaService handles business logic for tarefas.
type TarefaService struct {
	tarefas  repositories.TarefaRepository
	projetos repositories.ProjetoRepository
	usuarios repositories.UsuarioRepository
	opts     Options
}

// NewTarefaService creates a new TarefaService.
func NewTarefaService(
	tarefas repositories.TarefaRepository,
	projetos repositories.ProjetoRepository,
	usuarios repositories.UsuarioRepository,
	opts Options,
) *TarefaService {
	return &TarefaService{
		tarefas:  tarefas,
		projetos: projetos,
		usuarios: usuarios,
		opts:     opts.normalize(),
	}
}

// Create stores a tarefa whose projeto and usuario must exist.
func (s *TarefaService) Create(ctx context.Context, in TarefaInput) (*models.Tarefa, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	tarefa := &models.Tarefa{}
	in.apply(tarefa)
	if err := s.resolveReferences(ctx, tarefa); err != nil {
		return nil, err
	}

	if err := s.tarefas.Create(ctx, tarefa); err != nil {
		return nil, fmt.Errorf("failed to create tarefa: %w", fromRepo(err, ErrReferenceNotFound))
	}
	s.opts.emit(entityTarefa, "created", tarefa.ID, tarefa)
	return tarefa, nil
}

// Get returns a tarefa with its projeto and usuario, served from the cache
// when possible.
func (s *TarefaService) Get(ctx context.Context, id uint) (*models.Tarefa, error) {
	tarefa, err := cache.GetOrLoad(ctx, s.opts.Cache, cache.Key(entityTarefa, id), s.opts.CacheTTL,
		func(ctx context.Context) (*models.Tarefa, error) {
			return s.tarefas.GetByID(ctx, id)
		})
	if err != nil {
		return nil, fmt.Errorf("tarefa %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return tarefa, nil
}

func (s *TarefaService) List(ctx context.Context, filter repositories.TarefaFilter, opts repositories.ListOptions) (*repositories.Page[models.Tarefa], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalidf("unknown statusTarefa %q", filter.Status)
	}
	if filter.Prioridade != "" && !filter.Prioridade.IsValid() {
		return nil, invalidf("unknown statusPrioridadeTarefa %q", filter.Prioridade)
	}
	return s.tarefas.List(ctx, filter, opts)
}

// Update replaces every writable field of tarefa id.
func (s *TarefaService) Update(ctx context.Context, id uint, in TarefaInput) (*models.Tarefa, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	tarefa, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(tarefa)
	if err := s.resolveReferences(ctx, tarefa); err != nil {
		return nil, err
	}
	if err := s.save(ctx, tarefa, "updated", tarefa); err != nil {
		return nil, err
	}
	return tarefa, nil
}

// UpdateStatus sets statusTarefa. Any status may follow any other.
func (s *TarefaService) UpdateStatus(ctx context.Context, id uint, status models.StatusTarefa) (*models.Tarefa, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown statusTarefa %q", status)
	}
	tarefa, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{"from": tarefa.StatusTarefa, "to": status}
	tarefa.StatusTarefa = &status
	if err := s.save(ctx, tarefa, "status_changed", data); err != nil {
		return nil, err
	}
	return tarefa, nil
}

func (s *TarefaService) Delete(ctx context.Context, id uint) error {
	if err := s.tarefas.Delete(ctx, id); err != nil {
		return fmt.Errorf("tarefa %d: %w", id, fromRepo(err, ErrInUse))
	}
	s.opts.invalidate(ctx, entityTarefa, id)
	s.opts.emit(entityTarefa, "deleted", id, nil)
	return nil
}

func (s *TarefaService) load(ctx context.Context, id uint) (*models.Tarefa, error) {
	tarefa, err := s.tarefas.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tarefa %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return tarefa, nil
}

func (s *TarefaService) resolveReferences(ctx context.Context, tarefa *models.Tarefa) error {
	projeto, err := reference(ctx, entityProjeto, tarefa.ProjetoID, s.projetos.GetByID)
	if err != nil {
		return err
	}
	usuario, err := reference(ctx, entityUsuario, tarefa.UsuarioID, s.usuarios.GetByID)
	if err != nil {
		return err
	}
	tarefa.Projeto = projeto
	tarefa.Usuario = usuario
	return nil
}

func (s *TarefaService) save(ctx context.Context, tarefa *models.Tarefa, action string, data interface{}) error {
	if err := s.tarefas.Update(ctx, tarefa); err != nil {
		return fmt.Errorf("failed to update tarefa %d: %w", tarefa.ID, fromRepo(err, ErrReferenceNotFound))
	}
	s.opts.invalidate(ctx, entityTarefa, tarefa.ID)
	s.opts.emit(entityTarefa, action, tarefa.ID, data)
	return nil
}
