package services

import (
	"context"
	"fmt"

	"sgp/internal/cache"
	"sgp/internal/models"
	"sgp/internal/repositories"

	"gorm.io/datatypes"
)

const entityProjeto = "projeto"

// ProjetoInput holds every writable field of a projeto.
type ProjetoInput struct {
	Nome          string
	Descricao     string
	DataInicio    datatypes.Date
	DataFinal     *datatypes.Date
	Status        models.StatusProjeto
	ResponsavelID uint
}

func (in ProjetoInput) validate() error {
	if !in.Status.IsValid() {
		return invalidf("unknown status %q", in.Status)
	}
	if in.DataFinal != nil && models.DateBefore(*in.DataFinal, in.DataInicio) {
		return invalidf("dataFinal %s is before dataInicio %s", models.FormatDate(*in.DataFinal), models.FormatDate(in.DataInicio))
	}
	return nil
}

func (in ProjetoInput) apply(p *models.Projeto) {
	p.Nome = in.Nome
	p.Descricao = in.Descricao
	p.DataInicio = in.DataInicio
	p.DataFinal = in.DataFinal
	p.Status = in.Status
	p.ResponsavelID = in.ResponsavelID
}

// ProjetoService handles business logic for projetos.
type ProjetoService struct {
	projetos repositories.ProjetoRepository
	usuarios repositories.UsuarioRepository
	tarefas  repositories.TarefaRepository
	opts     Options
}

// NewProjetoService creates a new ProjetoService.
func NewProjetoService(
	projetos repositories.ProjetoRepository,
	usuarios repositories.UsuarioRepository,
	tarefas repositories.TarefaRepository,
	opts Options,
) *ProjetoService {
	return &ProjetoService{
		projetos: projetos,
		usuarios: usuarios,
		tarefas:  tarefas,
		opts:     opts.normalize(),
	}
}

// Create stores a projeto whose responsavel must exist.
func (s *ProjetoService) Create(ctx context.Context, in ProjetoInput) (*models.Projeto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	responsavel, err := s.responsavel(ctx, in.ResponsavelID)
	if err != nil {
		return nil, err
	}

	projeto := &models.Projeto{}
	in.apply(projeto)
	if err := s.projetos.Create(ctx, projeto); err != nil {
		return nil, fmt.Errorf("failed to create projeto: %w", fromRepo(err, ErrReferenceNotFound))
	}
	projeto.Responsavel = responsavel

	s.opts.emit(entityProjeto, "created", projeto.ID, projeto)
	return projeto, nil
}

// Get returns a projeto with its responsavel, served from the cache when possible.
func (s *ProjetoService) Get(ctx context.Context, id uint) (*models.Projeto, error) {
	projeto, err := cache.GetOrLoad(ctx, s.opts.Cache, cache.Key(entityProjeto, id), s.opts.CacheTTL,
		func(ctx context.Context) (*models.Projeto, error) {
			return s.projetos.GetByID(ctx, id)
		})
	if err != nil {
		return nil, fmt.Errorf("projeto %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return projeto, nil
}

func (s *ProjetoService) List(ctx context.Context, filter repositories.ProjetoFilter, opts repositories.ListOptions) (*repositories.Page[models.Projeto], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalidf("unknown status %q", filter.Status)
	}
	return s.projetos.List(ctx, filter, opts)
}

// Update replaces every writable field of projeto id.
func (s *ProjetoService) Update(ctx context.Context, id uint, in ProjetoInput) (*models.Projeto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	projeto, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	responsavel, err := s.responsavel(ctx, in.ResponsavelID)
	if err != nil {
		return nil, err
	}

	in.apply(projeto)
	projeto.Responsavel = responsavel
	if err := s.save(ctx, projeto, "updated", projeto); err != nil {
		return nil, err
	}
	return projeto, nil
}

// UpdateStatus sets the projeto status. Any status may follow any other.
func (s *ProjetoService) UpdateStatus(ctx context.Context, id uint, status models.StatusProjeto) (*models.Projeto, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown status %q", status)
	}
	projeto, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := projeto.Status
	projeto.Status = status
	data := map[string]interface{}{"from": previous, "to": status}
	if err := s.save(ctx, projeto, "status_changed", data); err != nil {
		return nil, err
	}
	return projeto, nil
}

// Delete removes a projeto that has no tarefas.
func (s *ProjetoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	count, err := s.tarefas.CountByProjeto(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: projeto %d has %d tarefas", ErrInUse, id, count)
	}

	if err := s.projetos.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete projeto %d: %w", id, fromRepo(err, ErrInUse))
	}
	s.opts.invalidate(ctx, entityProjeto, id)
	s.opts.emit(entityProjeto, "deleted", id, nil)
	return nil
}

// ListTarefas lists the tarefas of an existing projeto.
func (s *ProjetoService) ListTarefas(ctx context.Context, id uint, opts repositories.ListOptions) (*repositories.Page[models.Tarefa], error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.tarefas.List(ctx, repositories.TarefaFilter{ProjetoID: id}, opts)
}

func (s *ProjetoService) load(ctx context.Context, id uint) (*models.Projeto, error) {
	projeto, err := s.projetos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("projeto %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return projeto, nil
}

func (s *ProjetoService) responsavel(ctx context.Context, id uint) (*models.Usuario, error) {
	return reference(ctx, entityUsuario, id, s.usuarios.GetByID)
}

func (s *ProjetoService) save(ctx context.Context, projeto *models.Projeto, action string, data interface{}) error {
	if err := s.projetos.Update(ctx, projeto); err != nil {
		return fmt.Errorf("failed to update projeto %d: %w", projeto.ID, fromRepo(err, ErrReferenceNotFound))
	}
	s.opts.invalidate(ctx, entityProjeto, projeto.ID)
	s.opts.emit(entityProjeto, action, projeto.ID, data)
	return nil
}
