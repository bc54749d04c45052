package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"sgp/internal/cache"
	"sgp/internal/models"
	"sgp/internal/repositories"
	"sgp/pkg/logutils"

	"gorm.io/datatypes"
)

const entityUsuario = "usuario"

// RegisterUsuarioInput holds the fields of a new account. An empty Status
// registers the account as ATIVO.
type RegisterUsuarioInput struct {
	Nome           string
	CPF            string
	Email          string
	Senha          string
	DataNascimento datatypes.Date
	Status         models.StatusUsuario
}

// UpdateUsuarioInput replaces the profile of an account. An empty Senha
// keeps the current one.
type UpdateUsuarioInput struct {
	Nome           string
	CPF            string
	Email          string
	Senha          string
	DataNascimento datatypes.Date
}

// UsuarioService handles business logic for usuarios.
type UsuarioService struct {
	usuarios repositories.UsuarioRepository
	projetos repositories.ProjetoRepository
	tarefas  repositories.TarefaRepository
	hasher   *SenhaHasher
	opts     Options
}

// NewUsuarioService creates a new UsuarioService.
func NewUsuarioService(
	usuarios repositories.UsuarioRepository,
	projetos repositories.ProjetoRepository,
	tarefas repositories.TarefaRepository,
	hasher *SenhaHasher,
	opts Options,
) *UsuarioService {
	return &UsuarioService{
		usuarios: usuarios,
		projetos: projetos,
		tarefas:  tarefas,
		hasher:   hasher,
		opts:     opts.normalize(),
	}
}

// Register validates uniqueness of cpf, email and senha, hashes the senha and
// stores the new usuario.
func (s *UsuarioService) Register(ctx context.Context, in RegisterUsuarioInput) (*models.Usuario, error) {
	if in.Status == "" {
		in.Status = models.StatusUsuarioAtivo
	}
	if !in.Status.IsValid() {
		return nil, invalidf("unknown status %q", in.Status)
	}
	if err := validateSenha(in.Senha); err != nil {
		return nil, err
	}

	digest := s.hasher.Digest(in.Senha)
	if err := s.checkUnique(ctx, 0, in.CPF, in.Email, digest); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Senha)
	if err != nil {
		return nil, err
	}

	usuario := &models.Usuario{
		Nome:           in.Nome,
		CPF:            in.CPF,
		Email:          in.Email,
		SenhaHash:      hash,
		SenhaDigest:    digest,
		DataNascimento: in.DataNascimento,
		Status:         in.Status,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, fmt.Errorf("failed to register usuario: %w", fromRepo(err, ErrReferenceNotFound))
	}

	logutils.Log.WithFields(logutils.Fields{"usuario_id": usuario.ID}).Info("Usuario registered")
	s.opts.emit(entityUsuario, "created", usuario.ID, usuario)
	return usuario, nil
}

// Get returns a usuario, served from the cache when possible.
func (s *UsuarioService) Get(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := cache.GetOrLoad(ctx, s.opts.Cache, cache.Key(entityUsuario, id), s.opts.CacheTTL,
		func(ctx context.Context) (*models.Usuario, error) {
			return s.usuarios.GetByID(ctx, id)
		})
	if err != nil {
		return nil, fmt.Errorf("usuario %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return usuario, nil
}

func (s *UsuarioService) List(ctx context.Context, opts repositories.ListOptions) (*repositories.Page[models.Usuario], error) {
	return s.usuarios.List(ctx, opts)
}

// Update replaces the profile of usuario id, re-checking uniqueness.
func (s *UsuarioService) Update(ctx context.Context, id uint, in UpdateUsuarioInput) (*models.Usuario, error) {
	usuario, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	digest := usuario.SenhaDigest
	if in.Senha != "" {
		if err := validateSenha(in.Senha); err != nil {
			return nil, err
		}
		digest = s.hasher.Digest(in.Senha)
	}
	if err := s.checkUnique(ctx, id, in.CPF, in.Email, digest); err != nil {
		return nil, err
	}
	if in.Senha != "" {
		hash, err := s.hasher.Hash(in.Senha)
		if err != nil {
			return nil, err
		}
		usuario.SenhaHash = hash
		usuario.SenhaDigest = digest
	}

	usuario.Nome = in.Nome
	usuario.CPF = in.CPF
	usuario.Email = in.Email
	usuario.DataNascimento = in.DataNascimento

	if err := s.save(ctx, usuario, "updated", usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// UpdateStatus sets the account status. Any status may follow any other.
func (s *UsuarioService) UpdateStatus(ctx context.Context, id uint, status models.StatusUsuario) (*models.Usuario, error) {
	if !status.IsValid() {
		return nil, invalidf("unknown status %q", status)
	}
	usuario, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := usuario.Status
	usuario.Status = status
	data := map[string]interface{}{"from": previous, "to": status}
	if err := s.save(ctx, usuario, "status_changed", data); err != nil {
		return nil, err
	}
	return usuario, nil
}

// Delete removes a usuario that no projeto or tarefa references.
func (s *UsuarioService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	projetos, err := s.projetos.CountByResponsavel(ctx, id)
	if err != nil {
		return err
	}
	tarefas, err := s.tarefas.CountByUsuario(ctx, id)
	if err != nil {
		return err
	}
	if projetos > 0 || tarefas > 0 {
		return fmt.Errorf("%w: usuario %d is responsible for %d projetos and assigned %d tarefas", ErrInUse, id, projetos, tarefas)
	}

	if err := s.usuarios.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete usuario %d: %w", id, fromRepo(err, ErrInUse))
	}
	s.opts.invalidate(ctx, entityUsuario, id)
	s.opts.emit(entityUsuario, "deleted", id, nil)
	return nil
}

// load reads from the repository, bypassing the cache, since cached copies
// carry neither the senha hash nor its digest.
func (s *UsuarioService) load(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario %d: %w", id, fromRepo(err, ErrReferenceNotFound))
	}
	return usuario, nil
}

func (s *UsuarioService) save(ctx context.Context, usuario *models.Usuario, action string, data interface{}) error {
	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return fmt.Errorf("failed to update usuario %d: %w", usuario.ID, fromRepo(err, ErrReferenceNotFound))
	}
	s.opts.invalidate(ctx, entityUsuario, usuario.ID)
	s.opts.emit(entityUsuario, action, usuario.ID, data)
	return nil
}

// checkUnique rejects cpf, email or senha digest values owned by an account
// other than excludeID.
func (s *UsuarioService) checkUnique(ctx context.Context, excludeID uint, cpf, email, digest string) error {
	lookups := []struct {
		field string
		value string
		get   func(context.Context, string) (*models.Usuario, error)
	}{
		{"cpf", cpf, s.usuarios.GetByCPF},
		{"email", email, s.usuarios.GetByEmail},
	}
	for _, l := range lookups {
		existing, err := l.get(ctx, l.value)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to check %s uniqueness: %w", l.field, err)
		case existing.ID != excludeID:
			return fmt.Errorf("%w: %s %s already registered", ErrConflict, l.field, l.value)
		}
	}

	taken, err := s.usuarios.ExistsBySenhaDigest(ctx, digest, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check senha uniqueness: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: senha already in use", ErrConflict)
	}
	return nil
}

func validateSenha(senha string) error {
	if senha == "" {
		return invalidf("senha is required")
	}
	if utf8.RuneCountInString(senha) > MaxSenhaLength {
		return invalidf("senha must have at most %d characters", MaxSenhaLength)
	}
	return nil
}
