package services_test

import (
	"context"
	"sync"

	"sgp/internal/models"
	"sgp/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUsuarioRepository is a mock implementation of repositories.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	args := m.Called(ctx, usuario)
	if args.Error(0) == nil && usuario.ID == 0 {
		usuario.ID = 1
	}
	return args.Error(0)
}

func (m *MockUsuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	return usuarioResult(m.Called(ctx, id))
}

func (m *MockUsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return usuarioResult(m.Called(ctx, email))
}

func (m *MockUsuarioRepository) GetByCPF(ctx context.Context, cpf string) (*models.Usuario, error) {
	return usuarioResult(m.Called(ctx, cpf))
}

func (m *MockUsuarioRepository) ExistsBySenhaDigest(ctx context.Context, digest string, excludeID uint) (bool, error) {
	args := m.Called(ctx, digest, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsuarioRepository) List(ctx context.Context, opts repositories.ListOptions) (*repositories.Page[models.Usuario], error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Page[models.Usuario]), args.Error(1)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return m.Called(ctx, usuario).Error(0)
}

func (m *MockUsuarioRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func usuarioResult(args mock.Arguments) (*models.Usuario, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

// MockProjetoRepository is a mock implementation of repositories.ProjetoRepository
type MockProjetoRepository struct {
	mock.Mock
}

func (m *MockProjetoRepository) Create(ctx context.Context, projeto *models.Projeto) error {
	args := m.Called(ctx, projeto)
	if args.Error(0) == nil && projeto.ID == 0 {
		projeto.ID = 1
	}
	return args.Error(0)
}

func (m *MockProjetoRepository) GetByID(ctx context.Context, id uint) (*models.Projeto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Projeto), args.Error(1)
}

func (m *MockProjetoRepository) List(ctx context.Context, filter repositories.ProjetoFilter, opts repositories.ListOptions) (*repositories.Page[models.Projeto], error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Page[models.Projeto]), args.Error(1)
}

func (m *MockProjetoRepository) CountByResponsavel(ctx context.Context, usuarioID uint) (int64, error) {
	args := m.Called(ctx, usuarioID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjetoRepository) Update(ctx context.Context, projeto *models.Projeto) error {
	return m.Called(ctx, projeto).Error(0)
}

func (m *MockProjetoRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockTarefaRepository is a mock implementation of repositories.TarefaRepository
type MockTarefaRepository struct {
	mock.Mock
}

func (m *MockTarefaRepository) Create(ctx context.Context, tarefa *models.Tarefa) error {
	args := m.Called(ctx, tarefa)
	if args.Error(0) == nil && tarefa.ID == 0 {
		tarefa.ID = 1
	}
	return args.Error(0)
}

func (m *MockTarefaRepository) GetByID(ctx context.Context, id uint) (*models.Tarefa, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tarefa), args.Error(1)
}

func (m *MockTarefaRepository) List(ctx context.Context, filter repositories.TarefaFilter, opts repositories.ListOptions) (*repositories.Page[models.Tarefa], error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Page[models.Tarefa]), args.Error(1)
}

func (m *MockTarefaRepository) CountByProjeto(ctx context.Context, projetoID uint) (int64, error) {
	args := m.Called(ctx, projetoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTarefaRepository) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	args := m.Called(ctx, usuarioID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTarefaRepository) Update(ctx context.Context, tarefa *models.Tarefa) error {
	return m.Called(ctx, tarefa).Error(0)
}

func (m *MockTarefaRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// recordingPublisher captures published routing keys.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}
