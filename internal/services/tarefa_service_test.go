package services_test

import (
	"context"
	"testing"

	"sgp/internal/models"
	"sgp/internal/repositories"
	"sgp/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tarefaFixture struct {
	tarefas   *MockTarefaRepository
	projetos  *MockProjetoRepository
	usuarios  *MockUsuarioRepository
	publisher *recordingPublisher
	service   *services.TarefaService
}

func newTarefaFixture() *tarefaFixture {
	f := &tarefaFixture{
		tarefas:   new(MockTarefaRepository),
		projetos:  new(MockProjetoRepository),
		usuarios:  new(MockUsuarioRepository),
		publisher: &recordingPublisher{},
	}
	f.service = services.NewTarefaService(f.tarefas, f.projetos, f.usuarios, services.Options{Publisher: f.publisher})
	return f
}

func tarefaInput(t *testing.T) services.TarefaInput {
	pendente := models.StatusTarefaPendente
	return services.TarefaInput{
		Titulo:                 "Setup",
		DataCriacao:            date(t, "2024-01-02"),
		StatusPrioridadeTarefa: models.PrioridadeAlta,
		StatusTarefa:           &pendente,
		ProjetoID:              3,
		UsuarioID:              1,
	}
}

func (f *tarefaFixture) expectReferences() {
	f.projetos.On("GetByID", mock.Anything, uint(3)).Return(&models.Projeto{ID: 3, Nome: "SGP"}, nil).Once()
	f.usuarios.On("GetByID", mock.Anything, uint(1)).Return(&models.Usuario{ID: 1, Nome: "Ana"}, nil).Once()
}

func TestTarefaService_Create(t *testing.T) {
	f := newTarefaFixture()
	f.expectReferences()
	f.tarefas.On("Create", mock.Anything, mock.AnythingOfType("*models.Tarefa")).Return(nil).Once()

	tarefa, err := f.service.Create(context.Background(), tarefaInput(t))
	require.NoError(t, err)
	assert.Equal(t, uint(1), tarefa.ID)
	assert.Equal(t, "SGP", tarefa.Projeto.Nome)
	assert.Equal(t, "Ana", tarefa.Usuario.Nome)
	assert.Equal(t, []string{"tarefa.created"}, f.publisher.published())
	f.tarefas.AssertExpectations(t)
}

func TestTarefaService_CreateWithoutStatus(t *testing.T) {
	f := newTarefaFixture()
	f.expectReferences()
	f.tarefas.On("Create", mock.Anything, mock.MatchedBy(func(tr *models.Tarefa) bool {
		return tr.StatusTarefa == nil
	})).Return(nil).Once()

	in := tarefaInput(t)
	in.StatusTarefa = nil
	_, err := f.service.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestTarefaService_CreateRejections(t *testing.T) {
	unknown := models.StatusTarefa("ARQUIVADA")

	tests := []struct {
		name    string
		mutate  func(in *services.TarefaInput)
		setup   func(f *tarefaFixture)
		wantErr error
	}{
		{
			name:    "dataConclusao before dataCriacao",
			mutate:  func(in *services.TarefaInput) { in.DataConclusao = datePtr(t, "2024-01-01") },
			wantErr: services.ErrInvalidInput,
		},
		{
			name:    "unknown prioridade",
			mutate:  func(in *services.TarefaInput) { in.StatusPrioridadeTarefa = "CRITICA" },
			wantErr: services.ErrInvalidInput,
		},
		{
			name:    "unknown status",
			mutate:  func(in *services.TarefaInput) { in.StatusTarefa = &unknown },
			wantErr: services.ErrInvalidInput,
		},
		{
			name: "unknown projeto",
			setup: func(f *tarefaFixture) {
				f.projetos.On("GetByID", mock.Anything, uint(3)).Return(nil, repositories.ErrNotFound).Once()
			},
			wantErr: services.ErrReferenceNotFound,
		},
		{
			name: "unknown usuario",
			setup: func(f *tarefaFixture) {
				f.projetos.On("GetByID", mock.Anything, uint(3)).Return(&models.Projeto{ID: 3}, nil).Once()
				f.usuarios.On("GetByID", mock.Anything, uint(1)).Return(nil, repositories.ErrNotFound).Once()
			},
			wantErr: services.ErrReferenceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTarefaFixture()
			in := tarefaInput(t)
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.service.Create(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
			f.tarefas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTarefaService_UpdateStatus(t *testing.T) {
	f := newTarefaFixture()
	ctx := context.Background()

	f.tarefas.On("GetByID", mock.Anything, uint(5)).Return(&models.Tarefa{ID: 5}, nil).Once()
	f.tarefas.On("Update", mock.Anything, mock.MatchedBy(func(tr *models.Tarefa) bool {
		return tr.StatusTarefa != nil && *tr.StatusTarefa == models.StatusTarefaConcluida
	})).Return(nil).Once()

	tarefa, err := f.service.UpdateStatus(ctx, 5, models.StatusTarefaConcluida)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTarefaConcluida, *tarefa.StatusTarefa)
	assert.Equal(t, []string{"tarefa.status_changed"}, f.publisher.published())

	_, err = f.service.UpdateStatus(ctx, 5, "FEITA")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	f.tarefas.AssertExpectations(t)
}

func TestTarefaService_Update(t *testing.T) {
	f := newTarefaFixture()
	f.tarefas.On("GetByID", mock.Anything, uint(5)).Return(&models.Tarefa{ID: 5, Titulo: "Old"}, nil).Once()
	f.expectReferences()
	f.tarefas.On("Update", mock.Anything, mock.MatchedBy(func(tr *models.Tarefa) bool {
		return tr.ID == 5 && tr.Titulo == "Setup"
	})).Return(nil).Once()

	tarefa, err := f.service.Update(context.Background(), 5, tarefaInput(t))
	require.NoError(t, err)
	assert.Equal(t, "Setup", tarefa.Titulo)
	f.tarefas.AssertExpectations(t)
}

func TestTarefaService_Delete(t *testing.T) {
	f := newTarefaFixture()
	ctx := context.Background()
	f.tarefas.On("Delete", mock.Anything, uint(5)).Return(nil).Once()
	f.tarefas.On("Delete", mock.Anything, uint(6)).Return(repositories.ErrNotFound).Once()

	assert.NoError(t, f.service.Delete(ctx, 5))
	assert.ErrorIs(t, f.service.Delete(ctx, 6), services.ErrNotFound)
	assert.Equal(t, []string{"tarefa.deleted"}, f.publisher.published())
}

func TestTarefaService_ListValidatesFilters(t *testing.T) {
	f := newTarefaFixture()
	ctx := context.Background()

	_, err := f.service.List(ctx, repositories.TarefaFilter{Prioridade: "CRITICA"}, repositories.ListOptions{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	page := &repositories.Page[models.Tarefa]{Total: 0, Page: 1, PageSize: 10}
	filter := repositories.TarefaFilter{UsuarioID: 1, Status: models.StatusTarefaPendente}
	f.tarefas.On("List", mock.Anything, filter, repositories.ListOptions{Page: 2}).Return(page, nil).Once()
	got, err := f.service.List(ctx, filter, repositories.ListOptions{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, page, got)
}
