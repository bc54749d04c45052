package handlers

import (
	"fmt"

	"sgp/internal/models"
	"sgp/internal/repositories"
	"sgp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TarefaHandler handles HTTP requests for tarefas.
type TarefaHandler struct {
	service  *services.TarefaService
	validate *validator.Validate
}

// NewTarefaHandler creates a new TarefaHandler.
func NewTarefaHandler(service *services.TarefaService) *TarefaHandler {
	return &TarefaHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the tarefa routes.
func (h *TarefaHandler) RegisterRoutes(router fiber.Router) {
	tarefaRoutes := router.Group("/tarefas")
	tarefaRoutes.Get("/", h.HandleList)
	tarefaRoutes.Post("/", h.HandleCreate)
	tarefaRoutes.Get("/:id", h.HandleGet)
	tarefaRoutes.Put("/:id", h.HandleUpdate)
	tarefaRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	tarefaRoutes.Delete("/:id", h.HandleDelete)
}

// TarefaRequest represents the request body to create or replace a tarefa.
type TarefaRequest struct {
	Titulo                 string                        `json:"titulo" validate:"required,max=100"`
	Descricao              string                        `json:"descricao"`
	DataCriacao            string                        `json:"dataCriacao" validate:"required,datetime=2006-01-02"`
	DataConclusao          string                        `json:"dataConclusao" validate:"omitempty,datetime=2006-01-02"`
	StatusPrioridadeTarefa models.StatusPrioridadeTarefa `json:"statusPrioridadeTarefa" validate:"required,enum"`
	StatusTarefa           *models.StatusTarefa          `json:"statusTarefa" validate:"omitempty,enum"`
	ProjetoID              uint                          `json:"projetoId" validate:"required"`
	UsuarioID              uint                          `json:"usuarioId" validate:"required"`
}

func (r TarefaRequest) input() (services.TarefaInput, error) {
	criacao, conclusao, err := parseDates(r.DataCriacao, r.DataConclusao)
	if err != nil {
		return services.TarefaInput{}, err
	}
	return services.TarefaInput{
		Titulo:                 r.Titulo,
		Descricao:              r.Descricao,
		DataCriacao:            criacao,
		DataConclusao:          conclusao,
		StatusPrioridadeTarefa: r.StatusPrioridadeTarefa,
		StatusTarefa:           r.StatusTarefa,
		ProjetoID:              r.ProjetoID,
		UsuarioID:              r.UsuarioID,
	}, nil
}

// TarefaStatusRequest represents the request body for a status change.
type TarefaStatusRequest struct {
	StatusTarefa models.StatusTarefa `json:"statusTarefa" validate:"required,enum"`
}

// HandleList lists tarefas, optionally filtered by projetoId, usuarioId,
// status and prioridade.
func (h *TarefaHandler) HandleList(c *fiber.Ctx) error {
	projetoID, err := uintQuery(c, "projetoId")
	if err != nil {
		return badRequest(c, err)
	}
	usuarioID, err := uintQuery(c, "usuarioId")
	if err != nil {
		return badRequest(c, err)
	}
	filter := repositories.TarefaFilter{
		ProjetoID:  projetoID,
		UsuarioID:  usuarioID,
		Status:     models.StatusTarefa(c.Query("status")),
		Prioridade: models.StatusPrioridadeTarefa(c.Query("prioridade")),
	}

	page, err := h.service.List(c.UserContext(), filter, listOptions(c))
	if err != nil {
		return respondError(c, "Could not retrieve tarefas", err)
	}
	return c.JSON(page)
}

func (h *TarefaHandler) HandleCreate(c *fiber.Ctx) error {
	var req TarefaRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, err)
	}

	tarefa, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, "Could not create tarefa", err)
	}
	return c.Status(fiber.StatusCreated).JSON(tarefa)
}

func (h *TarefaHandler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	tarefa, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve tarefa %d", id), err)
	}
	return c.JSON(tarefa)
}

func (h *TarefaHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req TarefaRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, err)
	}

	tarefa, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update tarefa %d", id), err)
	}
	return c.JSON(tarefa)
}

func (h *TarefaHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req TarefaStatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	tarefa, err := h.service.UpdateStatus(c.UserContext(), id, req.StatusTarefa)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update status of tarefa %d", id), err)
	}
	return c.JSON(tarefa)
}

func (h *TarefaHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, fmt.Sprintf("Could not delete tarefa %d", id), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Tarefa %d deleted successfully", id),
	})
}
