package handlers

import (
	"fmt"

	"sgp/internal/models"
	"sgp/internal/repositories"
	"sgp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProjetoHandler handles HTTP requests for projetos.
type ProjetoHandler struct {
	service  *services.ProjetoService
	validate *validator.Validate
}

// NewProjetoHandler creates a new ProjetoHandler.
func NewProjetoHandler(service *services.ProjetoService) *ProjetoHandler {
	return &ProjetoHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the projeto routes.
func (h *ProjetoHandler) RegisterRoutes(router fiber.Router) {
	projetoRoutes := router.Group("/projetos")
	projetoRoutes.Get("/", h.HandleList)
	projetoRoutes.Post("/", h.HandleCreate)
	projetoRoutes.Get("/:id", h.HandleGet)
	projetoRoutes.Put("/:id", h.HandleUpdate)
	projetoRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	projetoRoutes.Delete("/:id", h.HandleDelete)
	projetoRoutes.Get("/:id/tarefas", h.HandleListTarefas)
}

// ProjetoRequest represents the request body to create or replace a projeto.
type ProjetoRequest struct {
	Nome          string               `json:"nome" validate:"required,max=100"`
	Descricao     string               `json:"descricao"`
	DataInicio    string               `json:"dataInicio" validate:"required,datetime=2006-01-02"`
	DataFinal     string               `json:"dataFinal" validate:"omitempty,datetime=2006-01-02"`
	Status        models.StatusProjeto `json:"status" validate:"required,enum"`
	ResponsavelID uint                 `json:"responsavelId" validate:"required"`
}

func (r ProjetoRequest) input() (services.ProjetoInput, error) {
	inicio, final, err := parseDates(r.DataInicio, r.DataFinal)
	if err != nil {
		return services.ProjetoInput{}, err
	}
	return services.ProjetoInput{
		Nome:          r.Nome,
		Descricao:     r.Descricao,
		DataInicio:    inicio,
		DataFinal:     final,
		Status:        r.Status,
		ResponsavelID: r.ResponsavelID,
	}, nil
}

// ProjetoStatusRequest represents the request body for a status change.
type ProjetoStatusRequest struct {
	Status models.StatusProjeto `json:"status" validate:"required,enum"`
}

// HandleList lists projetos, optionally filtered by status and responsavelId.
func (h *ProjetoHandler) HandleList(c *fiber.Ctx) error {
	responsavelID, err := uintQuery(c, "responsavelId")
	if err != nil {
		return badRequest(c, err)
	}
	filter := repositories.ProjetoFilter{
		Status:        models.StatusProjeto(c.Query("status")),
		ResponsavelID: responsavelID,
	}

	page, err := h.service.List(c.UserContext(), filter, listOptions(c))
	if err != nil {
		return respondError(c, "Could not retrieve projetos", err)
	}
	return c.JSON(page)
}

func (h *ProjetoHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProjetoRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, err)
	}

	projeto, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, "Could not create projeto", err)
	}
	return c.Status(fiber.StatusCreated).JSON(projeto)
}

func (h *ProjetoHandler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	projeto, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve projeto %d", id), err)
	}
	return c.JSON(projeto)
}

func (h *ProjetoHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req ProjetoRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, err)
	}

	projeto, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update projeto %d", id), err)
	}
	return c.JSON(projeto)
}

func (h *ProjetoHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req ProjetoStatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	projeto, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update status of projeto %d", id), err)
	}
	return c.JSON(projeto)
}

func (h *ProjetoHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, fmt.Sprintf("Could not delete projeto %d", id), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Projeto %d deleted successfully", id),
	})
}

// HandleListTarefas lists the tarefas of one projeto.
func (h *ProjetoHandler) HandleListTarefas(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	page, err := h.service.ListTarefas(c.UserContext(), id, listOptions(c))
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve tarefas of projeto %d", id), err)
	}
	return c.JSON(page)
}
