package handlers

import (
	"fmt"

	"sgp/internal/models"
	"sgp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UsuarioHandler handles HTTP requests for usuarios.
type UsuarioHandler struct {
	service  *services.UsuarioService
	validate *validator.Validate
}

// NewUsuarioHandler creates a new UsuarioHandler.
func NewUsuarioHandler(service *services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the usuario routes.
func (h *UsuarioHandler) RegisterRoutes(router fiber.Router) {
	usuarioRoutes := router.Group("/usuarios")
	usuarioRoutes.Get("/", h.HandleList)
	usuarioRoutes.Get("/:id", h.HandleGet)
	usuarioRoutes.Put("/:id", h.HandleUpdate)
	usuarioRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	usuarioRoutes.Delete("/:id", h.HandleDelete)
}

// UpdateUsuarioRequest represents the request body for a profile update.
// Omitting senha keeps the current one.
type UpdateUsuarioRequest struct {
	Nome           string `json:"nome" validate:"required,max=50"`
	CPF            string `json:"cpf" validate:"required,len=11,number"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Senha          string `json:"senha" validate:"omitempty,max=19"`
	DataNascimento string `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
}

// UsuarioStatusRequest represents the request body for a status change.
type UsuarioStatusRequest struct {
	Status models.StatusUsuario `json:"status" validate:"required,enum"`
}

func (h *UsuarioHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), listOptions(c))
	if err != nil {
		return respondError(c, "Could not retrieve usuarios", err)
	}
	return c.JSON(page)
}

func (h *UsuarioHandler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	usuario, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve usuario %d", id), err)
	}
	return c.JSON(usuario)
}

func (h *UsuarioHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req UpdateUsuarioRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	nascimento, err := models.ParseDate(req.DataNascimento)
	if err != nil {
		return badRequest(c, err)
	}

	usuario, err := h.service.Update(c.UserContext(), id, services.UpdateUsuarioInput{
		Nome:           req.Nome,
		CPF:            req.CPF,
		Email:          req.Email,
		Senha:          req.Senha,
		DataNascimento: nascimento,
	})
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update usuario %d", id), err)
	}
	return c.JSON(usuario)
}

func (h *UsuarioHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req UsuarioStatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	usuario, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not update status of usuario %d", id), err)
	}
	return c.JSON(usuario)
}

func (h *UsuarioHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, fmt.Sprintf("Could not delete usuario %d", id), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Usuario %d deleted successfully", id),
	})
}
