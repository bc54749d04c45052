package handlers

import (
	"sgp/internal/models"
	"sgp/internal/services"
	"sgp/pkg/logutils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService    *services.AuthService
	usuarioService *services.UsuarioService
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, usuarioService *services.UsuarioService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		usuarioService: usuarioService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Nome           string               `json:"nome" validate:"required,max=50"`
	CPF            string               `json:"cpf" validate:"required,len=11,number"`
	Email          string               `json:"email" validate:"required,email,max=255"`
	Senha          string               `json:"senha" validate:"required,max=19"`
	DataNascimento string               `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	Status         models.StatusUsuario `json:"status" validate:"omitempty,enum"`
}

// HandleRegister handles new usuario registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	nascimento, err := models.ParseDate(req.DataNascimento)
	if err != nil {
		return badRequest(c, err)
	}

	usuario, err := h.usuarioService.Register(c.UserContext(), services.RegisterUsuarioInput{
		Nome:           req.Nome,
		CPF:            req.CPF,
		Email:          req.Email,
		Senha:          req.Senha,
		DataNascimento: nascimento,
		Status:         req.Status,
	})
	if err != nil {
		return respondError(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuario registered successfully",
		"usuario": usuario,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// HandleLogin handles login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Email, req.Senha)
	if err != nil {
		logutils.Log.WithError(err).WithField("email", req.Email).Warn("Login failed")
		return respondError(c, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
