package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sgp/internal/repositories"
	"sgp/pkg/logutils"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AuthService handles authentication and token validation.
type AuthService struct {
	usuarios  repositories.UsuarioRepository
	hasher    *SenhaHasher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(usuarios repositories.UsuarioRepository, hasher *SenhaHasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		usuarios:  usuarios,
		hasher:    hasher,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login authenticates an ATIVO usuario by email and senha and returns a
// signed JWT.
func (s *AuthService) Login(ctx context.Context, email, senha string) (string, error) {
	usuario, err := s.usuarios.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to load usuario: %w", err)
	}

	if !s.hasher.Compare(usuario.SenhaHash, senha) {
		return "", ErrInvalidCredentials
	}
	if !usuario.CanLogin() {
		return "", fmt.Errorf("%w: usuario is %s", ErrInvalidCredentials, usuario.Status)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": usuario.ID,
		"email":      usuario.Email,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	logutils.Log.WithFields(logutils.Fields{"usuario_id": usuario.ID}).Info("Usuario logged in")
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, ok := claims["usuario_id"].(float64); !ok {
		return nil, errors.New("invalid token: missing usuario_id")
	}
	return claims, nil
}

// UsuarioID extracts the usuario id claim of a validated token.
func UsuarioID(claims jwt.MapClaims) uint {
	id, _ := claims["usuario_id"].(float64)
	return uint(id)
}
