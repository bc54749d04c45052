package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sgp/internal/models"
	"sgp/internal/repositories"
	"sgp/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(t *testing.T) (*services.AuthService, *MockUsuarioRepository, *models.Usuario) {
	t.Helper()
	hasher := services.NewSenhaHasher("pepper", bcrypt.MinCost)
	hash, err := hasher.Hash("s3nha")
	require.NoError(t, err)

	usuario := &models.Usuario{
		ID:        7,
		Email:     "ana@example.com",
		SenhaHash: hash,
		Status:    models.StatusUsuarioAtivo,
	}
	repo := new(MockUsuarioRepository)
	return services.NewAuthService(repo, hasher, testJWTSecret, time.Hour), repo, usuario
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authService, repo, usuario := newAuthService(t)

	repo.On("GetByEmail", mock.Anything, usuario.Email).Return(usuario, nil).Once()
	token, err := authService.Login(ctx, usuario.Email, "s3nha")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["usuario_id"])
	assert.Equal(t, usuario.Email, claims["email"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotNil(t, claims["exp"])
	repo.AssertExpectations(t)
}

func TestAuthService_LoginRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong senha", func(t *testing.T) {
		authService, repo, usuario := newAuthService(t)
		repo.On("GetByEmail", mock.Anything, usuario.Email).Return(usuario, nil).Once()
		_, err := authService.Login(ctx, usuario.Email, "errada")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		authService, repo, _ := newAuthService(t)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
		_, err := authService.Login(ctx, "nobody@example.com", "s3nha")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("blocked usuario", func(t *testing.T) {
		authService, repo, usuario := newAuthService(t)
		usuario.Status = models.StatusUsuarioBloqueado
		repo.On("GetByEmail", mock.Anything, usuario.Email).Return(usuario, nil).Once()
		_, err := authService.Login(ctx, usuario.Email, "s3nha")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Contains(t, err.Error(), "BLOQUEADO")
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _, _ := newAuthService(t)

	sign := func(claims jwt.MapClaims, secret string) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	valid := sign(jwt.MapClaims{"usuario_id": 7, "email": "ana@example.com", "exp": time.Now().Add(time.Hour).Unix()}, testJWTSecret)
	claims, err := authService.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, uint(7), services.UsuarioID(claims))
	assert.Equal(t, "ana@example.com", claims["email"])

	tests := map[string]string{
		"garbage":         "invalid.token.string",
		"expired":         sign(jwt.MapClaims{"usuario_id": 7, "exp": time.Now().Add(-time.Hour).Unix()}, testJWTSecret),
		"wrong secret":    sign(jwt.MapClaims{"usuario_id": 7, "exp": time.Now().Add(time.Hour).Unix()}, "other"),
		"missing usuario": sign(jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, testJWTSecret),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := authService.ValidateToken(token)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid token")
		})
	}
}
