package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipebook/internal/recipes/adapters/http/auth"
	"recipebook/internal/recipes/domain/services"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*services.AuthToken, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthToken), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*services.AuthToken, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthToken), args.Error(1)
}

func newTestApp(svc *mockAuthService) *fiber.App {
	app := fiber.New()
	handler := auth.NewHandler(svc)
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string) (int, map[string]string) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp.StatusCode, decoded
}

func TestRegisterHandler(t *testing.T) {
	token := &services.AuthToken{
		UserID:    "user-id-1",
		Token:     "jwt-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	t.Run("Успешная регистрация возвращает токен и 200", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, "Ann", "ann@example.com", "pw12345").Return(token, nil).Once()

		status, body := postJSON(t, newTestApp(svc), "/api/auth/register", map[string]string{
			"name":     "Ann",
			"email":    "ann@example.com",
			"password": "pw12345",
		})

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "jwt-token", body["token"])
		svc.AssertExpectations(t)
	})

	t.Run("Отсутствие обязательных полей дает 400", func(t *testing.T) {
		svc := new(mockAuthService)

		status, body := postJSON(t, newTestApp(svc), "/api/auth/register", map[string]string{
			"email": "ann@example.com",
		})

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.NotEmpty(t, body["error"])
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("Занятый email дает 400", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, "Ann", "ann@example.com", "pw12345").
			Return(nil, services.ErrEmailAlreadyExists).Once()

		status, body := postJSON(t, newTestApp(svc), "/api/auth/register", map[string]string{
			"name":     "Ann",
			"email":    "ann@example.com",
			"password": "pw12345",
		})

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "User already exists", body["error"])
	})
}

func TestLoginHandler(t *testing.T) {
	token := &services.AuthToken{
		UserID:    "user-id-1",
		Token:     "jwt-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	t.Run("Успешный вход возвращает токен", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, "ann@example.com", "pw12345").Return(token, nil).Once()

		status, body := postJSON(t, newTestApp(svc), "/api/auth/login", map[string]string{
			"email":    "ann@example.com",
			"password": "pw12345",
		})

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "jwt-token", body["token"])
	})

	t.Run("Неверные учетные данные дают 401", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, "ann@example.com", "wrong").
			Return(nil, services.ErrInvalidCredentials).Once()

		status, body := postJSON(t, newTestApp(svc), "/api/auth/login", map[string]string{
			"email":    "ann@example.com",
			"password": "wrong",
		})

		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}
