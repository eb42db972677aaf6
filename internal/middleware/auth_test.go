package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

type stubResolver struct {
	restaurantes map[string]*model.Restaurante
}

func (s *stubResolver) GetRestauranteByTokenHash(_ context.Context, tokenHash string) (*model.Restaurante, error) {
	if rest, ok := s.restaurantes[tokenHash]; ok {
		return rest, nil
	}
	return nil, repository.ErrRestauranteNotFound
}

func appConAuth(resolver RestauranteResolver) *fiber.App {
	app := fiber.New()
	app.Get("/api/ping", StaffAuth(resolver), func(c *fiber.Ctx) error {
		rest := GetRestaurante(c)
		return c.JSON(fiber.Map{"restaurante": rest.Nombre})
	})
	return app
}

func TestStaffAuth(t *testing.T) {
	token := "token-de-prueba"
	resolver := &stubResolver{restaurantes: map[string]*model.Restaurante{
		service.HashToken(token): {
			ID:                uuid.New(),
			Nombre:            "La Esquina",
			EstadoSuscripcion: model.SuscripcionActiva,
		},
	}}
	app := appConAuth(resolver)

	req := httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestStaffAuthSinToken(t *testing.T) {
	app := appConAuth(&stubResolver{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ping", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestStaffAuthTokenInvalido(t *testing.T) {
	app := appConAuth(&stubResolver{})

	req := httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer no-existe")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestStaffAuthSuscripcionSuspendida(t *testing.T) {
	token := "token-suspendido"
	resolver := &stubResolver{restaurantes: map[string]*model.Restaurante{
		service.HashToken(token): {
			ID:                uuid.New(),
			Nombre:            "Suspendido",
			EstadoSuscripcion: model.SuscripcionSuspendida,
		},
	}}
	app := appConAuth(resolver)

	req := httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSuperAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/admin/ping", SuperAdmin("admin-token"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "admin-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "otro")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSuperAdminDeshabilitado(t *testing.T) {
	app := fiber.New()
	app.Get("/admin/ping", SuperAdmin(""), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("expected 403 when no admin token is configured, got %d", resp.StatusCode)
	}
}
