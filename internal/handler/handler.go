package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

type Handler struct {
	registroSvc    *service.RegistroService
	progressSvc    *service.ProgressService
	clienteSvc     *service.ClienteService
	referidoSvc    *service.ReferidoService
	conversionSvc  *service.ConversionService
	premioSvc      *service.PremioService
	usuarioSvc     *service.UsuarioService
	restauranteSvc *service.RestauranteService
	superadminSvc  *service.SuperAdminService
}

func New(
	registroSvc *service.RegistroService,
	progressSvc *service.ProgressService,
	clienteSvc *service.ClienteService,
	referidoSvc *service.ReferidoService,
	conversionSvc *service.ConversionService,
	premioSvc *service.PremioService,
	usuarioSvc *service.UsuarioService,
	restauranteSvc *service.RestauranteService,
	superadminSvc *service.SuperAdminService,
) *Handler {
	return &Handler{
		registroSvc:    registroSvc,
		progressSvc:    progressSvc,
		clienteSvc:     clienteSvc,
		referidoSvc:    referidoSvc,
		conversionSvc:  conversionSvc,
		premioSvc:      premioSvc,
		usuarioSvc:     usuarioSvc,
		restauranteSvc: restauranteSvc,
		superadminSvc:  superadminSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
