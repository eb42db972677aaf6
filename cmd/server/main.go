package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/config"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/handler"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/notify"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	// Bus de cambios: Redis cuando hay réplicas, en memoria para una sola
	// instancia y desarrollo.
	var bus realtime.Bus
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		bus = realtime.NewRedisBus(client, zlog)
		zlog.Info("redis bus enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		bus = realtime.NewMemoryBus()
	}

	var notifier notify.Notifier
	if cfg.Twilio.Enabled() {
		notifier = notify.NewTwilioClient(cfg.Twilio)
		zlog.Info("twilio whatsapp notifications enabled")
	}

	// Services
	progressSvc := service.NewProgressService(repo, bus, zlog)
	registroSvc := service.NewRegistroService(repo, notifier, bus, zlog)
	clienteSvc := service.NewClienteService(repo, bus)
	referidoSvc := service.NewReferidoService(repo, bus)
	conversionSvc := service.NewConversionService(repo, bus, zlog)
	premioSvc := service.NewPremioService(repo, bus)
	usuarioSvc := service.NewUsuarioService(repo)
	restauranteSvc := service.NewRestauranteService(repo)
	superadminSvc := service.NewSuperAdminService(repo)

	// Telegram bot
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot, err = telegram.NewBot(cfg, repo, zlog)
		if err != nil {
			zlog.Warn("failed to create telegram bot", zap.Error(err))
			bot = nil
		}
	}

	var staff service.StaffNotifier
	if bot != nil {
		staff = bot
	}
	watcher := service.NewWatcher(bus, progressSvc, staff, zlog)

	h := handler.New(registroSvc, progressSvc, clienteSvc, referidoSvc, conversionSvc, premioSvc, usuarioSvc, restauranteSvc, superadminSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
	}))

	app.Get("/health", h.Health)

	// Public: registro de clientes y alta de restaurantes
	app.Get("/r/:slug", h.GetRestaurantePublico)
	app.Post("/registro", h.Registro)
	app.Post("/signup", h.Signup)

	// Staff API (token de API del restaurante)
	api := app.Group("/api", middleware.StaffAuth(repo))

	api.Get("/restaurante", h.GetPerfil)
	api.Put("/restaurante", h.UpdatePerfil)
	api.Get("/dashboard", h.GetStats)

	api.Get("/clientes", h.ListClientes)
	api.Post("/clientes", h.CreateCliente)
	api.Get("/clientes/:id", h.GetCliente)
	api.Put("/clientes/:id", h.UpdateCliente)
	api.Delete("/clientes/:id", h.DeleteCliente)

	api.Get("/referidos", h.ListReferidos)
	api.Post("/referidos", h.CreateReferido)
	api.Put("/referidos/:id/consumo", h.MarcarConsumo)

	api.Get("/conversiones", h.ListConversiones)
	api.Post("/conversiones", h.CreateConversion)
	api.Put("/conversiones/:id/estado", h.UpdateConversionEstado)

	api.Get("/premios", h.ListPremios)
	api.Post("/premios", h.CreatePremio)
	api.Put("/premios/:id", h.UpdatePremio)
	api.Put("/premios/:id/activar", h.TogglePremio)
	api.Delete("/premios/:id", h.DeletePremio)

	api.Get("/usuarios", h.ListUsuarios)
	api.Post("/usuarios", h.CreateUsuario)
	api.Put("/usuarios/:id", h.UpdateUsuario)
	api.Delete("/usuarios/:id", h.DeleteUsuario)

	api.Get("/validaciones", h.ListValidaciones)
	api.Post("/validaciones/:id/aprobar", h.AprobarValidacion)
	api.Post("/validaciones/:id/rechazar", h.RechazarValidacion)

	// Superadmin
	admin := app.Group("/api/admin", middleware.SuperAdmin(cfg.Server.SuperAdminToken))
	admin.Get("/stats", h.AdminPlatformStats)
	admin.Get("/restaurantes", h.AdminListRestaurantes)
	admin.Get("/restaurantes/:id", h.AdminGetRestaurante)
	admin.Put("/restaurantes/:id/estado", h.AdminSetSuscripcion)
	admin.Get("/planes", h.AdminListPlanes)
	admin.Post("/planes", h.AdminCreatePlan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		zlog.Fatal("failed to start watcher", zap.Error(err))
	}

	if bot != nil {
		go bot.StartPolling(ctx)
		zlog.Info("telegram bot started")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		cancel()
		_ = app.Shutdown()
	}()

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
