package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/grocery-pos/internal/application/auth"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/application/reports"
	"github.com/tu-usuario/grocery-pos/internal/application/usecase"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/kvstore"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/grocery-pos/internal/interfaces/http"
	"github.com/tu-usuario/grocery-pos/pkg/config"
	"github.com/tu-usuario/grocery-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		productRepo  repository.ProductRepository
		customerRepo repository.CustomerRepository
		saleRepo     repository.SaleRepository
		userRepo     repository.UserRepository
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		customerRepo = postgres.NewCustomerRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	case config.StoreLocal:
		store, err := kvstore.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir almacén local")
		}
		productRepo = kvstore.NewProductRepository(store)
		customerRepo = kvstore.NewCustomerRepository(store)
		saleRepo = kvstore.NewSaleRepository(store)
		userRepo = kvstore.NewUserRepository(store)
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("STORE_DRIVER desconocido")
	}

	engine := checkout.NewEngine(productRepo, customerRepo, saleRepo, cfg.POS.TaxRate)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	reportsUC := reports.NewReportsUseCase(saleRepo, productRepo, customerRepo, userRepo, cfg.POS.LowStockThreshold)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProductUC:         productUC,
		CustomerUC:        customerUC,
		Engine:            engine,
		ReportsUC:         reportsUC,
		JWTSecret:         cfg.JWT.Secret,
		ShopName:          cfg.App.Name,
		LowStockThreshold: cfg.POS.LowStockThreshold,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
