package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/auth"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/documents"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/masterdata"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/infrastructure/export"
	"github.com/ledgerdesk/ledgerdesk-api/internal/infrastructure/pdf"
	"github.com/ledgerdesk/ledgerdesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/ledgerdesk/ledgerdesk-api/internal/interfaces/http"
	"github.com/ledgerdesk/ledgerdesk-api/pkg/config"
	"github.com/ledgerdesk/ledgerdesk-api/pkg/logger"
)

// catalogPageSize caps the reference lists served to the console's dropdowns.
const catalogPageSize = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catalog cache. With no REDIS_ADDR configured the cache degrades to
	// hitting the repositories on every read.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, catalog cache disabled")
			redisClient = nil
		}
	}
	catalogCache := catalog.New(redisClient, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
	registerCatalogLoaders(catalogCache, catalogRepos{
		products:    productRepo,
		customers:   customerRepo,
		suppliers:   supplierRepo,
		accounts:    accountRepo,
		employees:   employeeRepo,
		departments: departmentRepo,
	})

	validator := validate.New()

	authUC := auth.NewUseCase(userRepo, companyRepo, catalogCache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, validator)
	companyUC := masterdata.NewCompanyUseCase(companyRepo, validator)
	departmentUC := masterdata.NewDepartmentUseCase(departmentRepo, catalogCache, validator)
	productUC := masterdata.NewProductUseCase(productRepo, catalogCache, validator)
	customerUC := masterdata.NewCustomerUseCase(customerRepo, catalogCache, validator)
	supplierUC := masterdata.NewSupplierUseCase(supplierRepo, catalogCache, validator)
	accountUC := masterdata.NewAccountUseCase(accountRepo, catalogCache, validator)
	employeeUC := masterdata.NewEmployeeUseCase(employeeRepo, departmentRepo, catalogCache, validator)
	userUC := masterdata.NewUserUseCase(userRepo, validator)
	documentUC := documents.NewUseCase(
		txRunner, documentRepo,
		productRepo, customerRepo, supplierRepo, employeeRepo, accountRepo,
		catalogCache, validator,
	)
	reportUC := reports.NewUseCase(reportRepo, documentRepo, companyRepo, map[string]reports.Renderer{
		"csv": export.NewCSVRenderer(),
		"xml": export.NewXMLRenderer(),
		"pdf": pdf.NewReportRenderer(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LedgerDesk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		DepartmentUC: departmentUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		SupplierUC:   supplierUC,
		AccountUC:    accountUC,
		EmployeeUC:   employeeUC,
		UserUC:       userUC,
		DocumentUC:   documentUC,
		ReportUC:     reportUC,
		Catalog:      catalogCache,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Redis close")
		}
	}

	log.Info().Msg("application stopped")
}
