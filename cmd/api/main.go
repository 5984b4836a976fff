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

	"github.com/jhoicas/AgroGestion-api/internal/application/finance"
	"github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
	"github.com/jhoicas/AgroGestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/AgroGestion-api/internal/interfaces/http"
	"github.com/jhoicas/AgroGestion-api/pkg/config"
	"github.com/jhoicas/AgroGestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	farmRepo := postgres.NewFarmRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	itemRepo := postgres.NewSupplyItemRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	incomeRepo := postgres.NewIncomeRepository(pool)
	animalRepo := postgres.NewAnimalRepository(pool)
	mortalityRepo := postgres.NewMortalityRepository(pool)
	treatmentRepo := postgres.NewTreatmentRepository(pool)
	weighingRepo := postgres.NewWeighingRepository(pool)
	pastureRepo := postgres.NewPastureRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	financeUC := finance.NewUseCase(catalogRepo, movementRepo, expenseRepo, incomeRepo, log)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, movementRepo, batchRepo, farmRepo, financeUC)
	livestockUC := livestock.NewUseCase(
		txRunner, animalRepo, mortalityRepo, treatmentRepo, weighingRepo,
		itemRepo, pastureRepo, catalogRepo, financeUC, inventoryUC, log,
	)
	supplyItemUC := usecase.NewSupplyItemUseCase(itemRepo, batchRepo, movementRepo)
	pastureUC := usecase.NewPastureUseCase(pastureRepo)
	farmUC := usecase.NewFarmUseCase(farmRepo)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroGestión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		FinanceUC:    financeUC,
		LivestockUC:  livestockUC,
		SupplyItemUC: supplyItemUC,
		PastureUC:    pastureUC,
		FarmUC:       farmUC,
		CatalogUC:    catalogUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
