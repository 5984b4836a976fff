package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/finance"
	"github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
	"github.com/jhoicas/AgroGestion-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *inventory.UseCase
	FinanceUC    *finance.UseCase
	LivestockUC  *livestock.UseCase
	SupplyItemUC *usecase.SupplyItemUseCase
	PastureUC    *usecase.PastureUseCase
	FarmUC       *usecase.FarmUseCase
	CatalogUC    *usecase.CatalogUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas de negocio exigen
// Bearer Token; el FarmID del token es el tenant de cada operación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Fincas. Alta y listado solo para admin; la finca del token para todos.
	farms := protected.Group("/farms")
	farmHandler := NewFarmHandler(deps.FarmUC)
	farms.Get("/current", farmHandler.GetCurrent)
	farms.Post("/", RequireRole(jwt.RoleAdmin), farmHandler.Create)
	farms.Put("/:id", RequireRole(jwt.RoleAdmin), farmHandler.Update)
	farms.Get("/", farmHandler.List)

	// Catálogos globales (solo lectura).
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/expense-categories", catalogHandler.ExpenseCategories)
	catalogs.Get("/income-categories", catalogHandler.IncomeCategories)
	catalogs.Get("/units", catalogHandler.Units)
	catalogs.Get("/treatment-types", catalogHandler.TreatmentTypes)
	catalogs.Get("/breeds", catalogHandler.Breeds)
	catalogs.Get("/supply-categories", catalogHandler.SupplyCategories)

	// Insumos.
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyItemHandler(deps.SupplyItemUC)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Get("/:id/batches", supplyHandler.ListBatches)

	// Motor de inventario (libro de movimientos).
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/entries", inventoryHandler.RegisterEntry)
	inv.Post("/consumptions", inventoryHandler.RegisterConsumption)
	inv.Post("/adjustments", RequireRole(jwt.RoleAdmin, jwt.RoleMayordomo), inventoryHandler.RegisterAdjustment)
	inv.Post("/transfers", RequireRole(jwt.RoleAdmin, jwt.RoleMayordomo), inventoryHandler.Transfer)
	inv.Get("/stock", inventoryHandler.GetStock)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/movements", inventoryHandler.ListMovements)

	// Libros financieros (asientos manuales).
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	expenses := protected.Group("/expenses")
	expenses.Post("/", financeHandler.CreateExpense)
	expenses.Get("/", financeHandler.ListExpenses)
	expenses.Put("/:id", financeHandler.UpdateExpense)
	expenses.Delete("/:id", financeHandler.DeleteExpense)
	incomes := protected.Group("/incomes")
	incomes.Post("/", financeHandler.CreateIncome)
	incomes.Get("/", financeHandler.ListIncomes)
	incomes.Put("/:id", financeHandler.UpdateIncome)
	incomes.Delete("/:id", financeHandler.DeleteIncome)

	// Hato.
	animals := protected.Group("/animals")
	animalHandler := NewAnimalHandler(deps.LivestockUC)
	animals.Post("/", animalHandler.Create)
	animals.Get("/", animalHandler.List)
	animals.Get("/:id", animalHandler.GetByID)
	animals.Post("/:id/sell", animalHandler.Sell)
	animals.Put("/:id/lot", animalHandler.AssignLot)
	animals.Delete("/:id", RequireRole(jwt.RoleAdmin, jwt.RoleMayordomo), animalHandler.Delete)

	// Mortalidad.
	mortalities := protected.Group("/mortalities")
	mortalityHandler := NewMortalityHandler(deps.LivestockUC)
	mortalities.Post("/", mortalityHandler.Register)
	mortalities.Get("/", mortalityHandler.List)
	mortalities.Delete("/:id", RequireRole(jwt.RoleAdmin, jwt.RoleMayordomo), mortalityHandler.Delete)

	// Tratamientos.
	treatments := protected.Group("/treatments")
	treatmentHandler := NewTreatmentHandler(deps.LivestockUC)
	treatments.Post("/", treatmentHandler.Register)
	treatments.Get("/", treatmentHandler.List)
	treatments.Delete("/:id", RequireRole(jwt.RoleAdmin, jwt.RoleMayordomo), treatmentHandler.Delete)

	// Pesajes.
	weighings := protected.Group("/weighings")
	weighingHandler := NewWeighingHandler(deps.LivestockUC)
	weighings.Post("/", weighingHandler.Add)
	weighings.Get("/", weighingHandler.ListByAnimal)
	weighings.Delete("/:id", weighingHandler.Delete)

	// Potreros.
	pastures := protected.Group("/pastures")
	pastureHandler := NewPastureHandler(deps.PastureUC)
	pastures.Post("/", pastureHandler.Create)
	pastures.Get("/", pastureHandler.List)
	pastures.Get("/:id", pastureHandler.GetByID)
	pastures.Put("/:id", pastureHandler.Update)
}
