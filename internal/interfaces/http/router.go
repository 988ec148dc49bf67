package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/application/catalog"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *catalog.ItemUseCase
	SupplierUC   *catalog.SupplierUseCase
	CustomerUC   *catalog.CustomerUseCase
	QuoteUC      *catalog.QuoteUseCase
	FormulaUC    *bom.UseCase
	FormulaPDF   *bom.PDFUseCase
	ProductionUC *production.UseCase
	PurchaseUC   *purchasing.UseCase
	SalesUC      *sales.UseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de artículos (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Proveedores (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Clientes (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Cotizaciones e histórico de precios (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/latest", quoteHandler.GetLatest)
	items.Get("/:id/quotes", quoteHandler.ListByItem)
	items.Get("/:id/price-history", quoteHandler.ListPriceHistory)

	// Fórmulas, costeo y recetas (protegido)
	formulas := protected.Group("/formulas")
	formulaHandler := NewFormulaHandler(deps.FormulaUC, deps.FormulaPDF)
	formulas.Post("/", formulaHandler.CreateHeader)
	formulas.Get("/:id", formulaHandler.Get)
	formulas.Post("/:id/details", formulaHandler.AddDetail)
	formulas.Put("/details/:id", formulaHandler.UpdateDetail)
	formulas.Delete("/details/:id", formulaHandler.DeleteDetail)
	formulas.Get("/:id/cost", formulaHandler.Cost)
	formulas.Post("/:id/refresh-prices", formulaHandler.RefreshPrices)
	formulas.Get("/:id/pdf", formulaHandler.DownloadCostSheetPDF)
	items.Get("/:id/formulas", formulaHandler.ListByProduct)

	recipes := protected.Group("/recipes")
	recipes.Post("/", formulaHandler.AddRecipeLine)
	recipes.Delete("/:id", formulaHandler.DeleteRecipeLine)
	items.Get("/:id/recipe", formulaHandler.ListRecipe)

	// Producción (protegido)
	prodOrders := protected.Group("/production/orders")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prodOrders.Post("/", productionHandler.Create)
	prodOrders.Get("/", productionHandler.List)
	prodOrders.Get("/:id", productionHandler.GetByID)
	prodOrders.Post("/:id/apply-bom", productionHandler.ApplyBOM)
	prodOrders.Post("/:id/complete", productionHandler.Complete)
	prodOrders.Post("/:id/cancel", productionHandler.Cancel)
	prodOrders.Get("/:id/materials", productionHandler.ListMaterials)

	// Stock y libro de movimientos (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.ProductionUC)
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/:id", stockHandler.Get)
	stock.Get("/:id/ledger", stockHandler.Ledger)

	// Compras (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	// Ventas (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/:id/ship", salesHandler.Ship)
	salesGroup.Post("/:id/cancel", salesHandler.Cancel)
}
