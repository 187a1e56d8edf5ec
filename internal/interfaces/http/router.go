package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaviva/botica-api/internal/application/analytics"
	"github.com/farmaviva/botica-api/internal/application/auth"
	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/application/purchases"
	"github.com/farmaviva/botica-api/internal/application/sales"
	"github.com/farmaviva/botica-api/internal/application/usecase"
	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	LocationUC     *usecase.LocationUseCase
	NotificationUC *usecase.NotificationUseCase
	SupplierUC     *purchases.SupplierUseCase
	ReceiveLot     *appinventory.ReceiveLotUseCase
	Allocate       *appinventory.AllocateUseCase
	AdjustLot      *appinventory.AdjustLotUseCase
	Sweep          *appinventory.SweepExpiredUseCase
	Recompute      *appinventory.RecomputeUseCase
	Ledger         *appinventory.LedgerUseCase
	CreateSale     *sales.CreateSaleUseCase
	ReturnSale     *sales.ReturnSaleUseCase
	SaleQuery      *sales.QueryUseCase
	Receipt        *sales.ReceiptUseCase
	CreatePurchase *purchases.CreatePurchaseUseCase
	PurchaseQuery  *purchases.QueryUseCase
	DashboardUC    *analytics.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Reparto de roles:
//   - admin: todo.
//   - almacenero: inventario, compras, proveedores, ubicaciones.
//   - vendedor: ventas, catálogo de solo lectura.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleAlmacenero)
	saleRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products: lectura para todos los roles, mutación solo admin/almacenero.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.Get)
	products.Post("/", stockRoles, productHandler.Create)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Inventory: lotes, movimientos, asignación, barrido (admin/almacenero).
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveLot, deps.Allocate, deps.AdjustLot, deps.Sweep, deps.Recompute, deps.Ledger)
	invGroup.Get("/lots", inventoryHandler.ListLots)
	invGroup.Get("/lots/:id", inventoryHandler.GetLot)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/allocations/simulate", inventoryHandler.SimulateAllocation)
	invGroup.Post("/lots", stockRoles, inventoryHandler.ReceiveLot)
	invGroup.Post("/lots/:id/adjust", stockRoles, inventoryHandler.AdjustLot)
	invGroup.Post("/lots/:id/void", stockRoles, inventoryHandler.VoidLot)
	invGroup.Post("/sweep-expired", stockRoles, inventoryHandler.SweepExpired)
	invGroup.Post("/products/:id/recompute", stockRoles, inventoryHandler.RecomputeProduct)

	// Sales: punto de venta (admin/vendedor).
	salesGroup := protected.Group("/sales", saleRoles)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ReturnSale, deps.SaleQuery, deps.Receipt)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Post("/:id/returns", saleHandler.Return)
	salesGroup.Get("/:id/ticket.pdf", saleHandler.TicketPDF)
	salesGroup.Get("/:id/whatsapp-link", saleHandler.WhatsAppLink)

	// Purchases: ingreso de mercadería (admin/almacenero).
	purchasesGroup := protected.Group("/purchases", stockRoles)
	purchaseHandler := NewPurchaseHandler(deps.CreatePurchase, deps.PurchaseQuery)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.Get)

	// Suppliers (admin/almacenero).
	suppliers := protected.Group("/suppliers", stockRoles)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Locations (admin/almacenero).
	locations := protected.Group("/locations", stockRoles)
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.Get)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Dashboard (todos los roles autenticados).
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Notifications (todos los roles autenticados).
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/generate", notificationHandler.Generate)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
