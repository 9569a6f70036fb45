package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/grocery-pos/internal/application/auth"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/application/reports"
	"github.com/tu-usuario/grocery-pos/internal/application/usecase"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProductUC         *usecase.ProductUseCase
	CustomerUC        *usecase.CustomerUseCase
	Engine            *checkout.Engine
	ReportsUC         *reports.ReportsUseCase
	JWTSecret         string
	ShopName          string
	LowStockThreshold int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para el dueño
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleOwner), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo owner)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LowStockThreshold)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleOwner), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleOwner), productHandler.Update)
	products.Put("/:id/stock", RequireRole(entity.RoleOwner), productHandler.AdjustStock)
	products.Delete("/:id", RequireRole(entity.RoleOwner), productHandler.Delete)

	// Customers (protegido; eliminación solo owner)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/balance", customerHandler.AdjustBalance)
	customers.Delete("/:id", RequireRole(entity.RoleOwner), customerHandler.Delete)

	// Sales (protegido): checkout + historial + recibo
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Engine, deps.ReportsUC, deps.ShopName)
	sales.Post("/", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Dashboard (protegido, solo owner)
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleOwner))
	dashboardHandler := NewDashboardHandler(deps.ReportsUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
