package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/product-store/internal/api/http/handlers"
	"github.com/spec-kit/product-store/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Products  *handlers.ProductsHandler
	Inventory *handlers.InventoryHandler
	AuthGate  *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Post("/admins", cfg.AuthGate.Handle, auth.RequireAdmin(), cfg.Users.CreateAdmin)

	users := app.Group("/users", cfg.AuthGate.Handle, auth.RequireAuthenticated())
	users.Get("/me", cfg.Users.GetProfile)
	users.Patch("/me", cfg.Users.UpdateProfile)
	users.Get("/:id", auth.RequireAdmin(), cfg.Users.GetUser)

	products := app.Group("/products", cfg.AuthGate.Handle, auth.RequireAuthenticated())
	products.Post("", cfg.Products.CreateProduct)
	products.Get("", cfg.Products.ListProducts)
	products.Get("/:id", cfg.Products.GetProduct)
	products.Patch("/:id", cfg.Products.UpdateProduct)
	products.Post("/:id/publish", auth.RequireAdmin(), cfg.Products.PublishProduct)
	products.Delete("/:id", auth.RequireAdmin(), cfg.Products.DeleteProduct)
	products.Get("/:id/inventory", cfg.Inventory.GetInventoryByProduct)
	products.Post("/:id/inventory/add", cfg.Inventory.AddQuantity)
	products.Post("/:id/inventory/remove", cfg.Inventory.RemoveQuantity)

	inventories := app.Group("/inventories", cfg.AuthGate.Handle, auth.RequireAuthenticated())
	inventories.Post("", cfg.Inventory.CreateInventory)
	inventories.Get("", cfg.Inventory.ListInventories)
	inventories.Get("/:id", cfg.Inventory.GetInventory)
	inventories.Patch("/:id", cfg.Inventory.UpdateInventory)
}
