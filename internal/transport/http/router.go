package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Radityatama/produk_inventory/internal/handlers"
	"github.com/Radityatama/produk_inventory/internal/middleware/auth"
	"github.com/Radityatama/produk_inventory/internal/session"
)

type Deps struct {
	DB             *gorm.DB
	Sessions       *session.Manager
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	LandingHandler *handlers.LandingHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.LandingHandler.Root)
	e.GET("/signin", d.LandingHandler.SignIn)
	e.GET("/dashboard", d.LandingHandler.Dashboard)

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/me", d.AuthHandler.Me)

	products := v1.Group("/products", auth.RequireSession(d.Sessions))
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/search", d.SearchHandler.Search)

	admin := v1.Group("/admin", auth.RequireSession(d.Sessions), auth.AdminOnly())
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
}
