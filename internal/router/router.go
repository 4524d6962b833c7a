// Package router wires every endpoint to its handler and middleware
// chain. All protected routes sit behind JWTAuth plus a RequireAccess
// gate naming the policy operation they perform.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/handler"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/middleware"
)

// Handlers bundles everything Register needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Customers *handler.CustomerHandler
	Leads     *handler.LeadHandler
	Sales     *handler.SalesHandler
	Emergency *handler.EmergencyHandler

	DB        *sql.DB
	JWTSecret string
	Groups    middleware.GroupLister
	LoginGate echo.MiddlewareFunc
}

// Register mounts the full API under /api/v1.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health(h.DB))

	v1 := e.Group("/api/v1")

	// Public auth endpoints. Login carries the rate limiter; refresh and
	// logout authenticate by refresh cookie, not bearer token.
	v1.POST("/users/login", h.Auth.Login, h.LoginGate)
	v1.POST("/users/refresh", h.Auth.Refresh)
	v1.POST("/users/logout", h.Auth.Logout)

	auth := middleware.JWTAuth(h.JWTSecret)
	gate := func(op string) echo.MiddlewareFunc { return middleware.RequireAccess(op, h.Groups) }

	users := v1.Group("/users", auth)
	users.POST("", h.Users.Create, gate("users.create"))
	users.GET("", h.Users.List, gate("users.read"))
	users.GET("/:uuid", h.Users.Get, gate("users.read"))
	users.PUT("/:uuid", h.Users.Update, gate("users.update"))
	users.PATCH("/:uuid", h.Users.Update, gate("users.update"))
	users.DELETE("/:uuid", h.Users.Delete, gate("users.delete"))

	// permission groups live under the user collection, as in the
	// original API surface
	users.GET("/groups", h.Users.ListGroups, gate("groups.manage"))
	users.POST("/groups", h.Users.CreateGroup, gate("groups.manage"))
	users.GET("/:uuid/groups", h.Users.ListUserGroups, gate("groups.manage"))
	users.POST("/:uuid/groups", h.Users.AssignGroup, gate("groups.manage"))

	customers := v1.Group("/customers", auth)
	customers.POST("", h.Customers.Create, gate("customers.create"))
	customers.GET("", h.Customers.List, gate("customers.read"))
	customers.GET("/:uuid", h.Customers.Get, gate("customers.read"))
	customers.PUT("/:uuid", h.Customers.Update, gate("customers.update"))
	customers.PATCH("/:uuid", h.Customers.Update, gate("customers.update"))
	customers.DELETE("/:uuid", h.Customers.Delete, gate("customers.delete"))

	// emergency contacts hang off the customer collection
	customers.POST("/emergency", h.Emergency.Create, gate("emergency.create"))
	customers.GET("/emergency", h.Emergency.List, gate("emergency.read"))
	customers.GET("/emergency/:id", h.Emergency.Get, gate("emergency.read"))
	customers.PUT("/emergency/:id", h.Emergency.Update, gate("emergency.update"))
	customers.PATCH("/emergency/:id", h.Emergency.Update, gate("emergency.update"))
	customers.DELETE("/emergency/:id", h.Emergency.Delete, gate("emergency.delete"))

	leads := v1.Group("/leads", auth)
	leads.POST("", h.Leads.Create, gate("leads.create"))
	leads.GET("", h.Leads.List, gate("leads.read"))
	leads.GET("/:uuid", h.Leads.Get, gate("leads.read"))
	leads.PUT("/:uuid", h.Leads.Update, gate("leads.update"))
	leads.PATCH("/:uuid", h.Leads.Update, gate("leads.update"))
	leads.DELETE("/:uuid", h.Leads.Delete, gate("leads.delete"))

	sales := v1.Group("/sales", auth)
	sales.POST("", h.Sales.Create, gate("sales.create"))
	sales.GET("", h.Sales.List, gate("sales.read"))
	sales.GET("/:id", h.Sales.Get, gate("sales.read"))
	sales.PUT("/:id", h.Sales.Update, gate("sales.update"))
	sales.PATCH("/:id", h.Sales.Update, gate("sales.update"))
	sales.DELETE("/:id", h.Sales.Delete, gate("sales.delete"))
}
