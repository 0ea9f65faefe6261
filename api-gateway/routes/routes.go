package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/troyan365/marketplace/api-gateway/config"
	"github.com/troyan365/marketplace/api-gateway/health"
	"github.com/troyan365/marketplace/api-gateway/middleware"
	"github.com/troyan365/marketplace/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix        string
	ServiceName   string
	Description   string
	RequireAuth   bool
	RequireAdmin  bool
	RequireDevice bool
}

// Routes holds all route definitions. Listing reads stay public; the
// listing service enforces auth on its own write endpoints.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		ServiceName: "user",
		Description: "Authentication endpoints (login, register)",
	},
	{
		Prefix:      "/users",
		ServiceName: "user",
		Description: "User profile management",
		RequireAuth: true,
	},
	{
		Prefix:       "/admin",
		ServiceName:  "user",
		Description:  "Administration endpoints",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:      "/listings",
		ServiceName: "listing",
		Description: "Listing browse, search and management",
	},
	{
		Prefix:      "/favorites",
		ServiceName: "favorite",
		Description: "User favorites and reconciliation",
		RequireAuth: true,
	},
	{
		Prefix:        "/device/favorites",
		ServiceName:   "favorite",
		Description:   "Anonymous device favorites",
		RequireDevice: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}
		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		return c.JSON(healthChecker.CheckAllServices(ctx))
	})

	// Circuit breaker stats
	app.Get("/gateway/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.AllStats())
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Marketplace API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAdmin {
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	if route.RequireDevice {
		middlewares = append(middlewares, middleware.DeviceMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// The exact prefix path, without a trailing segment
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
