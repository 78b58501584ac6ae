package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kantodex/pokedex-backend/api-gateway/config"
	"github.com/kantodex/pokedex-backend/api-gateway/health"
	"github.com/kantodex/pokedex-backend/api-gateway/middleware"
	"github.com/kantodex/pokedex-backend/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool
	OptionalAuth bool // Forward identity when present, allow anonymous
	StrictLimit  bool // Apply the tighter vote rate limit
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "user",
		Description: "Authentication endpoints (login, register)",
	},
	{
		Prefix:       "/api/pokemon",
		ServiceName:  "catalog",
		Description:  "Catalog browsing (anonymous gets neutral views)",
		OptionalAuth: true,
	},
	{
		Prefix:      "/api/trending",
		ServiceName: "trending",
		Description: "Trending pokemon ranking",
	},

	// Authenticated routes
	{
		Prefix:      "/users",
		ServiceName: "user",
		Description: "User profile access",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/favorites",
		ServiceName: "catalog",
		Description: "Favorite marking and listing",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/votes",
		ServiceName: "catalog",
		Description: "Vote casting",
		RequireAuth: true,
		StrictLimit: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
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
		return c.JSON(cbManager.GetAllStats())
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Pokedex API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	} else if route.OptionalAuth {
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}
	if route.StrictLimit && redisClient != nil {
		middlewares = append(middlewares, middleware.VoteRateLimiter(redisClient))
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
