// Package app wires services and HTTP routes into a Fiber application.
package app

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/amirasaad/banking/pkg/config"
	accountsvc "github.com/amirasaad/banking/pkg/service/account"
	authsvc "github.com/amirasaad/banking/pkg/service/auth"
	usersvc "github.com/amirasaad/banking/pkg/service/user"
	"github.com/amirasaad/banking/webapi/account"
	"github.com/amirasaad/banking/webapi/auth"
	"github.com/amirasaad/banking/webapi/common"
	"github.com/amirasaad/banking/webapi/user"

	_ "github.com/amirasaad/banking/cmd/server/swagger"
)

// New builds all services and returns the Fiber app with routes registered.
func New(deps config.Deps) *fiber.App {
	accountSvc := accountsvc.New(deps.Uow, deps.Logger)
	userSvc := usersvc.New(deps.Uow, deps.Logger)
	authSvc := authsvc.New(deps.Uow, deps.Config.Jwt, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Prefer proxy headers so clients behind a load balancer are
			// limited individually, not as one.
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	user.Routes(app, userSvc)
	auth.Routes(app, authSvc)
	account.Routes(app, accountSvc, deps.Config.Jwt)
	return app
}
