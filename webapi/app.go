package webapi

import (
	"errors"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/amirasaad/ledger/webapi/account"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/amirasaad/ledger/webapi/swagger"
)

// NewApp builds the HTTP application around the account service.
func NewApp(deps config.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default to 500 if status code cannot be determined
			status := fiber.StatusInternalServerError
			title := "Internal Server Error"
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
				title = e.Message
			}
			return common.ProblemDetailsJSON(c, title, err, status)
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	maxRequests, window := 100, time.Minute
	if deps.Config != nil && deps.Config.RateLimit != nil {
		if deps.Config.RateLimit.MaxRequests > 0 {
			maxRequests = deps.Config.RateLimit.MaxRequests
		}
		if deps.Config.RateLimit.Window > 0 {
			window = deps.Config.RateLimit.Window
		}
	}
	app.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	account.Routes(app, accountsvc.NewService(deps))

	return app
}
