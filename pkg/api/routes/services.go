package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journeytree"
	"github.com/zugtrip/zug/pkg/shorturl"
)

// Backend is the transit data backend behind the API
type Backend interface {
	journeytree.Source

	Locations(ctx context.Context, query string, results int) ([]*hafas.Location, error)
	Stop(ctx context.Context, id string) (*hafas.Location, error)
}

// Services bundles what the route handlers work with. ShortURLs is nil when short links are
// disabled.
type Services struct {
	Backend   Backend
	Trees     *journeytree.Builder
	ShortURLs shorturl.Store
}

func NewServices(backend Backend, options hafas.JourneysOptions, shortURLs shorturl.Store) *Services {
	return &Services{
		Backend:   backend,
		Trees:     journeytree.NewBuilder(backend, options),
		ShortURLs: shortURLs,
	}
}

func outputGroups(c *fiber.Ctx) []string {
	if c.Query("detailed") == "true" {
		return []string{"basic", "detailed"}
	}

	return []string{"basic"}
}

func sendReduced(c *fiber.Ctx, value interface{}) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: outputGroups(c),
	}, value)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

func sendBackendError(c *fiber.Ctx, err error) error {
	status, errorType := hafas.ErrorDetails(err)

	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
		"type":  errorType,
	})
}
