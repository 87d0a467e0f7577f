package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/zugtrip/zug/pkg/shorturl"
)

func (s *Services) ShortURLRouter(router fiber.Router) {
	router.Put("/shorturl", s.putShortURL)
	router.Get("/shorturl", s.getShortURL)
}

func (s *Services) putShortURL(c *fiber.Ctx) error {
	if s.ShortURLs == nil {
		return sendError(c, fiber.StatusServiceUnavailable, "Short links are disabled")
	}

	var request shorturl.DiagramRequest
	if err := c.BodyParser(&request); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Body should be a diagram request")
	}

	key, err := s.ShortURLs.Put(c.UserContext(), request)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store short url")
		return sendError(c, fiber.StatusInternalServerError, "Could not store short url")
	}

	return c.JSON(fiber.Map{
		"key": key,
	})
}

func (s *Services) getShortURL(c *fiber.Ctx) error {
	if s.ShortURLs == nil {
		return sendError(c, fiber.StatusServiceUnavailable, "Short links are disabled")
	}

	token := c.Query("token")
	if token == "" {
		return sendError(c, fiber.StatusNotFound, "Parameter token is required")
	}

	request, err := s.ShortURLs.Get(c.UserContext(), token)
	if errors.Is(err, shorturl.ErrNotFound) {
		return sendError(c, fiber.StatusNotFound, "Could not find short url matching token")
	} else if err != nil {
		log.Error().Err(err).Str("token", token).Msg("Failed to load short url")
		return sendError(c, fiber.StatusInternalServerError, "Could not load short url")
	}

	return c.JSON(request)
}
