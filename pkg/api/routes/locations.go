package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
)

const defaultLocationResults = 10

func (s *Services) LocationsRouter(router fiber.Router) {
	router.Get("/locations", s.searchLocations)
	router.Get("/location", s.getLocation)
}

func (s *Services) searchLocations(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return sendError(c, fiber.StatusBadRequest, "Parameter name is required")
	}

	results, err := strconv.Atoi(c.Query("results", strconv.Itoa(defaultLocationResults)))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter results should be an integer")
	}

	rawLocations, err := s.Backend.Locations(c.UserContext(), name, results)
	if err != nil {
		return sendBackendError(c, err)
	}

	locations := make([]journey.Location, 0, len(rawLocations))
	for _, rawLocation := range rawLocations {
		locations = append(locations, journey.NormalizeLocation(rawLocation))
	}

	return sendReduced(c, locations)
}

// getLocation accepts either a JSON string holding a stop id or a raw location object
func (s *Services) getLocation(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return sendError(c, fiber.StatusBadRequest, "Parameter id is required")
	}

	rawLocation, err := s.resolveLocation(c.UserContext(), json.RawMessage(id))
	if err != nil {
		var apiError *hafas.APIError
		if errors.As(err, &apiError) {
			return sendBackendError(c, err)
		}
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	return sendReduced(c, journey.NormalizeLocation(rawLocation))
}

func (s *Services) resolveLocation(ctx context.Context, raw json.RawMessage) (*hafas.Location, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var location hafas.Location
		if err := json.Unmarshal(trimmed, &location); err != nil {
			return nil, errors.New("Location should be a stop id or a location object")
		}
		return &location, nil
	}

	id := string(trimmed)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return nil, errors.New("Location should be a stop id or a location object")
		}
	}

	return s.Backend.Stop(ctx, id)
}

// resolveLocations parses a JSON array of stop ids and location objects
func (s *Services) resolveLocations(ctx context.Context, raw string) ([]*hafas.Location, error) {
	var rawLocations []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &rawLocations); err != nil {
		return nil, errors.New("Parameter stops should be a JSON array")
	}

	locations := make([]*hafas.Location, 0, len(rawLocations))
	for _, rawLocation := range rawLocations {
		location, err := s.resolveLocation(ctx, rawLocation)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	return locations, nil
}
