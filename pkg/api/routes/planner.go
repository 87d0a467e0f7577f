package routes

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
	"github.com/zugtrip/zug/pkg/journeytree"
	"github.com/zugtrip/zug/pkg/selection"
)

func (s *Services) PlannerRouter(router fiber.Router) {
	router.Get("/tree", s.getTree)
	router.Get("/refresh", s.refreshJourneys)
	router.Post("/trip", s.composeTrip)
}

func (s *Services) getTree(c *fiber.Ctx) error {
	stops := c.Query("stops")
	if stops == "" {
		return sendError(c, fiber.StatusBadRequest, "Parameter stops is required")
	}

	timeRole := journey.Role(c.Query("timeRole", string(journey.RoleDeparture)))
	if timeRole != journey.RoleDeparture && timeRole != journey.RoleArrival {
		return sendError(c, fiber.StatusBadRequest, "Parameter timeRole should be departure or arrival")
	}

	// Get start time
	startTime := time.Now()
	if timeString := c.Query("time"); timeString != "" {
		var err error
		startTime, err = time.Parse(time.RFC3339, timeString)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter time should be an RFC3339/ISO8601 datetime")
		}
	}

	waypoints, err := s.resolveLocations(c.UserContext(), stops)
	if err != nil {
		var apiError *hafas.APIError
		if errors.As(err, &apiError) {
			return sendBackendError(c, err)
		}
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	tree, err := s.Trees.Build(c.UserContext(), waypoints, startTime, timeRole)
	if errors.Is(err, journeytree.ErrArrivalAnchored) || errors.Is(err, journeytree.ErrTooFewWaypoints) {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	} else if err != nil {
		return sendBackendError(c, err)
	}

	return sendReduced(c, tree)
}

func (s *Services) refreshJourneys(c *fiber.Ctx) error {
	var tokens []*string
	if err := json.Unmarshal([]byte(c.Query("tokens")), &tokens); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter tokens should be a JSON array of refresh tokens")
	}

	refreshTokens := make([]string, len(tokens))
	for i, token := range tokens {
		if token != nil {
			refreshTokens[i] = *token
		}
	}

	return sendReduced(c, s.Trees.Refresh(c.UserContext(), refreshTokens))
}

type tripRequest struct {
	Waypoints []*hafas.Location `json:"waypoints"`
	Journeys  []*hafas.Journey  `json:"journeys"`
}

type tripResponse struct {
	Segments    []selection.Segment `json:"segments" groups:"basic"`
	Description string              `json:"description" groups:"basic"`
}

// composeTrip stitches one raw journey per hop into a single trip
func (s *Services) composeTrip(c *fiber.Ctx) error {
	var request tripRequest
	if err := c.BodyParser(&request); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Body should be a JSON object with waypoints and journeys")
	}

	trip, err := selection.Compose(request.Waypoints, request.Journeys)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	return sendReduced(c, tripResponse{
		Segments:    trip.Segments(),
		Description: journey.Describe(trip.Flatten()),
	})
}
