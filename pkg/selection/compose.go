package selection

import (
	"fmt"

	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
)

// Compose builds a selection from raw waypoints and one raw itinerary per hop. A nil itinerary
// leaves its hop unselected. Composed hops count as chosen by the first node of their depth.
func Compose(waypoints []*hafas.Location, itineraries []*hafas.Journey) (*Selection, error) {
	if len(waypoints) < 2 || len(itineraries) != len(waypoints)-1 {
		return nil, fmt.Errorf("%d journeys for %d waypoints: %w", len(itineraries), len(waypoints), ErrHopCount)
	}

	locations := make([]journey.Location, len(waypoints))
	for i, waypoint := range waypoints {
		locations[i] = journey.NormalizeLocation(waypoint)
	}

	selection := New(locations)

	for i, itinerary := range itineraries {
		if itinerary == nil {
			continue
		}

		err := selection.Select(i, SelectedJourney{
			Blocks:       journey.ToBlocks(itinerary),
			SelectedBy:   0,
			RefreshToken: itinerary.RefreshToken,
		})
		if err != nil {
			return nil, err
		}
	}

	return selection, nil
}
