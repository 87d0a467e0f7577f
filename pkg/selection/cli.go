package selection

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
)

// TripFile is a saved trip: the waypoints and one itinerary per hop
type TripFile struct {
	Waypoints []*hafas.Location `json:"waypoints"`
	Journeys  []*hafas.Journey  `json:"journeys"`
}

func LoadTripFile(path string) (*Selection, error) {
	tripJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var trip TripFile
	if err := json.Unmarshal(tripJSON, &trip); err != nil {
		return nil, err
	}

	return Compose(trip.Waypoints, trip.Journeys)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Print a saved trip as plain text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "JSON file with waypoints and journeys",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			selection, err := LoadTripFile(c.String("file"))
			if err != nil {
				return err
			}

			log.Debug().Strs("tokens", selection.RefreshTokens()).Msg("Composed trip")

			fmt.Println(journey.Describe(selection.Flatten()))

			return nil
		},
	}
}
