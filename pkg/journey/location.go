package journey

import (
	"time"

	"github.com/zugtrip/zug/pkg/hafas"
)

type LocationType string

const (
	LocationTypeStation      LocationType = "station"
	LocationTypeAddress      LocationType = "address"
	LocationTypePoi          LocationType = "poi"
	LocationTypeLiveLocation LocationType = "liveLocation"
)

// UndefinedName is used for locations the backend did not name
const UndefinedName = "undefined"

type Position struct {
	Lat float64 `json:"lat" groups:"basic"`
	Lng float64 `json:"lng" groups:"basic"`
}

// Location is the uniform representation of a station, address, point of interest or
// live position. Values are never modified after construction.
type Location struct {
	Name     string       `json:"name" groups:"basic"`
	Type     LocationType `json:"type" groups:"basic"`
	Position Position     `json:"position" groups:"basic"`

	// RequestParameter is the raw record needed to query the backend for this location again
	RequestParameter *hafas.Location `json:"requestParameter,omitempty" groups:"basic"`

	AsAt *time.Time `json:"asAt,omitempty" groups:"basic"`
}

// NormalizeLocation classifies a raw backend record: records with a station or stop id
// become stations, flagged points of interest become pois and everything else is an address.
func NormalizeLocation(raw *hafas.Location) Location {
	if raw == nil {
		return Location{
			Name: UndefinedName,
			Type: LocationTypeStation,
		}
	}

	if raw.IsStation() {
		location := Location{
			Name:             nameOrUndefined(raw.Name),
			Type:             LocationTypeStation,
			RequestParameter: raw,
		}
		if raw.Coordinates != nil {
			location.Position = Position{Lat: raw.Coordinates.Latitude, Lng: raw.Coordinates.Longitude}
		}
		return location
	}

	if raw.Poi {
		return Location{
			Name:             nameOrUndefined(raw.Name),
			Type:             LocationTypePoi,
			Position:         Position{Lat: raw.Latitude, Lng: raw.Longitude},
			RequestParameter: raw,
		}
	}

	return Location{
		Name:             nameOrUndefined(raw.Address),
		Type:             LocationTypeAddress,
		Position:         Position{Lat: raw.Latitude, Lng: raw.Longitude},
		RequestParameter: raw,
	}
}

// NewLiveLocation builds the location of a moving vehicle or of the user at a point in time
func NewLiveLocation(name string, position Position, asAt time.Time) Location {
	return Location{
		Name:     name,
		Type:     LocationTypeLiveLocation,
		Position: position,
		RequestParameter: &hafas.Location{
			Type:      hafas.LocationTypeLocation,
			Address:   name,
			Latitude:  position.Lat,
			Longitude: position.Lng,
		},
		AsAt: &asAt,
	}
}

// Equals compares positions exactly. The same station returned by two different
// backend calls with slightly different coordinates is not equal.
func (l Location) Equals(other Location) bool {
	return l.Position.Lat == other.Position.Lat && l.Position.Lng == other.Position.Lng
}

func nameOrUndefined(name string) string {
	if name == "" {
		return UndefinedName
	}

	return name
}
