package hafas

import "time"

// Location covers the three record kinds a HAFAS REST backend returns for a place:
// "station", "stop" and plain "location" (address or point of interest).
type Location struct {
	Type    string `json:"type" yaml:"type" groups:"basic"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty" groups:"basic"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty" groups:"basic"`
	Address string `json:"address,omitempty" yaml:"address,omitempty" groups:"basic"`
	Poi     bool   `json:"poi,omitempty" yaml:"poi,omitempty" groups:"basic"`

	Latitude  float64 `json:"latitude,omitempty" yaml:"latitude,omitempty" groups:"basic"`
	Longitude float64 `json:"longitude,omitempty" yaml:"longitude,omitempty" groups:"basic"`

	// Stations and stops carry their coordinates in a nested location record
	Coordinates *Location `json:"location,omitempty" yaml:"location,omitempty" groups:"basic"`
}

const (
	LocationTypeStation  = "station"
	LocationTypeStop     = "stop"
	LocationTypeLocation = "location"
)

func (l *Location) IsStation() bool {
	return l.Type == LocationTypeStation || l.Type == LocationTypeStop
}

type Operator struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Line struct {
	Type        string    `json:"type,omitempty"`
	ID          string    `json:"id,omitempty"`
	FahrtNr     string    `json:"fahrtNr,omitempty"`
	Name        string    `json:"name,omitempty"`
	Public      bool      `json:"public,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Product     string    `json:"product,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	Operator    *Operator `json:"operator,omitempty"`
}

type StopOver struct {
	Stop *Location `json:"stop,omitempty"`

	Arrival                *time.Time `json:"arrival,omitempty"`
	PlannedArrival         *time.Time `json:"plannedArrival,omitempty"`
	ArrivalDelay           *int       `json:"arrivalDelay,omitempty"`
	ArrivalPlatform        *string    `json:"arrivalPlatform,omitempty"`
	PlannedArrivalPlatform *string    `json:"plannedArrivalPlatform,omitempty"`

	Departure                *time.Time `json:"departure,omitempty"`
	PlannedDeparture         *time.Time `json:"plannedDeparture,omitempty"`
	DepartureDelay           *int       `json:"departureDelay,omitempty"`
	DeparturePlatform        *string    `json:"departurePlatform,omitempty"`
	PlannedDeparturePlatform *string    `json:"plannedDeparturePlatform,omitempty"`

	Cancelled      bool `json:"cancelled,omitempty"`
	AdditionalStop bool `json:"additionalStop,omitempty"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Feature struct {
	Type     string   `json:"type"`
	Geometry Geometry `json:"geometry"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Leg struct {
	TripID string `json:"tripId,omitempty"`

	Origin      *Location `json:"origin,omitempty"`
	Destination *Location `json:"destination,omitempty"`

	Departure                *time.Time `json:"departure,omitempty"`
	PlannedDeparture         *time.Time `json:"plannedDeparture,omitempty"`
	DepartureDelay           *int       `json:"departureDelay,omitempty"`
	DeparturePlatform        *string    `json:"departurePlatform,omitempty"`
	PlannedDeparturePlatform *string    `json:"plannedDeparturePlatform,omitempty"`

	Arrival                *time.Time `json:"arrival,omitempty"`
	PlannedArrival         *time.Time `json:"plannedArrival,omitempty"`
	ArrivalDelay           *int       `json:"arrivalDelay,omitempty"`
	ArrivalPlatform        *string    `json:"arrivalPlatform,omitempty"`
	PlannedArrivalPlatform *string    `json:"plannedArrivalPlatform,omitempty"`

	Line      *Line  `json:"line,omitempty"`
	Direction string `json:"direction,omitempty"`

	Walking  bool `json:"walking,omitempty"`
	Distance *int `json:"distance,omitempty"`

	Stopovers []*StopOver        `json:"stopovers,omitempty"`
	Polyline  *FeatureCollection `json:"polyline,omitempty"`

	CurrentLocation *Location `json:"currentLocation,omitempty"`

	Cancelled bool `json:"cancelled,omitempty"`
}

// Journey is one itinerary. A nil element in Legs marks a leg that could not be
// resolved for this alternative.
type Journey struct {
	Type                  string `json:"type,omitempty"`
	Legs                  []*Leg `json:"legs"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RealtimeDataUpdatedAt int64  `json:"realtimeDataUpdatedAt,omitempty"`
}

type journeysResponse struct {
	Journeys              []*Journey `json:"journeys"`
	RealtimeDataUpdatedAt int64      `json:"realtimeDataUpdatedAt,omitempty"`
}

type refreshResponse struct {
	Journey               *Journey `json:"journey"`
	RealtimeDataUpdatedAt int64    `json:"realtimeDataUpdatedAt,omitempty"`
}
