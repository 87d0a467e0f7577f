package journey

import (
	"time"

	"github.com/zugtrip/zug/pkg/hafas"
)

var baseTime = time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) *time.Time {
	t := baseTime.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func intPointer(value int) *int {
	return &value
}

func stringPointer(value string) *string {
	return &value
}

func testStation(id string, name string, lat float64, lng float64) *hafas.Location {
	return &hafas.Location{
		Type: hafas.LocationTypeStation,
		ID:   id,
		Name: name,
		Coordinates: &hafas.Location{
			Type:      hafas.LocationTypeLocation,
			Latitude:  lat,
			Longitude: lng,
		},
	}
}

func testAddress(address string, lat float64, lng float64) *hafas.Location {
	return &hafas.Location{
		Type:      hafas.LocationTypeLocation,
		Address:   address,
		Latitude:  lat,
		Longitude: lng,
	}
}

var (
	stationA = testStation("8000001", "Aachen Hbf", 50.7678, 6.091499)
	stationB = testStation("8000002", "Köln Hbf", 50.943029, 6.958729)
	stationC = testStation("8000003", "Düsseldorf Hbf", 51.219960, 6.794317)
	stationD = testStation("8000004", "Duisburg Hbf", 51.429786, 6.775907)
)

func testRide(origin *hafas.Location, destination *hafas.Location, departure int, arrival int, lineName string) *hafas.Leg {
	return &hafas.Leg{
		TripID:           "trip-" + lineName,
		Origin:           origin,
		Destination:      destination,
		Departure:        at(departure),
		PlannedDeparture: at(departure),
		Arrival:          at(arrival),
		PlannedArrival:   at(arrival),
		Direction:        "Dortmund Hbf",
		Line: &hafas.Line{
			Type:        "line",
			Name:        lineName,
			FahrtNr:     "10" + lineName,
			Product:     "regional",
			ProductName: "RE",
			Mode:        "train",
			Operator:    &hafas.Operator{Name: "DB Regio NRW"},
		},
	}
}

func testWalk(origin *hafas.Location, destination *hafas.Location, departure int, arrival int) *hafas.Leg {
	return &hafas.Leg{
		Origin:           origin,
		Destination:      destination,
		Departure:        at(departure),
		PlannedDeparture: at(departure),
		Arrival:          at(arrival),
		PlannedArrival:   at(arrival),
		Walking:          true,
		Distance:         intPointer(350),
	}
}

func testJourney(legs ...*hafas.Leg) *hafas.Journey {
	return &hafas.Journey{
		Type:         "journey",
		Legs:         legs,
		RefreshToken: "token",
	}
}
