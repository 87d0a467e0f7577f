package journey

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-polyline"
	"github.com/zugtrip/zug/pkg/hafas"
)

// ToBlocks turns one raw itinerary into its block sequence. A missing itinerary, one without
// legs or one where every leg is absent becomes a single error block; an itinerary with some
// absent legs becomes the unselected sentinel.
func ToBlocks(itinerary *hafas.Journey) []Block {
	if itinerary == nil || len(itinerary.Legs) == 0 {
		return []Block{NewErrorBlock()}
	}

	absentLegs := 0
	for _, leg := range itinerary.Legs {
		if leg == nil {
			absentLegs++
		}
	}
	if absentLegs == len(itinerary.Legs) {
		return []Block{NewErrorBlock()}
	} else if absentLegs > 0 {
		return UnselectedBlocks()
	}

	var realtimeUpdatedAt *time.Time
	if itinerary.RealtimeDataUpdatedAt > 0 {
		updatedAt := time.Unix(itinerary.RealtimeDataUpdatedAt, 0)
		realtimeUpdatedAt = &updatedAt
	}

	legs := itinerary.Legs
	blocks := make([]Block, 0, 2*len(legs)+1)

	for i, leg := range legs {
		var nextLeg *hafas.Leg
		if i < len(legs)-1 {
			nextLeg = legs[i+1]
		}

		if leg.Walking {
			walkBlock := walkToBlock(leg, nextLeg)

			if lastLeg, ok := lastBlock(blocks).(*LegBlock); ok {
				lastLeg.SucceededBy = LinkageNone
			}
			blocks = append(blocks, walkBlock)

			// walks never open or close a journey
			if i == 0 {
				departure := firstTime(leg.Departure, leg.PlannedDeparture)
				blocks = append([]Block{boundaryLocationBlock(departure, walkBlock.OriginLocation, RoleDeparture)}, blocks...)
			}
			if nextLeg == nil {
				arrival := firstTime(leg.Arrival, leg.PlannedArrival)
				blocks = append(blocks, boundaryLocationBlock(arrival, walkBlock.DestinationLocation, RoleArrival))
			}
			continue
		}

		legBlock := legToBlock(leg, realtimeUpdatedAt)

		switch previous := lastBlock(blocks).(type) {
		case *LegBlock:
			// two rides without a walk between them need a transfer
			transferBlock := TransferToBlock(previous, legBlock)
			linkage := LinkageTransfer
			if transferBlock.IsStopover {
				linkage = LinkageStopover
			}
			previous.SucceededBy = linkage
			legBlock.PrecededBy = linkage
			blocks = append(blocks, transferBlock)
		case *WalkBlock:
			legBlock.PrecededBy = LinkageNone
		}

		blocks = append(blocks, legBlock)
	}

	return blocks
}

func lastBlock(blocks []Block) Block {
	if len(blocks) == 0 {
		return nil
	}

	return blocks[len(blocks)-1]
}

func legToBlock(leg *hafas.Leg, realtimeUpdatedAt *time.Time) *LegBlock {
	line := LineInfo{}
	if leg.Line != nil {
		if err := copier.Copy(&line, leg.Line); err != nil {
			log.Error().Err(err).Str("tripId", leg.TripID).Msg("Failed to copy line information")
		}
		if leg.Line.Operator != nil {
			line.Operator = leg.Line.Operator.Name
		}
	}

	var firstStopover, lastStopover *hafas.StopOver
	if len(leg.Stopovers) > 0 {
		firstStopover = leg.Stopovers[0]
		lastStopover = leg.Stopovers[len(leg.Stopovers)-1]
	}

	legBlock := &LegBlock{
		Type:     BlockTypeLeg,
		TripID:   leg.TripID,
		BlockKey: line.Operator + line.FahrtNr + line.Name + leg.Direction,
		DepartureData: TransitData{
			Location:     NormalizeLocation(leg.Origin),
			Attribute:    endpointAttribute(leg, firstStopover),
			Time:         ParseSingleTime(leg.Departure, leg.PlannedDeparture, leg.DepartureDelay, RoleDeparture),
			PlatformData: platformData(leg.DeparturePlatform, leg.PlannedDeparturePlatform),
		},
		ArrivalData: TransitData{
			Location:     NormalizeLocation(leg.Destination),
			Attribute:    endpointAttribute(leg, lastStopover),
			Time:         ParseSingleTime(leg.Arrival, leg.PlannedArrival, leg.ArrivalDelay, RoleArrival),
			PlatformData: platformData(leg.ArrivalPlatform, leg.PlannedArrivalPlatform),
		},
		Duration: MinutesBetween(
			firstTime(leg.Departure, leg.PlannedDeparture),
			firstTime(leg.Arrival, leg.PlannedArrival),
		),
		Direction: leg.Direction,
		Line:      line,
		Stopovers: []TransitData{},
		Polyline:  [][2]float64{},
	}

	if leg.CurrentLocation != nil {
		asAt := time.Time{}
		if realtimeUpdatedAt != nil {
			asAt = *realtimeUpdatedAt
		}
		currentLocation := NewLiveLocation(
			fmt.Sprintf("%s → %s", line.Name, leg.Direction),
			Position{Lat: leg.CurrentLocation.Latitude, Lng: leg.CurrentLocation.Longitude},
			asAt,
		)
		legBlock.CurrentLocation = &currentLocation
	}

	if len(leg.Stopovers) > 2 {
		for _, stopover := range leg.Stopovers[1 : len(leg.Stopovers)-1] {
			legBlock.Stopovers = append(legBlock.Stopovers, stopoverToTransitData(stopover))
		}
	}

	if leg.Polyline != nil {
		coords := make([][]float64, 0, len(leg.Polyline.Features))
		for _, feature := range leg.Polyline.Features {
			if len(feature.Geometry.Coordinates) < 2 {
				continue
			}
			lat, lng := feature.Geometry.Coordinates[1], feature.Geometry.Coordinates[0]
			legBlock.Polyline = append(legBlock.Polyline, [2]float64{lat, lng})
			coords = append(coords, []float64{lat, lng})
		}
		legBlock.EncodedPolyline = string(polyline.EncodeCoords(coords))
	}

	return legBlock
}

func endpointAttribute(leg *hafas.Leg, stopover *hafas.StopOver) Attribute {
	if leg.Cancelled || (stopover != nil && stopover.Cancelled) {
		return AttributeCancelled
	}

	return ""
}

func platformData(platform *string, plannedPlatform *string) *PlatformData {
	if platform == nil {
		return nil
	}

	return &PlatformData{
		Platform:        *platform,
		PlatformChanged: plannedPlatform == nil || *platform != *plannedPlatform,
	}
}

func stopoverToTransitData(stopover *hafas.StopOver) TransitData {
	transitData := TransitData{
		Location: NormalizeLocation(stopover.Stop),
		Time: ParseTimePair(
			stopover.Arrival, stopover.PlannedArrival, stopover.ArrivalDelay,
			stopover.Departure, stopover.PlannedDeparture, stopover.DepartureDelay,
		),
	}

	if stopover.Cancelled {
		transitData.Attribute = AttributeCancelled
	} else if stopover.AdditionalStop {
		transitData.Attribute = AttributeAdditional
	}

	platform := stopover.ArrivalPlatform
	if platform == nil {
		platform = stopover.DeparturePlatform
	}
	plannedPlatform := stopover.PlannedArrivalPlatform
	if plannedPlatform == nil {
		plannedPlatform = stopover.PlannedDeparturePlatform
	}
	transitData.PlatformData = platformData(platform, plannedPlatform)

	return transitData
}

func walkToBlock(walk *hafas.Leg, nextLeg *hafas.Leg) *WalkBlock {
	departure := firstTime(walk.Departure, walk.PlannedDeparture)
	arrival := firstTime(walk.Arrival, walk.PlannedArrival)

	nextDeparture := arrival
	if nextLeg != nil {
		nextDeparture = firstTime(nextLeg.Departure, nextLeg.PlannedDeparture)
	}

	distance := 0
	if walk.Distance != nil {
		distance = *walk.Distance
	}

	return &WalkBlock{
		Type:                BlockTypeWalk,
		OriginLocation:      NormalizeLocation(walk.Origin),
		DestinationLocation: NormalizeLocation(walk.Destination),
		TransferTime:        MinutesBetween(departure, nextDeparture),
		WalkingTime:         MinutesBetween(departure, arrival),
		Distance:            distance,
	}
}

func boundaryLocationBlock(eventTime *time.Time, location Location, role Role) *LocationBlock {
	return &LocationBlock{
		Type:     BlockTypeLocation,
		Location: location,
		Time:     ParseSingleTime(eventTime, eventTime, nil, role),
	}
}

// TransferToBlock joins the arrival of one leg with the departure of the next one at the
// same station. Identical block keys mean the vehicle continues and the rider stays on board.
func TransferToBlock(arriving *LegBlock, departing *LegBlock) *TransferBlock {
	return &TransferBlock{
		Type: BlockTypeTransfer,
		TransferTime: MinutesBetween(
			statusTime(arriving.ArrivalData.Time.Arrival),
			statusTime(departing.DepartureData.Time.Departure),
		),
		TransitData:      MergeTransitData(arriving.ArrivalData, departing.DepartureData, false),
		ArrivalProduct:   arriving.Line.Product,
		DepartureProduct: departing.Line.Product,
		IsStopover:       arriving.BlockKey == departing.BlockKey,
	}
}
