package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zugtrip/zug/pkg/hafas"
)

func blockTypes(blocks []Block) []BlockType {
	types := make([]BlockType, len(blocks))
	for i, block := range blocks {
		types[i] = block.BlockType()
	}
	return types
}

func TestToBlocksSentinels(t *testing.T) {
	t.Run("missing itinerary", func(t *testing.T) {
		assert.Equal(t, []BlockType{BlockTypeError}, blockTypes(ToBlocks(nil)))
	})

	t.Run("no legs", func(t *testing.T) {
		assert.Equal(t, []BlockType{BlockTypeError}, blockTypes(ToBlocks(testJourney())))
	})

	t.Run("all legs absent", func(t *testing.T) {
		assert.Equal(t, []BlockType{BlockTypeError}, blockTypes(ToBlocks(testJourney(nil, nil))))
	})

	t.Run("one leg absent", func(t *testing.T) {
		blocks := ToBlocks(testJourney(testRide(stationA, stationB, 0, 30, "RE 1"), nil))
		assert.Equal(t, []BlockType{BlockTypeUnselected}, blockTypes(blocks))
	})
}

func TestToBlocksLeadingWalk(t *testing.T) {
	home := testAddress("Theaterstraße 1, Aachen", 50.77, 6.08)
	blocks := ToBlocks(testJourney(
		testWalk(home, stationA, 0, 6),
		testRide(stationA, stationB, 10, 45, "RE 1"),
	))

	require.Equal(t, []BlockType{BlockTypeLocation, BlockTypeWalk, BlockTypeLeg}, blockTypes(blocks))

	location := blocks[0].(*LocationBlock)
	assert.Equal(t, "Theaterstraße 1, Aachen", location.Location.Name)
	require.NotNil(t, location.Time.Departure)
	assert.Equal(t, *at(0), location.Time.Departure.Time)
	assert.Nil(t, location.Time.Arrival)
	assert.False(t, location.Hidden)

	walk := blocks[1].(*WalkBlock)
	assert.Equal(t, "Aachen Hbf", walk.DestinationLocation.Name)
	require.NotNil(t, walk.TransferTime)
	assert.InDelta(t, 10.0, *walk.TransferTime, 0.0001)
	require.NotNil(t, walk.WalkingTime)
	assert.InDelta(t, 6.0, *walk.WalkingTime, 0.0001)
	assert.Equal(t, 350, walk.Distance)

	leg := blocks[2].(*LegBlock)
	assert.Equal(t, LinkageNone, leg.PrecededBy)
	assert.Equal(t, LinkagePending, leg.SucceededBy)
}

func TestToBlocksTrailingWalk(t *testing.T) {
	office := testAddress("Breite Straße 3, Köln", 50.94, 6.94)
	blocks := ToBlocks(testJourney(
		testRide(stationA, stationB, 0, 35, "RE 1"),
		testWalk(stationB, office, 38, 48),
	))

	require.Equal(t, []BlockType{BlockTypeLeg, BlockTypeWalk, BlockTypeLocation}, blockTypes(blocks))

	leg := blocks[0].(*LegBlock)
	assert.Equal(t, LinkageNone, leg.SucceededBy)

	walk := blocks[1].(*WalkBlock)
	require.NotNil(t, walk.TransferTime)
	assert.InDelta(t, 10.0, *walk.TransferTime, 0.0001)

	location := blocks[2].(*LocationBlock)
	assert.Equal(t, "Breite Straße 3, Köln", location.Location.Name)
	require.NotNil(t, location.Time.Arrival)
	assert.Equal(t, *at(48), location.Time.Arrival.Time)
}

func TestToBlocksWalkOnly(t *testing.T) {
	blocks := ToBlocks(testJourney(testWalk(stationB, stationC, 0, 20)))

	assert.Equal(t, []BlockType{BlockTypeLocation, BlockTypeWalk, BlockTypeLocation}, blockTypes(blocks))
}

func TestToBlocksTransfers(t *testing.T) {
	t.Run("different runs", func(t *testing.T) {
		blocks := ToBlocks(testJourney(
			testRide(stationA, stationB, 0, 35, "RE 1"),
			testRide(stationB, stationC, 45, 70, "RE 5"),
		))

		require.Equal(t, []BlockType{BlockTypeLeg, BlockTypeTransfer, BlockTypeLeg}, blockTypes(blocks))

		transfer := blocks[1].(*TransferBlock)
		assert.False(t, transfer.IsStopover)
		require.NotNil(t, transfer.TransferTime)
		assert.InDelta(t, 10.0, *transfer.TransferTime, 0.0001)
		assert.Equal(t, "Köln Hbf", transfer.TransitData.Location.Name)
		assert.Equal(t, *at(35), transfer.TransitData.Time.Arrival.Time)
		assert.Equal(t, *at(45), transfer.TransitData.Time.Departure.Time)

		assert.Equal(t, LinkageTransfer, blocks[0].(*LegBlock).SucceededBy)
		assert.Equal(t, LinkageTransfer, blocks[2].(*LegBlock).PrecededBy)
	})

	t.Run("same run", func(t *testing.T) {
		blocks := ToBlocks(testJourney(
			testRide(stationA, stationB, 0, 35, "RE 1"),
			testRide(stationB, stationC, 37, 60, "RE 1"),
		))

		require.Equal(t, []BlockType{BlockTypeLeg, BlockTypeTransfer, BlockTypeLeg}, blockTypes(blocks))

		first := blocks[0].(*LegBlock)
		second := blocks[2].(*LegBlock)
		assert.Equal(t, first.BlockKey, second.BlockKey)
		assert.True(t, blocks[1].(*TransferBlock).IsStopover)
		assert.Equal(t, LinkageStopover, first.SucceededBy)
		assert.Equal(t, LinkageStopover, second.PrecededBy)
	})
}

func TestToBlocksBoundaryInvariant(t *testing.T) {
	home := testAddress("Theaterstraße 1, Aachen", 50.77, 6.08)
	itineraries := [][]*hafas.Leg{
		{testRide(stationA, stationB, 0, 30, "RE 1")},
		{testWalk(home, stationA, 0, 5), testRide(stationA, stationB, 10, 40, "RE 1")},
		{testRide(stationA, stationB, 0, 30, "RE 1"), testWalk(stationB, home, 31, 40)},
		{testWalk(home, stationA, 0, 5), testRide(stationA, stationB, 10, 40, "RE 1"), testWalk(stationB, stationC, 41, 50), testRide(stationC, stationD, 55, 70, "S 1"), testWalk(stationD, home, 71, 80)},
		{testRide(stationA, stationB, 0, 30, "RE 1"), testRide(stationB, stationC, 35, 50, "RE 1"), testRide(stationC, stationD, 55, 70, "S 1")},
		{testWalk(home, stationA, 0, 5)},
	}

	for _, legs := range itineraries {
		blocks := ToBlocks(testJourney(legs...))

		require.NotEmpty(t, blocks)
		assert.True(t, IsDefining(blocks[0]), "first block is %s", blocks[0].BlockType())
		assert.True(t, IsDefining(blocks[len(blocks)-1]), "last block is %s", blocks[len(blocks)-1].BlockType())
	}
}

func TestToBlocksLegDetails(t *testing.T) {
	ride := testRide(stationA, stationC, 0, 60, "RE 1")
	ride.DepartureDelay = intPointer(420)
	ride.Departure = at(7)
	ride.DeparturePlatform = stringPointer("9")
	ride.PlannedDeparturePlatform = stringPointer("8")
	ride.ArrivalPlatform = stringPointer("3")
	ride.PlannedArrivalPlatform = stringPointer("3")
	ride.CurrentLocation = &hafas.Location{Type: hafas.LocationTypeLocation, Latitude: 50.8, Longitude: 6.3}
	ride.Stopovers = []*hafas.StopOver{
		{Stop: stationA, PlannedDeparture: at(0)},
		{Stop: stationB, PlannedArrival: at(30), PlannedDeparture: at(32), ArrivalPlatform: stringPointer("5"), PlannedArrivalPlatform: stringPointer("4"), AdditionalStop: true},
		{Stop: stationD, PlannedArrival: at(45), Cancelled: true},
		{Stop: stationC, PlannedArrival: at(60)},
	}
	ride.Polyline = &hafas.FeatureCollection{
		Type: "FeatureCollection",
		Features: []hafas.Feature{
			{Type: "Feature", Geometry: hafas.Geometry{Type: "Point", Coordinates: []float64{6.091499, 50.7678}}},
			{Type: "Feature", Geometry: hafas.Geometry{Type: "Point", Coordinates: []float64{6.958729, 50.943029}}},
		},
	}

	itinerary := testJourney(ride)
	itinerary.RealtimeDataUpdatedAt = baseTime.Unix()

	blocks := ToBlocks(itinerary)
	require.Len(t, blocks, 1)
	leg := blocks[0].(*LegBlock)

	assert.Equal(t, "DB Regio NRW10RE 1RE 1Dortmund Hbf", leg.BlockKey)
	assert.Equal(t, LineInfo{Name: "RE 1", FahrtNr: "10RE 1", Product: "regional", ProductName: "RE", Mode: "train", Operator: "DB Regio NRW"}, leg.Line)

	departure := leg.DepartureData.Time.Departure
	require.NotNil(t, departure)
	assert.Equal(t, *at(7), departure.Time)
	assert.Equal(t, SeverityBad, departure.Severity)
	assert.Equal(t, &PlatformData{Platform: "9", PlatformChanged: true}, leg.DepartureData.PlatformData)
	assert.Equal(t, &PlatformData{Platform: "3", PlatformChanged: false}, leg.ArrivalData.PlatformData)

	require.NotNil(t, leg.Duration)
	assert.InDelta(t, 53.0, *leg.Duration, 0.0001)

	require.Len(t, leg.Stopovers, 2)
	assert.Equal(t, "Köln Hbf", leg.Stopovers[0].Location.Name)
	assert.Equal(t, AttributeAdditional, leg.Stopovers[0].Attribute)
	assert.Equal(t, &PlatformData{Platform: "5", PlatformChanged: true}, leg.Stopovers[0].PlatformData)
	assert.Equal(t, AttributeCancelled, leg.Stopovers[1].Attribute)
	assert.Nil(t, leg.Stopovers[1].Time.Departure)

	require.NotNil(t, leg.CurrentLocation)
	assert.Equal(t, "RE 1 → Dortmund Hbf", leg.CurrentLocation.Name)
	assert.Equal(t, baseTime.Unix(), leg.CurrentLocation.AsAt.Unix())

	assert.Equal(t, [][2]float64{{50.7678, 6.091499}, {50.943029, 6.958729}}, leg.Polyline)
	assert.NotEmpty(t, leg.EncodedPolyline)
}

func TestToBlocksCancelledLeg(t *testing.T) {
	ride := testRide(stationA, stationB, 0, 30, "RE 1")
	ride.Cancelled = true

	leg := ToBlocks(testJourney(ride))[0].(*LegBlock)

	assert.Equal(t, AttributeCancelled, leg.DepartureData.Attribute)
	assert.Equal(t, AttributeCancelled, leg.ArrivalData.Attribute)
}

func TestFirstAndLastTime(t *testing.T) {
	home := testAddress("Theaterstraße 1, Aachen", 50.77, 6.08)
	blocks := ToBlocks(testJourney(
		testWalk(home, stationA, 0, 5),
		testRide(stationA, stationB, 10, 40, "RE 1"),
	))

	departure, arrival := FirstAndLastTime(blocks)

	require.NotNil(t, departure)
	require.NotNil(t, arrival)
	assert.Equal(t, *at(0), departure.Time)
	assert.Equal(t, *at(40), arrival.Time)

	departure, arrival = FirstAndLastTime(UnselectedBlocks())
	assert.Nil(t, departure)
	assert.Nil(t, arrival)
}

func TestCloneBlocks(t *testing.T) {
	blocks := ToBlocks(testJourney(
		testRide(stationA, stationB, 0, 35, "RE 1"),
		testRide(stationB, stationC, 45, 70, "RE 5"),
	))

	cloned := CloneBlocks(blocks)
	cloned[0].(*LegBlock).SucceededBy = LinkageNone

	assert.Equal(t, LinkageTransfer, blocks[0].(*LegBlock).SucceededBy)
	assert.Equal(t, blocks[1], cloned[1])
	assert.NotSame(t, blocks[1], cloned[1])
}
