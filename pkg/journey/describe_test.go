package journey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	home := testAddress("Theaterstraße 1, Aachen", 50.77, 6.08)
	ride := testRide(stationA, stationB, 10, 45, "RE 1")
	ride.Departure = at(12)
	ride.DepartureDelay = intPointer(120)
	ride.DeparturePlatform = stringPointer("7")
	ride.PlannedDeparturePlatform = stringPointer("6")

	blocks := ToBlocks(testJourney(testWalk(home, stationA, 0, 6), ride))
	hidden := NewRawLocationBlock(NormalizeLocation(stationC))
	hidden.Hidden = true
	blocks = append(blocks, hidden, NewRawLocationBlock(NormalizeLocation(stationD)))

	description := Describe(blocks)
	lines := strings.Split(strings.TrimSuffix(description, "\n"), "\n")

	assert.Equal(t, []string{
		"10:00 Theaterstraße 1, Aachen",
		"      walk to Aachen Hbf, 350 m (12 min)",
		"10:12 +2 Aachen Hbf (platform 7, changed)  RE 1 → Dortmund Hbf",
		"10:45 Köln Hbf",
		"−−:−− Duisburg Hbf",
	}, lines)
}

func TestDescribeSentinels(t *testing.T) {
	assert.Equal(t, "      no journey found\n", Describe([]Block{NewErrorBlock()}))
	assert.Equal(t, "      no journey selected\n", Describe(UnselectedBlocks()))
	assert.Equal(t, "", Describe(nil))
}
