package journey

import (
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
)

// MergeResult is the outcome of placing two itineraries next to each other. Preceding and
// Succeeding are copies of the inputs with their linkage and hidden flags updated; the inputs
// themselves are never modified. Connective is nil when nothing has to be rendered between them.
type MergeResult struct {
	Connective Block
	Preceding  Block
	Succeeding Block
}

// Merge works out the connective block between the last block of one itinerary and the first
// block of the next one. midpoint is the waypoint the two itineraries meet at.
func Merge(preceding Block, midpoint Location, succeeding Block) MergeResult {
	if !isMergeable(preceding) || !isMergeable(succeeding) {
		logAnomaly(preceding, succeeding)
		return MergeResult{Preceding: preceding, Succeeding: succeeding}
	}

	result := MergeResult{
		Preceding:  preceding.clone(),
		Succeeding: succeeding.clone(),
	}

	switch before := result.Preceding.(type) {
	case *UnselectedBlock:
		if _, ok := result.Succeeding.(*UnselectedBlock); ok {
			result.Connective = NewRawLocationBlock(midpoint)
			return result
		}
		resetSucceeding(result.Succeeding)

	case *LegBlock:
		switch after := result.Succeeding.(type) {
		case *UnselectedBlock:
			before.SucceededBy = LinkageNone
		case *LegBlock:
			result.Connective = mergeLegs(before, after)
		case *LocationBlock:
			before.SucceededBy = LinkageNone
			after.Hidden = before.ArrivalData.Location.Equals(after.Location)
			if !after.Hidden {
				result.Connective = mergingWalk(before.ArrivalData.Location, before.ArrivalData.Time, after.Location, after.Time)
			}
		}

	case *LocationBlock:
		switch after := result.Succeeding.(type) {
		case *UnselectedBlock:
			before.Hidden = false
		case *LegBlock:
			after.PrecededBy = LinkageNone
			before.Hidden = before.Location.Equals(after.DepartureData.Location)
			if !before.Hidden {
				result.Connective = mergingWalk(before.Location, before.Time, after.DepartureData.Location, after.DepartureData.Time)
			}
		case *LocationBlock:
			before.Hidden = true
			after.Hidden = true
			result.Connective = mergeLocations(before, after)
		}
	}

	return result
}

func isMergeable(block Block) bool {
	if block == nil {
		return false
	}

	switch block.BlockType() {
	case BlockTypeUnselected, BlockTypeLeg, BlockTypeLocation:
		return true
	}

	return false
}

func logAnomaly(preceding Block, succeeding Block) {
	log.Error().
		Str("preceding", blockTypeName(preceding)).
		Str("succeeding", blockTypeName(succeeding)).
		Msg("Cannot merge blocks that do not open or close a journey")
	log.Debug().Msg(pretty.Sprint(preceding, succeeding))
}

func blockTypeName(block Block) string {
	if block == nil {
		return "nil"
	}

	return string(block.BlockType())
}

// resetSucceeding makes the first block of a journey stand on its own again
func resetSucceeding(block Block) {
	switch b := block.(type) {
	case *LegBlock:
		b.PrecededBy = LinkageNone
	case *LocationBlock:
		b.Hidden = false
	}
}

func mergeLegs(arriving *LegBlock, departing *LegBlock) Block {
	if !arriving.ArrivalData.Location.Equals(departing.DepartureData.Location) {
		arriving.SucceededBy = LinkageNone
		departing.PrecededBy = LinkageNone
		return mergingWalk(
			arriving.ArrivalData.Location, arriving.ArrivalData.Time,
			departing.DepartureData.Location, departing.DepartureData.Time,
		)
	}

	transferBlock := TransferToBlock(arriving, departing)
	linkage := LinkageTransfer
	if transferBlock.IsStopover {
		linkage = LinkageStopover
	}
	arriving.SucceededBy = linkage
	departing.PrecededBy = linkage

	return transferBlock
}

// mergingWalk connects two places that were never part of the same itinerary, so there is
// no walking time or distance known
func mergingWalk(origin Location, originTime TimePair, destination Location, destinationTime TimePair) *WalkBlock {
	return &WalkBlock{
		Type:                BlockTypeWalk,
		OriginLocation:      origin,
		DestinationLocation: destination,
		TransferTime:        MinutesBetween(statusTime(originTime.Arrival), statusTime(destinationTime.Departure)),
		Distance:            0,
	}
}

func mergeLocations(arriving *LocationBlock, departing *LocationBlock) *LocationBlock {
	return &LocationBlock{
		Type: BlockTypeLocation,
		Time: TimePair{
			Arrival:   arriving.Time.Arrival,
			Departure: departing.Time.Departure,
		},
		Location: arriving.Location,
	}
}
