package selection

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/zugtrip/zug/pkg/journey"
	"golang.org/x/exp/slices"
)

var (
	ErrHopOutOfRange   = errors.New("hop index out of range")
	ErrRefreshMismatch = errors.New("refreshed journeys do not match the selected hops")
	ErrHopCount        = errors.New("number of journeys does not match the number of hops")
)

// UnselectedID is the SelectedBy value of a hop without a chosen journey
const UnselectedID = -1

// Hop is the journey chosen between two consecutive waypoints
type Hop struct {
	Blocks       []journey.Block
	SelectedBy   int
	RefreshToken string

	Departure *journey.TimeStatus
	Arrival   *journey.TimeStatus
}

func (h Hop) IsSelected() bool {
	return h.SelectedBy != UnselectedID
}

// SelectedJourney is what a caller hands over when picking a branch of the journey tree
type SelectedJourney struct {
	Blocks       []journey.Block
	SelectedBy   int
	RefreshToken string
}

// Segment is one entry of the interleaved display list. Connective segments hold zero or one
// block, hop segments hold the hop's block sequence.
type Segment struct {
	Key          string          `json:"key" groups:"basic"`
	IsConnective bool            `json:"isConnective" groups:"basic"`
	Blocks       []journey.Block `json:"blocks" groups:"basic"`
}

// Selection holds the chosen journey per hop and the connective blocks between them. There is
// always one connective more than there are hops: connective i sits at waypoint i.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	waypoints   []journey.Location
	hops        []Hop
	connectives []journey.Block
}

func New(waypoints []journey.Location) *Selection {
	selection := &Selection{}
	selection.SetWaypoints(waypoints)

	return selection
}

// SetWaypoints resets every hop to unselected and every connective to the plain waypoint
func (s *Selection) SetWaypoints(waypoints []journey.Location) {
	s.waypoints = slices.Clone(waypoints)

	s.connectives = make([]journey.Block, len(waypoints))
	for i, waypoint := range waypoints {
		s.connectives[i] = journey.NewRawLocationBlock(waypoint)
	}

	hopCount := len(waypoints) - 1
	if hopCount < 0 {
		hopCount = 0
	}
	s.hops = make([]Hop, hopCount)
	for i := range s.hops {
		s.hops[i] = unselectedHop(i)
	}
}

func unselectedHop(index int) Hop {
	return Hop{
		Blocks:       journey.UnselectedBlocks(),
		SelectedBy:   UnselectedID,
		RefreshToken: strconv.Itoa(index),
	}
}

// Select places a journey on hop index and recomputes the two connectives next to it
func (s *Selection) Select(index int, selected SelectedJourney) error {
	if err := s.checkIndex(index); err != nil {
		return fmt.Errorf("select: %w", err)
	}

	blocks := journey.CloneBlocks(selected.Blocks)
	if len(blocks) == 0 {
		log.Debug().Int("hop", index).Msg("Selected journey has no blocks, treating it as unselected")
		s.place(index, unselectedHop(index))
		return nil
	}

	s.place(index, Hop{
		Blocks:       blocks,
		SelectedBy:   selected.SelectedBy,
		RefreshToken: selected.RefreshToken,
	})

	return nil
}

// Unselect clears hop index and recomputes the two connectives next to it
func (s *Selection) Unselect(index int) error {
	if err := s.checkIndex(index); err != nil {
		return fmt.Errorf("unselect: %w", err)
	}

	s.place(index, unselectedHop(index))

	return nil
}

func (s *Selection) checkIndex(index int) error {
	if index < 0 || index >= len(s.hops) {
		return fmt.Errorf("hop %d of %d: %w", index, len(s.hops), ErrHopOutOfRange)
	}

	return nil
}

// place swaps in the new hop together with both adjacent connectives and the updated boundary
// blocks of the neighbouring hops in a single assignment
func (s *Selection) place(index int, hop Hop) {
	hops := slices.Clone(s.hops)
	connectives := slices.Clone(s.connectives)

	var previousEnd journey.Block = journey.NewUnselectedBlock()
	if index > 0 {
		previousEnd = lastBlock(hops[index-1].Blocks)
	}
	before := journey.Merge(previousEnd, s.waypoints[index], hop.Blocks[0])
	hop.Blocks[0] = before.Succeeding
	if index > 0 {
		hops[index-1] = withLastBlock(hops[index-1], before.Preceding)
	}
	connectives[index] = before.Connective

	var nextStart journey.Block = journey.NewUnselectedBlock()
	if index < len(hops)-1 {
		nextStart = hops[index+1].Blocks[0]
	}
	after := journey.Merge(lastBlock(hop.Blocks), s.waypoints[index+1], nextStart)
	hop.Blocks[len(hop.Blocks)-1] = after.Preceding
	if index < len(hops)-1 {
		hops[index+1] = withFirstBlock(hops[index+1], after.Succeeding)
	}
	connectives[index+1] = after.Connective

	hop.Departure, hop.Arrival = journey.FirstAndLastTime(hop.Blocks)
	hops[index] = hop

	s.hops = hops
	s.connectives = connectives
}

func lastBlock(blocks []journey.Block) journey.Block {
	return blocks[len(blocks)-1]
}

func withFirstBlock(hop Hop, block journey.Block) Hop {
	hop.Blocks = slices.Clone(hop.Blocks)
	hop.Blocks[0] = block
	return hop
}

func withLastBlock(hop Hop, block journey.Block) Hop {
	hop.Blocks = slices.Clone(hop.Blocks)
	hop.Blocks[len(hop.Blocks)-1] = block
	return hop
}

// ApplyRefresh replaces the block sequence of every hop with realtime-updated data. Connectives
// stay untouched since a refresh never changes where journeys start or end. A nil entry keeps
// the hop as it is. The returned ids are the SelectedBy values per hop, for patching the
// journey tree the hops were chosen from.
func (s *Selection) ApplyRefresh(blocksPerHop [][]journey.Block) ([]int, error) {
	if len(blocksPerHop) != len(s.hops) {
		return nil, fmt.Errorf("%d journeys for %d hops: %w", len(blocksPerHop), len(s.hops), ErrRefreshMismatch)
	}

	hops := slices.Clone(s.hops)
	ids := make([]int, len(hops))

	for i, blocks := range blocksPerHop {
		ids[i] = hops[i].SelectedBy
		if len(blocks) == 0 {
			continue
		}

		refreshed := journey.CloneBlocks(blocks)
		carryBoundaryFlags(hops[i].Blocks, refreshed)

		hops[i].Blocks = refreshed
		hops[i].Departure, hops[i].Arrival = journey.FirstAndLastTime(refreshed)
	}

	s.hops = hops

	return ids, nil
}

// carryBoundaryFlags keeps the linkage and hidden flags the connectives were computed with
func carryBoundaryFlags(previous []journey.Block, refreshed []journey.Block) {
	copyFlags := func(from journey.Block, to journey.Block, first bool) {
		switch target := to.(type) {
		case *journey.LegBlock:
			source, ok := from.(*journey.LegBlock)
			if !ok {
				return
			}
			if first {
				target.PrecededBy = source.PrecededBy
			} else {
				target.SucceededBy = source.SucceededBy
			}
		case *journey.LocationBlock:
			if source, ok := from.(*journey.LocationBlock); ok {
				target.Hidden = source.Hidden
			}
		}
	}

	copyFlags(previous[0], refreshed[0], true)
	copyFlags(lastBlock(previous), lastBlock(refreshed), false)
}

func (s *Selection) Waypoints() []journey.Location {
	return slices.Clone(s.waypoints)
}

// Hops returns a copy of the hop list. The block sequences are shared and must not be modified.
func (s *Selection) Hops() []Hop {
	return slices.Clone(s.hops)
}

// Connectives returns a copy of the connective list; a nil entry means nothing is rendered there
func (s *Selection) Connectives() []journey.Block {
	return slices.Clone(s.connectives)
}

// RefreshTokens lists the refresh token per hop, with an empty string for unselected hops
func (s *Selection) RefreshTokens() []string {
	tokens := make([]string, len(s.hops))
	for i, hop := range s.hops {
		if hop.IsSelected() {
			tokens[i] = hop.RefreshToken
		}
	}

	return tokens
}

// Segments interleaves connectives and hops as
// [connective 0, hop 0, connective 1, hop 1, ..., connective n]
func (s *Selection) Segments() []Segment {
	if len(s.connectives) == 0 {
		return []Segment{}
	}

	segments := make([]Segment, 0, 2*len(s.connectives)-1)

	for i, connective := range s.connectives {
		key := ""
		if i > 0 {
			key += s.hops[i-1].RefreshToken
		}
		if location, ok := connective.(*journey.LocationBlock); ok {
			key += location.Location.Name
		} else {
			key += "-"
		}
		if i < len(s.hops) {
			key += s.hops[i].RefreshToken
		}

		blocks := []journey.Block{}
		if connective != nil {
			blocks = append(blocks, connective)
		}
		segments = append(segments, Segment{Key: key, IsConnective: true, Blocks: blocks})

		if i < len(s.hops) {
			segments = append(segments, Segment{Key: s.hops[i].RefreshToken, Blocks: s.hops[i].Blocks})
		}
	}

	return segments
}

// Flatten returns the full display sequence with absent connectives left out
func (s *Selection) Flatten() []journey.Block {
	blocks := []journey.Block{}
	for _, segment := range s.Segments() {
		blocks = append(blocks, segment.Blocks...)
	}

	return blocks
}
