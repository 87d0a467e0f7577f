package journeytree

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
)

var (
	ErrTooFewWaypoints = errors.New("a journey tree needs at least two waypoints")
	ErrArrivalAnchored = errors.New("journey trees can only be anchored at a departure time")
)

const DefaultMaxGoroutines = 8

// Source is the backend a tree is built from
type Source interface {
	Journeys(ctx context.Context, from *hafas.Location, to *hafas.Location, departure time.Time, options hafas.JourneysOptions) ([]*hafas.Journey, error)
	RefreshJourney(ctx context.Context, refreshToken string) (*hafas.Journey, error)
}

// Node is one alternative journey for the hop at Depth. Its children are the alternatives for
// the following hop, departing after this node arrives.
type Node struct {
	Depth        int             `json:"depth" groups:"basic"`
	IDInDepth    int             `json:"idInDepth" groups:"basic"`
	RefreshToken string          `json:"refreshToken" groups:"basic"`
	Blocks       []journey.Block `json:"blocks" groups:"basic"`

	Departure *journey.TimeStatus `json:"departure" groups:"basic"`
	Arrival   *journey.TimeStatus `json:"arrival" groups:"basic"`

	Children []*Node `json:"children" groups:"basic"`
}

// canContinue reports whether journeys for the next hop can be searched from this node
func (n *Node) canContinue() bool {
	return n.Arrival != nil && len(n.Blocks) > 0 && journey.IsDefining(n.Blocks[0])
}

type Builder struct {
	Source        Source
	Options       hafas.JourneysOptions
	MaxGoroutines int
}

func NewBuilder(source Source, options hafas.JourneysOptions) *Builder {
	return &Builder{
		Source:        source,
		Options:       options,
		MaxGoroutines: DefaultMaxGoroutines,
	}
}

// Build searches journeys for the first hop at the given time and then, level by level, the
// journeys for each following hop departing after every alternative of the previous one.
// Nodes get their IDInDepth breadth first, left to right.
func (b *Builder) Build(ctx context.Context, waypoints []*hafas.Location, at time.Time, role journey.Role) ([]*Node, error) {
	if role == journey.RoleArrival {
		return nil, ErrArrivalAnchored
	}
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	journeys, err := b.Source.Journeys(ctx, waypoints[0], waypoints[1], at, b.Options)
	if err != nil {
		return nil, fmt.Errorf("searching journeys for hop 0: %w", err)
	}

	tree := nodesFromJourneys(0, journeys)
	assignIDs(tree)

	level := tree
	for depth := 1; depth < len(waypoints)-1; depth++ {
		children := b.expand(ctx, level, waypoints[depth], waypoints[depth+1], depth)

		nextLevel := []*Node{}
		for i, parent := range level {
			parent.Children = children[i]
			nextLevel = append(nextLevel, children[i]...)
		}
		assignIDs(nextLevel)

		log.Debug().Int("depth", depth).Int("nodes", len(nextLevel)).Msg("Expanded journey tree level")
		level = nextLevel
	}

	return tree, nil
}

// expand fetches the children of every node of one level concurrently
func (b *Builder) expand(ctx context.Context, level []*Node, from *hafas.Location, to *hafas.Location, depth int) [][]*Node {
	children := make([][]*Node, len(level))

	p := pool.New().WithMaxGoroutines(max(b.MaxGoroutines, 1))

	for i, parent := range level {
		children[i] = []*Node{}
		if !parent.canContinue() {
			continue
		}

		p.Go(func() {
			journeys, err := b.Source.Journeys(ctx, from, to, parent.Arrival.Time, b.Options)
			if err != nil {
				log.Warn().Err(err).Int("depth", depth).Msg("Failed to search journeys for tree node")
				children[i] = []*Node{errorNode(depth)}
				return
			}

			children[i] = nodesFromJourneys(depth, journeys)
		})
	}

	p.Wait()

	return children
}

func nodesFromJourneys(depth int, journeys []*hafas.Journey) []*Node {
	nodes := make([]*Node, 0, len(journeys))

	for _, itinerary := range journeys {
		blocks := journey.ToBlocks(itinerary)
		departure, arrival := journey.FirstAndLastTime(blocks)

		node := &Node{
			Depth:     depth,
			Blocks:    blocks,
			Departure: departure,
			Arrival:   arrival,
			Children:  []*Node{},
		}
		if itinerary != nil {
			node.RefreshToken = itinerary.RefreshToken
		}

		nodes = append(nodes, node)
	}

	return nodes
}

func errorNode(depth int) *Node {
	return &Node{
		Depth:    depth,
		Blocks:   []journey.Block{journey.NewErrorBlock()},
		Children: []*Node{},
	}
}

func assignIDs(nodes []*Node) {
	for i, node := range nodes {
		node.IDInDepth = i
	}
}

// ReplaceJourneys swaps in refreshed block sequences: at every depth the node whose IDInDepth
// matches idsInDepth[depth] gets blocksPerDepth[depth] along with its first and last times.
// An empty sequence leaves its depth untouched.
func ReplaceJourneys(tree []*Node, blocksPerDepth [][]journey.Block, idsInDepth []int) {
	if len(blocksPerDepth) == 0 || len(idsInDepth) == 0 {
		return
	}

	for _, node := range tree {
		if node.IDInDepth == idsInDepth[0] && len(blocksPerDepth[0]) > 0 {
			node.Blocks = blocksPerDepth[0]
			node.Departure, node.Arrival = journey.FirstAndLastTime(blocksPerDepth[0])
		}

		ReplaceJourneys(node.Children, blocksPerDepth[1:], idsInDepth[1:])
	}
}
