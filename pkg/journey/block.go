package journey

import (
	"golang.org/x/exp/slices"
)

type BlockType string

const (
	BlockTypeLeg        BlockType = "leg"
	BlockTypeWalk       BlockType = "walk"
	BlockTypeTransfer   BlockType = "transfer"
	BlockTypeLocation   BlockType = "location"
	BlockTypeError      BlockType = "error"
	BlockTypeUnselected BlockType = "unselected"
)

// Block is one presentation element of a journey. The concrete types are LegBlock,
// WalkBlock, TransferBlock, LocationBlock, ErrorBlock and UnselectedBlock.
type Block interface {
	BlockType() BlockType
	clone() Block
}

// Linkage records what connects a leg to its neighbour
type Linkage string

const (
	LinkagePending  Linkage = ""
	LinkageNone     Linkage = "none"
	LinkageTransfer Linkage = "transfer"
	LinkageStopover Linkage = "stopover"
)

type Attribute string

const (
	AttributeCancelled  Attribute = "cancelled"
	AttributeAdditional Attribute = "additional"
)

type PlatformData struct {
	Platform        string `json:"platform" groups:"basic"`
	PlatformChanged bool   `json:"platformChanged" groups:"basic"`
}

// TransitData describes a journey touching a station: leg endpoints, stopovers and the
// shared station of a transfer. The second attribute and platform are only used by
// transfers and describe the departing side.
type TransitData struct {
	Location     Location      `json:"location" groups:"basic"`
	Attribute    Attribute     `json:"attribute,omitempty" groups:"basic"`
	Attribute2   Attribute     `json:"attribute2,omitempty" groups:"basic"`
	Time         TimePair      `json:"time" groups:"basic"`
	PlatformData *PlatformData `json:"platformData" groups:"basic"`
	Platform2    *PlatformData `json:"platformData2,omitempty" groups:"basic"`
}

// MergeTransitData joins the arrival at a station with the departure from it
func MergeTransitData(arrival TransitData, departure TransitData, singlePlatform bool) TransitData {
	merged := TransitData{
		Location: arrival.Location,
		Time: TimePair{
			Arrival:   arrival.Time.Arrival,
			Departure: departure.Time.Departure,
		},
		Attribute:    arrival.Attribute,
		Attribute2:   departure.Attribute,
		PlatformData: arrival.PlatformData,
	}

	if !singlePlatform {
		merged.Platform2 = departure.PlatformData
	}

	return merged
}

type LineInfo struct {
	Name        string `json:"name" groups:"basic"`
	FahrtNr     string `json:"fahrtNr" groups:"basic"`
	Product     string `json:"product" groups:"basic"`
	ProductName string `json:"productName" groups:"basic"`
	Mode        string `json:"mode" groups:"basic"`
	Operator    string `json:"operator" groups:"basic" copier:"-"`
}

type LegBlock struct {
	Type     BlockType `json:"type" groups:"basic"`
	TripID   string    `json:"tripId" groups:"basic"`
	BlockKey string    `json:"blockKey" groups:"basic"`

	DepartureData TransitData `json:"departureData" groups:"basic"`
	ArrivalData   TransitData `json:"arrivalData" groups:"basic"`

	Duration  *float64 `json:"duration" groups:"basic"`
	Direction string   `json:"direction" groups:"basic"`
	Line      LineInfo `json:"line" groups:"basic"`

	CurrentLocation *Location `json:"currentLocation,omitempty" groups:"basic"`

	Stopovers       []TransitData `json:"stopovers" groups:"detailed"`
	Polyline        [][2]float64  `json:"polyline" groups:"detailed"`
	EncodedPolyline string        `json:"encodedPolyline" groups:"detailed"`

	PrecededBy  Linkage `json:"precededBy" groups:"basic"`
	SucceededBy Linkage `json:"succeededBy" groups:"basic"`
}

func (b *LegBlock) BlockType() BlockType { return BlockTypeLeg }

func (b *LegBlock) clone() Block {
	copied := *b
	copied.Stopovers = slices.Clone(b.Stopovers)
	copied.Polyline = slices.Clone(b.Polyline)
	return &copied
}

type WalkBlock struct {
	Type                BlockType `json:"type" groups:"basic"`
	OriginLocation      Location  `json:"originLocation" groups:"basic"`
	DestinationLocation Location  `json:"destinationLocation" groups:"basic"`

	// TransferTime is the time in minutes from the start of the walk to the next departure
	TransferTime *float64 `json:"transferTime" groups:"basic"`
	WalkingTime  *float64 `json:"walkingTime,omitempty" groups:"basic"`
	Distance     int      `json:"distance" groups:"basic"`
}

func (b *WalkBlock) BlockType() BlockType { return BlockTypeWalk }

func (b *WalkBlock) clone() Block {
	copied := *b
	return &copied
}

type TransferBlock struct {
	Type             BlockType   `json:"type" groups:"basic"`
	TransferTime     *float64    `json:"transferTime" groups:"basic"`
	TransitData      TransitData `json:"transitData" groups:"basic"`
	ArrivalProduct   string      `json:"arrivalProduct" groups:"basic"`
	DepartureProduct string      `json:"departureProduct" groups:"basic"`

	// IsStopover is set when both sides are the same vehicle run
	IsStopover bool `json:"isStopover" groups:"basic"`
}

func (b *TransferBlock) BlockType() BlockType { return BlockTypeTransfer }

func (b *TransferBlock) clone() Block {
	copied := *b
	return &copied
}

type LocationBlock struct {
	Type     BlockType `json:"type" groups:"basic"`
	Time     TimePair  `json:"time" groups:"basic"`
	Location Location  `json:"location" groups:"basic"`
	Hidden   bool      `json:"hidden" groups:"basic"`
}

func (b *LocationBlock) BlockType() BlockType { return BlockTypeLocation }

func (b *LocationBlock) clone() Block {
	copied := *b
	return &copied
}

type ErrorBlock struct {
	Type BlockType `json:"type" groups:"basic"`
}

func (b *ErrorBlock) BlockType() BlockType { return BlockTypeError }

func (b *ErrorBlock) clone() Block { return NewErrorBlock() }

type UnselectedBlock struct {
	Type BlockType `json:"type" groups:"basic"`
}

func (b *UnselectedBlock) BlockType() BlockType { return BlockTypeUnselected }

func (b *UnselectedBlock) clone() Block { return NewUnselectedBlock() }

func NewErrorBlock() *ErrorBlock {
	return &ErrorBlock{Type: BlockTypeError}
}

func NewUnselectedBlock() *UnselectedBlock {
	return &UnselectedBlock{Type: BlockTypeUnselected}
}

// NewRawLocationBlock is a location without any time information
func NewRawLocationBlock(location Location) *LocationBlock {
	return &LocationBlock{
		Type:     BlockTypeLocation,
		Location: location,
	}
}

// UnselectedBlocks is the block sequence of a hop without a chosen journey
func UnselectedBlocks() []Block {
	return []Block{NewUnselectedBlock()}
}

// IsDefining reports whether b carries timing and may open or close a journey
func IsDefining(b Block) bool {
	if b == nil {
		return false
	}

	blockType := b.BlockType()
	return blockType == BlockTypeLeg || blockType == BlockTypeLocation
}

// CloneBlocks copies a block sequence so that flag updates on the copy never reach the original
func CloneBlocks(blocks []Block) []Block {
	cloned := make([]Block, len(blocks))
	for i, block := range blocks {
		if block != nil {
			cloned[i] = block.clone()
		}
	}

	return cloned
}

// FirstAndLastTime returns the departure of the first defining block and the arrival of the last
func FirstAndLastTime(blocks []Block) (*TimeStatus, *TimeStatus) {
	var departure, arrival *TimeStatus

	if index := slices.IndexFunc(blocks, IsDefining); index >= 0 {
		departure = definingTime(blocks[index], RoleDeparture)
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if IsDefining(blocks[i]) {
			arrival = definingTime(blocks[i], RoleArrival)
			break
		}
	}

	return departure, arrival
}

func definingTime(block Block, role Role) *TimeStatus {
	switch b := block.(type) {
	case *LegBlock:
		if role == RoleArrival {
			return b.ArrivalData.Time.Arrival
		}
		return b.DepartureData.Time.Departure
	case *LocationBlock:
		return b.Time.Get(role)
	}

	return nil
}
