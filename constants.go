package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeNotePick
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

// ToolMode is the creation/selection behavior picked from the toolbar.
type ToolMode int

const (
	ToolSelect ToolMode = iota
	ToolAddFlow
	ToolAddContext
	ToolAddDomain
	ToolAddConnection
	ToolAddHotspot
)

func (t ToolMode) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolAddFlow:
		return "addFlow"
	case ToolAddContext:
		return "addContext"
	case ToolAddDomain:
		return "addDomain"
	case ToolAddConnection:
		return "addConnection"
	case ToolAddHotspot:
		return "addHotspot"
	default:
		return "unknown"
	}
}

// EntityKind tags the collection an entity id belongs to.
type EntityKind int

const (
	KindNone EntityKind = iota
	KindFlow
	KindContext
	KindDomain
	KindConnection
	KindHotspot
)

func (k EntityKind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindContext:
		return "context"
	case KindDomain:
		return "domain"
	case KindConnection:
		return "connection"
	case KindHotspot:
		return "hotspot"
	default:
		return "none"
	}
}

// Edge is a resize handle position. Bits combine for corners.
type Edge int

const (
	EdgeNone  Edge = 0
	EdgeNorth Edge = 1 << iota
	EdgeSouth
	EdgeWest
	EdgeEast
	EdgeNorthWest = EdgeNorth | EdgeWest
	EdgeNorthEast = EdgeNorth | EdgeEast
	EdgeSouthWest = EdgeSouth | EdgeWest
	EdgeSouthEast = EdgeSouth | EdgeEast
)

func (e Edge) Has(other Edge) bool {
	return e&other != 0
}

type SlotType string

const (
	SlotViews           SlotType = "views"
	SlotActors          SlotType = "actors"
	SlotCommands        SlotType = "commands"
	SlotAggregates      SlotType = "aggregates"
	SlotEvents          SlotType = "events"
	SlotExternalSystems SlotType = "externalSystems"
	SlotPolicies        SlotType = "policies"
)

// SlotOrder is the left-to-right order of slots inside a flow.
var SlotOrder = []SlotType{
	SlotViews,
	SlotActors,
	SlotCommands,
	SlotAggregates,
	SlotEvents,
	SlotExternalSystems,
	SlotPolicies,
}

type DomainType string

const (
	DomainCore       DomainType = "core"
	DomainSupporting DomainType = "supporting"
	DomainGeneric    DomainType = "generic"
)

func (t DomainType) Next() DomainType {
	switch t {
	case DomainCore:
		return DomainSupporting
	case DomainSupporting:
		return DomainGeneric
	default:
		return DomainCore
	}
}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

const (
	MinZoom  = 0.2
	MaxZoom  = 3.0
	ZoomStep = 1.2

	MinDrawSize     = 30.0
	MinRegionWidth  = 200.0
	MinRegionHeight = 120.0

	FlowPadding = 12.0
	SlotWidth   = 120.0
	SlotGap     = 8.0
	NoteHeight  = 64.0
	NoteGap     = 8.0

	LabelHeight     = 24.0
	HandleTolerance = 8.0 // screen pixels

	HotspotWidth  = 160.0
	HotspotHeight = 72.0

	ConnectionHitTolerance = 6.0 // screen pixels
	ConnectionMinOffset    = 40.0
	ConnectionOffsetRatio  = 0.4

	// A terminal cell stands for this many screen pixels.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

const (
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeySpace     = " "
	KeyLeft      = "ArrowLeft"
	KeyRight     = "ArrowRight"
	KeyHome      = "Home"
	KeyEnd       = "End"
)
