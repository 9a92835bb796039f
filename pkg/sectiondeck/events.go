package sectiondeck

// EventKind identifies what a controller is announcing.
type EventKind int

const (
	EventSectionChanged      EventKind = iota // The current index moved
	EventNavigateRequested                    // A transition or scroll toward Index was started
	EventContainerVisibility                  // The deck entered or left the viewport
)

func (k EventKind) String() string {
	switch k {
	case EventSectionChanged:
		return "section_changed"
	case EventNavigateRequested:
		return "navigate_requested"
	case EventContainerVisibility:
		return "container_visibility"
	default:
		return "unknown"
	}
}

// Source is the input channel that caused an event.
type Source int

const (
	SourceProgrammatic Source = iota
	SourceWheel
	SourceKeyboard
	SourceTouch
	SourceVisibility
	SourceSideNav
	SourceRestore
)

func (s Source) String() string {
	switch s {
	case SourceProgrammatic:
		return "programmatic"
	case SourceWheel:
		return "wheel"
	case SourceKeyboard:
		return "keyboard"
	case SourceTouch:
		return "touch"
	case SourceVisibility:
		return "visibility"
	case SourceSideNav:
		return "side_nav"
	case SourceRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to subscribers, in acceptance order.
type Event struct {
	Kind    EventKind
	Index   int
	Total   int
	Source  Source
	Visible bool // EventContainerVisibility only
}

type subscription struct {
	id int
	fn func(Event)
}
