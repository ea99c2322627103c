package dom

// EventKind identifies the event classes the narration subsystem listens to.
type EventKind int

const (
	// EventFocus fires when an element receives keyboard focus.
	EventFocus EventKind = iota
	// EventHover fires when the pointer settles on an element.
	EventHover
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Listener receives the event target.
type Listener func(target *Node)

// Document is the contract the panel core requires of the host document.
// All id-addressed operations follow zero-or-one semantics: a missing target
// is a silent no-op, never an error.
//
// Implementations are assumed single-threaded; every mutation happens inside
// an event handler on the host's event loop.
type Document interface {
	// Root presentation state.
	SetRootFontScale(scale float64)
	RootFontScale() float64
	SetRootAttribute(name, value string)
	RootAttribute(name string) string
	ToggleRootClass(class string, on bool)
	HasRootClass(class string) bool

	// Element access and fragment lifecycle.
	ElementByID(id string) *Node
	SetText(id, text string)
	Mount(n *Node)
	Unmount(id string)

	// Focus management.
	Focus(id string)
	FocusedID() string

	// LabelFor returns the label element associated with a form control id,
	// or nil if none exists.
	LabelFor(controlID string) *Node

	// AddListener registers a listener for an event kind and returns a
	// function that removes exactly that registration.
	AddListener(kind EventKind, fn Listener) func()
}
