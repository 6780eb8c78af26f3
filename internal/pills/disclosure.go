package pills

// DisclosureState is the open/closed state of the overflow panel
type DisclosureState int

const (
	Closed DisclosureState = iota
	Open
)

func (s DisclosureState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Event drives the overflow panel
type Event string

const (
	PointerEnterIndicator Event = "pointerenter:indicator"
	PointerLeaveIndicator Event = "pointerleave:indicator"
	PointerLeavePanel     Event = "pointerleave:panel"

	// Keyboard equivalents of the pointer contract
	FocusIndicator Event = "focus:indicator"
	BlurIndicator  Event = "blur:indicator"
	Escape         Event = "keydown:escape"
)

// transitions lists every state change. Pairs not listed keep the state.
var transitions = map[DisclosureState]map[Event]DisclosureState{
	Closed: {
		PointerEnterIndicator: Open,
		FocusIndicator:        Open,
	},
	Open: {
		PointerLeaveIndicator: Closed,
		PointerLeavePanel:     Closed,
		BlurIndicator:         Closed,
		Escape:                Closed,
	},
}

// Next returns the state after event e in state s
func Next(s DisclosureState, e Event) DisclosureState {
	if next, ok := transitions[s][e]; ok {
		return next
	}
	return s
}

// Disclosure is the state of one overflow panel. The zero value is closed.
type Disclosure struct {
	state DisclosureState
}

// State returns the current state
func (d *Disclosure) State() DisclosureState {
	return d.state
}

// IsOpen reports whether the panel is shown
func (d *Disclosure) IsOpen() bool {
	return d.state == Open
}

// Fire applies e and returns the new state
func (d *Disclosure) Fire(e Event) DisclosureState {
	d.state = Next(d.state, e)
	return d.state
}

// TransitionTable returns the transitions keyed by state and event names,
// for clients that replay them in the browser.
func TransitionTable() map[string]map[string]string {
	table := make(map[string]map[string]string, len(transitions))
	for from, events := range transitions {
		row := make(map[string]string, len(events))
		for e, to := range events {
			row[string(e)] = to.String()
		}
		table[from.String()] = row
	}
	return table
}
