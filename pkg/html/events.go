package html

// Event is a synthetic input event dispatched into the document model.
// Offsets are relative to the box origin of the layout node that was hit.
type Event struct {
	Type    string
	OffsetX int
	OffsetY int
}

// EventHandler observes events dispatched to a node.
type EventHandler func(Event)

// AddEventListener registers a handler for the given event type.
func (n *Node) AddEventListener(eventType string, handler EventHandler) {
	if n.listeners == nil {
		n.listeners = make(map[string][]EventHandler)
	}
	n.listeners[eventType] = append(n.listeners[eventType], handler)
}

// DispatchEvent delivers an event to this node's listeners. There is no
// bubbling; the interaction layer targets the hit node directly.
func (n *Node) DispatchEvent(ev Event) {
	for _, handler := range n.listeners[ev.Type] {
		handler(ev)
	}
}
