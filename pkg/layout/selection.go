package layout

// Position is one selection endpoint: a layout box plus a rune offset
// within its node's text. The box reference is non-owning; a selection
// must never outlive the layout tree its boxes belong to.
type Position struct {
	Box    *Box
	Offset int
}

// Selection is an ordered pair of endpoints on one layout tree. It is
// discarded together with the tree when the document is replaced.
type Selection struct {
	start Position
	end   Position
}

// Set replaces both endpoints.
func (s *Selection) Set(start, end Position) {
	s.start = start
	s.end = end
}

// SetEnd moves only the end endpoint, extending an in-progress drag.
func (s *Selection) SetEnd(end Position) {
	s.end = end
}

func (s *Selection) Start() Position { return s.start }
func (s *Selection) End() Position   { return s.end }

// Clear drops both endpoints.
func (s *Selection) Clear() {
	s.start = Position{}
	s.end = Position{}
}

// IsEmpty reports whether no selection is set.
func (s *Selection) IsEmpty() bool {
	return s.start.Box == nil && s.end.Box == nil
}

// Normalized returns the endpoints in visual document order (top-left
// first). Endpoints on the same box order by offset.
func (s *Selection) Normalized() (Position, Position) {
	a, b := s.start, s.end
	if a.Box == nil || b.Box == nil {
		return a, b
	}
	if a.Box == b.Box {
		if a.Offset > b.Offset {
			return b, a
		}
		return a, b
	}
	if b.Box.Y < a.Box.Y || (b.Box.Y == a.Box.Y && b.Box.X < a.Box.X) {
		return b, a
	}
	return a, b
}
