package browser

// scrollbarThickness is the space a visible scrollbar takes from the
// available content area.
const scrollbarThickness = 16

// scrollStep is one arrow-key or step-button increment.
const scrollStep = 24

// ScrollBar models one scrollbar's value range and visibility. The
// widget chrome itself lives with the embedder; the controller only needs
// the model to run the layout convergence loop and keyboard scrolling.
type ScrollBar struct {
	value    int
	max      int
	pageStep int
	visible  bool
}

// Value returns the current scroll offset along this axis.
func (s *ScrollBar) Value() int { return s.value }

// Max returns the largest settable value.
func (s *ScrollBar) Max() int { return s.max }

// Step returns the per-keypress increment.
func (s *ScrollBar) Step() int { return scrollStep }

// PageStep returns the increment for page up/down.
func (s *ScrollBar) PageStep() int { return s.pageStep }

// Visible reports whether the scrollbar is shown. Unnecessary scrollbars
// are hidden.
func (s *ScrollBar) Visible() bool { return s.visible }

// SetValue sets the offset, clamped to [0, max].
func (s *ScrollBar) SetValue(v int) {
	if v < 0 {
		v = 0
	}
	if v > s.max {
		v = s.max
	}
	s.value = v
}

// configure updates range, page step, and visibility for the given
// content extent and visible extent along this axis.
func (s *ScrollBar) configure(contentExtent, visibleExtent int) {
	s.visible = contentExtent > visibleExtent
	s.max = contentExtent - visibleExtent
	if s.max < 0 {
		s.max = 0
	}
	s.pageStep = visibleExtent
	s.SetValue(s.value)
}
