package layout

import "testing"

func TestSelection_Lifecycle(t *testing.T) {
	var s Selection
	if !s.IsEmpty() {
		t.Fatal("fresh selection should be empty")
	}

	a := &Box{Y: 10}
	b := &Box{Y: 50}
	s.Set(Position{Box: a, Offset: 2}, Position{Box: a, Offset: 2})
	if s.IsEmpty() {
		t.Error("selection with endpoints should not be empty")
	}

	s.SetEnd(Position{Box: b, Offset: 7})
	if s.Start().Box != a || s.End().Box != b {
		t.Errorf("endpoints = %v, %v", s.Start(), s.End())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("cleared selection should be empty")
	}
}

func TestSelection_NormalizedOrdersByPosition(t *testing.T) {
	top := &Box{X: 10, Y: 10}
	bottom := &Box{X: 10, Y: 50}

	var s Selection
	s.Set(Position{Box: bottom, Offset: 3}, Position{Box: top, Offset: 1})
	first, second := s.Normalized()
	if first.Box != top || second.Box != bottom {
		t.Errorf("backward drag not normalized: %v, %v", first.Box, second.Box)
	}

	s.Set(Position{Box: top, Offset: 1}, Position{Box: bottom, Offset: 3})
	first, second = s.Normalized()
	if first.Box != top || second.Box != bottom {
		t.Errorf("forward drag reordered: %v, %v", first.Box, second.Box)
	}
}

func TestSelection_NormalizedSameBoxByOffset(t *testing.T) {
	box := &Box{X: 10, Y: 10}
	var s Selection
	s.Set(Position{Box: box, Offset: 9}, Position{Box: box, Offset: 2})
	first, second := s.Normalized()
	if first.Offset != 2 || second.Offset != 9 {
		t.Errorf("offsets = %d, %d", first.Offset, second.Offset)
	}
}

func TestSelection_NormalizedSameRowByX(t *testing.T) {
	left := &Box{X: 10, Y: 10}
	right := &Box{X: 90, Y: 10}
	var s Selection
	s.Set(Position{Box: right}, Position{Box: left})
	first, second := s.Normalized()
	if first.Box != left || second.Box != right {
		t.Errorf("same-row drag not normalized: %v, %v", first.Box, second.Box)
	}
}
