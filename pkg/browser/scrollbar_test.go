package browser

import "testing"

func TestScrollBar_Configure(t *testing.T) {
	var s ScrollBar
	s.configure(1000, 600)
	if !s.Visible() {
		t.Error("overflowing content should show the bar")
	}
	if s.Max() != 400 {
		t.Errorf("max = %d", s.Max())
	}
	if s.PageStep() != 600 {
		t.Errorf("page step = %d", s.PageStep())
	}

	s.configure(500, 600)
	if s.Visible() {
		t.Error("fitting content should hide the bar")
	}
	if s.Max() != 0 {
		t.Errorf("max = %d", s.Max())
	}
}

func TestScrollBar_SetValueClamps(t *testing.T) {
	var s ScrollBar
	s.configure(1000, 600)

	s.SetValue(-10)
	if s.Value() != 0 {
		t.Errorf("value = %d, want clamp to 0", s.Value())
	}
	s.SetValue(9999)
	if s.Value() != 400 {
		t.Errorf("value = %d, want clamp to max", s.Value())
	}
}

func TestScrollBar_ReconfigureReclampsValue(t *testing.T) {
	var s ScrollBar
	s.configure(1000, 600)
	s.SetValue(400)

	// Content shrinks: the held value must come back into range.
	s.configure(700, 600)
	if s.Value() != 100 {
		t.Errorf("value = %d after shrink, want 100", s.Value())
	}
}
