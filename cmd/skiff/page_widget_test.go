package main

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"skiff/pkg/browser"
)

func TestPageWidget_ResizePropagatesToView(t *testing.T) {
	test.NewApp()

	view := browser.NewView(browser.Config{ViewportSize: image.Pt(300, 200)})
	w := newPageWidget(view, 300, 200)

	w.Resize(fyne.NewSize(500, 400))

	rect := view.VisibleContentRect()
	if rect.Dx() != 500 || rect.Dy() != 400 {
		t.Errorf("viewport = %dx%d after resize, want 500x400", rect.Dx(), rect.Dy())
	}
	if w.width != 500 || w.height != 400 {
		t.Errorf("widget surface = %dx%d", w.width, w.height)
	}

	// Same size again must be a no-op.
	w.Resize(fyne.NewSize(500, 400))
	if rect := view.VisibleContentRect(); rect.Dx() != 500 {
		t.Errorf("viewport = %dx%d after repeat resize", rect.Dx(), rect.Dy())
	}
}
