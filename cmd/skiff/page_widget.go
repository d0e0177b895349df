package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"skiff/pkg/browser"
	"skiff/pkg/render"
)

// pageWidget shows the rendered page and forwards pointer and keyboard
// input into the page-view controller.
type pageWidget struct {
	widget.BaseWidget
	view   *browser.View
	img    *canvas.Image
	width  int
	height int
}

var _ desktop.Mouseable = (*pageWidget)(nil)
var _ desktop.Hoverable = (*pageWidget)(nil)
var _ fyne.Focusable = (*pageWidget)(nil)

func newPageWidget(view *browser.View, width, height int) *pageWidget {
	w := &pageWidget{
		view:   view,
		img:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height))),
		width:  width,
		height: height,
	}
	w.img.FillMode = canvas.ImageFillOriginal
	w.ExtendBaseWidget(w)
	return w
}

func (w *pageWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.img)
}

// Resize propagates the new viewport size into the controller, which
// re-runs layout and requests a repaint at the new dimensions.
func (w *pageWidget) Resize(size fyne.Size) {
	w.BaseWidget.Resize(size)
	width, height := int(size.Width), int(size.Height)
	if width <= 0 || height <= 0 {
		return
	}
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	w.view.Resize(image.Pt(width, height))
}

// refresh repaints the page into a fresh surface.
func (w *pageWidget) refresh() {
	p := render.NewPainter(w.width, w.height)
	w.view.Paint(p)
	w.img.Image = p.Image()
	w.img.Refresh()
}

func (w *pageWidget) mouseEvent(ev *desktop.MouseEvent) browser.MouseEvent {
	return browser.MouseEvent{
		Pos:       image.Pt(int(ev.Position.X), int(ev.Position.Y)),
		ScreenPos: image.Pt(int(ev.AbsolutePosition.X), int(ev.AbsolutePosition.Y)),
		Button:    mapButton(ev.Button),
	}
}

func mapButton(b desktop.MouseButton) browser.MouseButton {
	switch b {
	case desktop.MouseButtonPrimary:
		return browser.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return browser.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return browser.ButtonMiddle
	}
	return browser.ButtonNone
}

func (w *pageWidget) MouseDown(ev *desktop.MouseEvent) {
	w.view.MouseDown(w.mouseEvent(ev))
}

func (w *pageWidget) MouseUp(ev *desktop.MouseEvent) {
	w.view.MouseUp(w.mouseEvent(ev))
}

func (w *pageWidget) MouseIn(ev *desktop.MouseEvent) {
	w.view.MouseMove(w.mouseEvent(ev))
}

func (w *pageWidget) MouseMoved(ev *desktop.MouseEvent) {
	w.view.MouseMove(w.mouseEvent(ev))
}

func (w *pageWidget) MouseOut() {}

func (w *pageWidget) TypedKey(ev *fyne.KeyEvent) {
	key, ok := mapKey(ev.Name)
	if !ok {
		return
	}
	w.view.KeyDown(key, 0)
}

func mapKey(name fyne.KeyName) (browser.Key, bool) {
	switch name {
	case fyne.KeyHome:
		return browser.KeyHome, true
	case fyne.KeyEnd:
		return browser.KeyEnd, true
	case fyne.KeyUp:
		return browser.KeyUp, true
	case fyne.KeyDown:
		return browser.KeyDown, true
	case fyne.KeyLeft:
		return browser.KeyLeft, true
	case fyne.KeyRight:
		return browser.KeyRight, true
	case fyne.KeyPageUp:
		return browser.KeyPageUp, true
	case fyne.KeyPageDown:
		return browser.KeyPageDown, true
	}
	return 0, false
}

func (w *pageWidget) TypedRune(rune)       {}
func (w *pageWidget) FocusGained()         {}
func (w *pageWidget) FocusLost()           {}
