package browser

import (
	"image"
	"strings"

	"go.uber.org/zap"

	"skiff/pkg/html"
	"skiff/pkg/layout"
	"skiff/pkg/web"
)

// MouseButton identifies which pointer button an event carries.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// KeyModifiers is a bitmask of held modifier keys.
type KeyModifiers int

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Key identifies the navigation keys the controller handles itself.
type Key int

const (
	KeyHome Key = iota
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
)

// Cursor is the pointer shape the embedder should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorHand
)

// MouseEvent is a pointer event in widget coordinates. ScreenPos is the
// same position in screen coordinates, for tooltips and context menus.
type MouseEvent struct {
	Pos       image.Point
	ScreenPos image.Point
	Button    MouseButton
	Modifiers KeyModifiers
}

// DropEvent is a drag-and-drop payload. Addresses is set when the payload
// is a list of addresses.
type DropEvent struct {
	Addresses []*web.Address
	Text      string
}

// toContentPosition maps widget coordinates to content coordinates by
// adding the scroll offset.
func (v *View) toContentPosition(widgetPos image.Point) image.Point {
	return widgetPos.Add(image.Pt(v.hScroll.Value(), v.vScroll.Value()))
}

// computeMouseEventOffset gives the pointer position relative to the hit
// box's origin.
func (v *View) computeMouseEventOffset(contentPos image.Point, box *layout.Box) image.Point {
	return image.Pt(contentPos.X-int(box.X), contentPos.Y-int(box.Y))
}

// MouseMove handles pointer movement: hover tracking, selection
// extension, synthetic event dispatch, cursor and tooltip updates.
// Returns false when there is no layout tree and default scroll-widget
// behavior should apply.
func (v *View) MouseMove(ev MouseEvent) bool {
	if v.layoutRoot == nil {
		return false
	}

	hoveredNodeChanged := false
	isHoveringLink := false
	wasHoveringLink := v.doc.HoveredNode() != nil && v.doc.HoveredNode().EnclosingLink() != nil
	var hoveredLink *html.Node

	contentPos := v.toContentPosition(ev.Pos)
	hit := v.layoutRoot.HitTest(float64(contentPos.X), float64(contentPos.Y))
	if hit != nil {
		node := hit.Box.Node
		hoveredNodeChanged = node != v.doc.HoveredNode()
		v.doc.SetHoveredNode(node)
		if node != nil {
			hoveredLink = node.EnclosingLink()
			if hoveredLink != nil {
				isHoveringLink = true
			}
			offset := v.computeMouseEventOffset(contentPos, hit.Box)
			node.DispatchEvent(html.Event{Type: "mousemove", OffsetX: offset.X, OffsetY: offset.Y})
		}
		if v.inMouseSelection {
			v.layoutRoot.Selection().SetEnd(layout.Position{Box: hit.Box, Offset: hit.IndexInNode})
			v.requestRepaint()
		}
	}

	if isHoveringLink {
		v.setCursor(CursorHand)
	} else {
		v.setCursor(CursorDefault)
	}

	if hoveredNodeChanged {
		v.requestRepaint()
		v.updateTooltip(ev)
	}

	if isHoveringLink != wasHoveringLink && v.OnLinkHover != nil {
		target := ""
		if hoveredLink != nil {
			href, _ := hoveredLink.GetAttribute("href")
			target = v.doc.Base.Resolve(href).String()
		}
		v.OnLinkHover(target)
	}
	return true
}

// updateTooltip shows the hovered element's advisory title near the
// pointer, or hides any shown tooltip.
func (v *View) updateTooltip(ev MouseEvent) {
	var titled *html.Node
	if hovered := v.doc.HoveredNode(); hovered != nil {
		titled = hovered.EnclosingTitled()
	}
	if titled != nil {
		if title, _ := titled.GetAttribute("title"); title != "" {
			if v.OnTooltipShow != nil {
				v.OnTooltipShow(title, ev.ScreenPos.Add(image.Pt(4, 4)))
			}
			return
		}
	}
	if v.OnTooltipHide != nil {
		v.OnTooltipHide()
	}
}

// MouseDown handles button presses: link activation per button, or the
// start of a text selection on non-link content.
func (v *View) MouseDown(ev MouseEvent) bool {
	if v.layoutRoot == nil {
		return false
	}

	hoveredNodeChanged := false
	contentPos := v.toContentPosition(ev.Pos)
	hit := v.layoutRoot.HitTest(float64(contentPos.X), float64(contentPos.Y))
	if hit != nil {
		node := hit.Box.Node
		hoveredNodeChanged = node != v.doc.HoveredNode()
		v.doc.SetHoveredNode(node)
		if node != nil {
			offset := v.computeMouseEventOffset(contentPos, hit.Box)
			node.DispatchEvent(html.Event{Type: "mousedown", OffsetX: offset.X, OffsetY: offset.Y})

			if link := node.EnclosingLink(); link != nil {
				v.handleLinkPress(link, ev)
			} else if ev.Button == ButtonPrimary {
				// A fresh selection is collapsed: both endpoints sit at
				// the press position until the drag extends the end.
				anchor := layout.Position{Box: hit.Box, Offset: hit.IndexInNode}
				v.layoutRoot.Selection().Set(anchor, anchor)
				v.inMouseSelection = true
			}
		}
	}

	if hoveredNodeChanged {
		v.requestRepaint()
	}
	return true
}

func (v *View) handleLinkPress(link *html.Node, ev MouseEvent) {
	href, _ := link.GetAttribute("href")
	v.log.Debug("clicking link", zap.String("href", href))

	switch ev.Button {
	case ButtonPrimary:
		if strings.HasPrefix(href, "javascript:") {
			v.runJavaScriptURL(href)
		} else if v.OnLinkClick != nil {
			targetWindow, _ := link.GetAttribute("target")
			v.OnLinkClick(href, targetWindow, ev.Modifiers)
		}
	case ButtonSecondary:
		if v.OnLinkContextMenuRequest != nil {
			v.OnLinkContextMenuRequest(href, ev.ScreenPos)
		}
	case ButtonMiddle:
		if v.OnLinkMiddleClick != nil {
			v.OnLinkMiddleClick(href)
		}
	}
}

// MouseUp dispatches the synthetic event and, on primary release, ends an
// in-progress selection drag. The endpoints stay as last extended.
func (v *View) MouseUp(ev MouseEvent) bool {
	if v.layoutRoot == nil {
		return false
	}

	contentPos := v.toContentPosition(ev.Pos)
	if hit := v.layoutRoot.HitTest(float64(contentPos.X), float64(contentPos.Y)); hit != nil {
		if node := hit.Box.Node; node != nil {
			offset := v.computeMouseEventOffset(contentPos, hit.Box)
			node.DispatchEvent(html.Event{Type: "mouseup", OffsetX: offset.X, OffsetY: offset.Y})
		}
	}

	if ev.Button == ButtonPrimary {
		v.inMouseSelection = false
	}
	return true
}

// KeyDown maps unmodified navigation keys to scroll adjustments. Returns
// false for combinations this layer does not handle.
func (v *View) KeyDown(key Key, modifiers KeyModifiers) bool {
	if modifiers != 0 {
		return false
	}
	switch key {
	case KeyHome:
		v.vScroll.SetValue(0)
	case KeyEnd:
		v.vScroll.SetValue(v.vScroll.Max())
	case KeyDown:
		v.vScroll.SetValue(v.vScroll.Value() + v.vScroll.Step())
	case KeyUp:
		v.vScroll.SetValue(v.vScroll.Value() - v.vScroll.Step())
	case KeyLeft:
		v.hScroll.SetValue(v.hScroll.Value() + v.hScroll.Step())
	case KeyRight:
		v.hScroll.SetValue(v.hScroll.Value() - v.hScroll.Step())
	case KeyPageDown:
		v.vScroll.SetValue(v.vScroll.Value() + v.vScroll.PageStep())
	case KeyPageUp:
		v.vScroll.SetValue(v.vScroll.Value() - v.vScroll.PageStep())
	default:
		return false
	}
	v.didScroll()
	return true
}

// Drop handles a drag-and-drop payload: an address list navigates via the
// embedder; anything else falls through to default drop handling.
func (v *View) Drop(ev DropEvent) bool {
	if len(ev.Addresses) > 0 && v.OnAddressDrop != nil {
		v.OnAddressDrop(ev.Addresses[0])
		return true
	}
	return false
}
