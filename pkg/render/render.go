// Package render paints a layout tree onto a raster surface.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"skiff/pkg/html"
	"skiff/pkg/layout"
)

// View describes what to paint: the visible rectangle in widget
// coordinates, the scroll offset relating widget space to content space,
// and the document background.
type View struct {
	Visible    image.Rectangle
	ScrollX    int
	ScrollY    int
	Background color.Color
}

// Painter rasterizes layout trees with a gg context. The zero font face
// gg ships is used unless a font is loaded; layout does not depend on the
// painter's metrics.
type Painter struct {
	dc *gg.Context
}

func NewPainter(width, height int) *Painter {
	return &Painter{dc: gg.NewContext(width, height)}
}

// Image returns the painted surface.
func (p *Painter) Image() image.Image { return p.dc.Image() }

// Paint fills the visible area with the view background and, when a
// layout tree exists, renders it translated by the scroll offset and
// clipped to the visible rectangle.
func (p *Painter) Paint(root *layout.Box, doc *html.Document, view View) {
	bg := view.Background
	if bg == nil {
		bg = color.White
	}
	p.dc.SetColor(bg)
	p.dc.DrawRectangle(
		float64(view.Visible.Min.X), float64(view.Visible.Min.Y),
		float64(view.Visible.Dx()), float64(view.Visible.Dy()))
	p.dc.Fill()

	if root == nil {
		return
	}

	p.dc.Push()
	p.dc.DrawRectangle(
		float64(view.Visible.Min.X), float64(view.Visible.Min.Y),
		float64(view.Visible.Dx()), float64(view.Visible.Dy()))
	p.dc.Clip()
	p.dc.Translate(float64(-view.ScrollX), float64(-view.ScrollY))

	p.drawBox(root, doc)

	p.dc.ResetClip()
	p.dc.Pop()
}

func (p *Painter) drawBox(box *layout.Box, doc *html.Document) {
	switch {
	case len(box.Lines) > 0:
		p.drawText(box)
	case box.ImageSrc != "":
		p.drawImage(box, doc)
	case box.Node != nil && box.Node.TagName == "hr":
		p.dc.SetRGB(0.6, 0.6, 0.6)
		p.dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		p.dc.Fill()
	}
	for _, child := range box.Children {
		p.drawBox(child, doc)
	}
}

func (p *Painter) drawText(box *layout.Box) {
	if box.Node != nil && box.Node.EnclosingLink() != nil {
		p.dc.SetRGB(0, 0, 0.8)
	} else {
		p.dc.SetRGB(0, 0, 0)
	}
	for _, line := range box.Lines {
		// Baseline sits near the bottom of the line box.
		p.dc.DrawString(line.Text, line.X, line.Y+line.Height*0.8)
	}
}

func (p *Painter) drawImage(box *layout.Box, doc *html.Document) {
	if doc != nil {
		if img, ok := doc.Images[box.ImageSrc]; ok {
			p.dc.DrawImage(img, int(box.X), int(box.Y))
			return
		}
	}
	// Placeholder frame for images that were not decoded.
	p.dc.SetRGB(0.85, 0.85, 0.85)
	p.dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	p.dc.Fill()
	p.dc.SetRGB(0.5, 0.5, 0.5)
	p.dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	p.dc.Stroke()
}
