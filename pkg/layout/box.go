// Package layout computes positioned box geometry from a document tree
// and answers hit-test queries against it. The tree is rebuilt on every
// layout pass and never mutated incrementally.
package layout

import (
	"skiff/pkg/html"
)

// Box is one node of the layout tree. Node is a non-owning back-reference
// to the originating document node; the document node may be replaced
// independently of layout, so the link is lookup-only.
type Box struct {
	Node     *html.Node
	X, Y     float64 // absolute content-space position
	Width    float64
	Height   float64
	Children []*Box
	Parent   *Box

	FontSize float64
	Bold     bool
	Mono     bool
	ImageSrc string

	// Lines is non-empty for text boxes: the wrapped runs with their
	// absolute geometry and rune offsets into the node's text.
	Lines []Line

	// Root-only state.
	sel    *Selection
	byNode map[*html.Node]*Box
}

// Line is one wrapped run of a text box.
type Line struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
	Start  int // rune offset of the first character within the node's text
}

// Selection returns the selection attached to the layout root.
func (b *Box) Selection() *Selection { return b.sel }

// BoxForNode returns the box generated for the given document node, or
// nil. Only valid on the layout root.
func (b *Box) BoxForNode(n *html.Node) *Box {
	if b.byNode == nil {
		return nil
	}
	return b.byNode[n]
}

// HitResult identifies the layout node under a content-space point and,
// for text boxes, the rune offset within the originating node's text.
type HitResult struct {
	Box         *Box
	IndexInNode int
}

// HitTest locates the deepest box containing the content-space point.
// Returns nil when nothing is hit.
func (b *Box) HitTest(x, y float64) *HitResult {
	// Children are visited back-to-front so later (visually topmost)
	// siblings win.
	for i := len(b.Children) - 1; i >= 0; i-- {
		if hit := b.Children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	if !b.contains(x, y) {
		return nil
	}
	result := &HitResult{Box: b}
	if len(b.Lines) > 0 {
		result.IndexInNode = b.textOffsetAt(x, y)
	}
	return result
}

func (b *Box) contains(x, y float64) bool {
	if len(b.Lines) > 0 {
		for _, line := range b.Lines {
			if x >= line.X && x < line.X+line.Width && y >= line.Y && y < line.Y+line.Height {
				return true
			}
		}
		return false
	}
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// textOffsetAt resolves a rune offset within the node's text from the
// line geometry.
func (b *Box) textOffsetAt(x, y float64) int {
	for _, line := range b.Lines {
		if y < line.Y || y >= line.Y+line.Height {
			continue
		}
		runes := []rune(line.Text)
		if len(runes) == 0 || line.Width <= 0 {
			return line.Start
		}
		perRune := line.Width / float64(len(runes))
		idx := int((x - line.X) / perRune)
		if idx < 0 {
			idx = 0
		}
		if idx > len(runes) {
			idx = len(runes)
		}
		return line.Start + idx
	}
	return 0
}
