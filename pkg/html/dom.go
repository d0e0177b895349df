package html

import (
	"image"
	gocolor "image/color"
	"strings"

	"skiff/pkg/web"
)

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is one node of a document tree. Parent links are non-owning; the
// document owns the whole tree.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node

	listeners map[string][]EventHandler
}

// Document is the root of a content tree. It exclusively owns its node
// tree. The hovered node is observational only and is dropped with the
// tree when the document is superseded.
type Document struct {
	Root    *Node
	Title   string
	Base    *web.Address
	Scripts []string

	// Decoded images keyed by source address string, populated by the
	// document builder for synthesized image documents.
	Images map[string]image.Image

	hovered      *Node
	viewportRect image.Rectangle

	// OnLayoutUpdated fires when document content changed in a way that
	// requires a fresh layout pass.
	OnLayoutUpdated func()
}

func NewDocument(base *web.Address) *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Base:   base,
		Images: make(map[string]image.Image),
	}
}

// HoveredNode returns the currently hovered node, or nil.
func (d *Document) HoveredNode() *Node { return d.hovered }

// SetHoveredNode records the node under the pointer.
func (d *Document) SetHoveredNode(n *Node) { d.hovered = n }

// SetViewportRect records the currently visible rectangle in content
// coordinates, for viewport-relative computations.
func (d *Document) SetViewportRect(r image.Rectangle) { d.viewportRect = r }

// ViewportRect returns the last propagated visible rectangle.
func (d *Document) ViewportRect() image.Rectangle { return d.viewportRect }

// NotifyLayoutUpdated fires the layout-updated hook if one is installed.
func (d *Document) NotifyLayoutUpdated() {
	if d.OnLayoutUpdated != nil {
		d.OnLayoutUpdated()
	}
}

// BackgroundColor returns the document background, honoring a body
// bgcolor attribute when present.
func (d *Document) BackgroundColor() gocolor.Color {
	if body := d.Root.FindElement("body"); body != nil {
		if bg, ok := body.GetAttribute("bgcolor"); ok {
			if c, ok := parseColor(bg); ok {
				return c
			}
		}
	}
	return gocolor.White
}

// ElementByID returns the first element with the given id attribute.
func (d *Document) ElementByID(id string) *Node {
	return d.Root.find(func(n *Node) bool {
		v, ok := n.GetAttribute("id")
		return ok && v == id
	})
}

// AnchorByName returns the first <a> element with the given name
// attribute. Fragment navigation falls back to this when no element
// carries a matching id.
func (d *Document) AnchorByName(name string) *Node {
	return d.Root.find(func(n *Node) bool {
		if n.Type != ElementNode || n.TagName != "a" {
			return false
		}
		v, ok := n.GetAttribute("name")
		return ok && v == name
	})
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(&Node{Type: TextNode, Text: text})
}

// TextContent returns the concatenated text of this node and its
// descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// EnclosingLink walks up from n looking for an <a> element with an href
// attribute. Returns nil if n is not inside a link.
func (n *Node) EnclosingLink() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == ElementNode && cur.TagName == "a" {
			if _, ok := cur.GetAttribute("href"); ok {
				return cur
			}
		}
	}
	return nil
}

// EnclosingTitled walks up from n looking for an element carrying a
// non-empty advisory title attribute.
func (n *Node) EnclosingTitled() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == ElementNode {
			if v, ok := cur.GetAttribute("title"); ok && v != "" {
				return cur
			}
		}
	}
	return nil
}

// FindElement returns the first descendant element with the given tag
// name, or n itself if it matches.
func (n *Node) FindElement(tag string) *Node {
	return n.find(func(c *Node) bool {
		return c.Type == ElementNode && c.TagName == tag
	})
}

func (n *Node) find(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, child := range n.Children {
		if found := child.find(pred); found != nil {
			return found
		}
	}
	return nil
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

func parseColor(s string) (gocolor.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, ok1 := parseHexByte(s[1:3])
		g, ok2 := parseHexByte(s[3:5])
		b, ok3 := parseHexByte(s[5:7])
		if ok1 && ok2 && ok3 {
			return gocolor.RGBA{R: r, G: g, B: b, A: 0xff}, true
		}
	}
	return nil, false
}

var namedColors = map[string]gocolor.RGBA{
	"white":  {0xff, 0xff, 0xff, 0xff},
	"black":  {0x00, 0x00, 0x00, 0xff},
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0x80, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"gray":   {0x80, 0x80, 0x80, 0xff},
	"silver": {0xc0, 0xc0, 0xc0, 0xff},
}

func parseHexByte(s string) (uint8, bool) {
	var v uint8
	for i := 0; i < 2; i++ {
		c := s[i]
		var d uint8
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
