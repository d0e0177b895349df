package layout

import (
	"strings"

	"skiff/pkg/html"
)

const (
	pagePadding     = 8.0
	defaultFontSize = 16.0
	blockMargin     = 8.0
	indentWidth     = 24.0

	placeholderImageWidth  = 120.0
	placeholderImageHeight = 80.0
)

// Engine computes a layout tree for a document at a given available
// width. Content height follows from the content; the scroll layer deals
// with overflow.
type Engine struct {
	Measurer Measurer
}

func NewEngine() *Engine {
	return &Engine{Measurer: EstimatingMeasurer{}}
}

type style struct {
	size float64
	bold bool
	mono bool
	pre  bool
}

// Layout builds a fresh layout tree for the document. The returned root's
// bounding size is the content size.
func (e *Engine) Layout(doc *html.Document, availWidth float64) *Box {
	root := &Box{
		Node:     doc.Root,
		Width:    availWidth,
		FontSize: defaultFontSize,
		byNode:   make(map[*html.Node]*Box),
		sel:      &Selection{},
	}
	c := &layoutPass{engine: e, root: root, doc: doc}
	st := style{size: defaultFontSize}
	y := c.layoutChildren(doc.Root.Children, root, pagePadding, pagePadding, availWidth-2*pagePadding, st)
	root.Height = y + pagePadding
	// Unwrappable content (preformatted lines, wide images) can stick out
	// past the available width; the root reports the overflow so the
	// scroll layer sees the true content width.
	if right := maxRightExtent(root) + pagePadding; right > root.Width {
		root.Width = right
	}
	return root
}

func maxRightExtent(b *Box) float64 {
	right := 0.0
	for _, l := range b.Lines {
		if e := l.X + l.Width; e > right {
			right = e
		}
	}
	for _, c := range b.Children {
		if e := maxRightExtent(c); e > right {
			right = e
		}
		if len(c.Lines) > 0 {
			continue
		}
		if e := c.X + c.Width; e > right {
			right = e
		}
	}
	return right
}

type layoutPass struct {
	engine *Engine
	root   *Box
	doc    *html.Document
}

// inlineFlow is the cursor shared by consecutive inline siblings within a
// block.
type inlineFlow struct {
	x, y  float64
	lineH float64
	left  float64
	width float64
}

func (f *inlineFlow) newline() {
	if f.lineH == 0 {
		f.lineH = defaultFontSize * 1.2
	}
	f.y += f.lineH
	f.x = f.left
	f.lineH = 0
}

// flush terminates any open line and returns the y position below it.
func (f *inlineFlow) flush() float64 {
	if f.lineH > 0 {
		f.y += f.lineH
		f.lineH = 0
	}
	f.x = f.left
	return f.y
}

func (c *layoutPass) layoutChildren(children []*html.Node, parent *Box, left, y, width float64, st style) float64 {
	flow := &inlineFlow{x: left, y: y, left: left, width: width}
	for _, child := range children {
		if !isRenderable(child) {
			continue
		}
		if isInline(child) {
			c.layoutInline(child, parent, flow, st)
			continue
		}
		blockY := flow.flush()
		blockY = c.layoutBlock(child, parent, left, blockY, width, st)
		flow.y = blockY
		flow.x = left
	}
	return flow.flush()
}

func (c *layoutPass) layoutBlock(n *html.Node, parent *Box, left, y, width float64, st style) float64 {
	box := c.newBox(n, parent)
	childStyle := applyTagStyle(st, n.TagName)

	margin := blockMargin
	indent := 0.0
	switch n.TagName {
	case "blockquote", "ul", "ol", "dd":
		indent = indentWidth
	case "li":
		indent = indentWidth / 2
		margin = 0
	case "div", "body", "html", "header", "footer", "main", "section",
		"article", "nav", "form", "dl", "dt":
		margin = 0
	}

	box.X = left + indent
	box.Y = y + margin
	box.Width = width - indent
	box.FontSize = childStyle.size
	box.Bold = childStyle.bold
	box.Mono = childStyle.mono

	switch n.TagName {
	case "hr":
		box.Height = 2
	default:
		bottom := c.layoutChildren(n.Children, box, box.X, box.Y, box.Width, childStyle)
		box.Height = bottom - box.Y
	}
	return box.Y + box.Height + margin
}

func (c *layoutPass) layoutInline(n *html.Node, parent *Box, flow *inlineFlow, st style) {
	switch {
	case n.Type == html.TextNode:
		c.layoutText(n, parent, flow, st)
	case n.TagName == "br":
		flow.newline()
	case n.TagName == "img":
		box := c.newBox(n, parent)
		c.sizeImageBox(box, n)
		if flow.x+box.Width > flow.left+flow.width && flow.x > flow.left {
			flow.newline()
		}
		box.X = flow.x
		box.Y = flow.y
		flow.x += box.Width
		if box.Height > flow.lineH {
			flow.lineH = box.Height
		}
	default:
		box := c.newBox(n, parent)
		childStyle := applyTagStyle(st, n.TagName)
		box.FontSize = childStyle.size
		box.Bold = childStyle.bold
		box.Mono = childStyle.mono
		for _, child := range n.Children {
			if isRenderable(child) {
				c.layoutInline(child, box, flow, childStyle)
			}
		}
		boundChildren(box)
	}
}

func (c *layoutPass) layoutText(n *html.Node, parent *Box, flow *inlineFlow, st style) {
	box := c.newBox(n, parent)
	box.FontSize = st.size
	box.Bold = st.bold
	box.Mono = st.mono

	m := c.engine.Measurer
	lineH := m.LineHeight(st.size)

	if st.pre {
		// Preformatted text: honor embedded newlines, never wrap.
		offset := 0
		for i, lineText := range strings.Split(n.Text, "\n") {
			if i > 0 {
				flow.newline()
			}
			w := m.Advance(lineText, st.size)
			box.Lines = append(box.Lines, Line{
				Text: lineText, X: flow.x, Y: flow.y,
				Width: w, Height: lineH, Start: offset,
			})
			flow.x += w
			if lineH > flow.lineH {
				flow.lineH = lineH
			}
			offset += len([]rune(lineText)) + 1
		}
	} else {
		firstMax := flow.left + flow.width - flow.x
		runs := wrapRuns(n.Text, st.size, firstMax, flow.width, m)
		for i, r := range runs {
			if i > 0 {
				flow.newline()
			}
			w := m.Advance(r.text, st.size)
			box.Lines = append(box.Lines, Line{
				Text: r.text, X: flow.x, Y: flow.y,
				Width: w, Height: lineH, Start: r.start,
			})
			flow.x += w
			if lineH > flow.lineH {
				flow.lineH = lineH
			}
		}
	}
	boundLines(box)
}

type textRun struct {
	text  string
	start int
}

// wrapRuns greedily wraps normalized text, tracking the rune offset of
// each run's first word so hit-testing can map positions back into the
// node's text.
func wrapRuns(text string, fontSize, firstMax, restMax float64, m Measurer) []textRun {
	if m.Advance(text, fontSize) <= firstMax {
		return []textRun{{text: text, start: 0}}
	}

	type word struct {
		text  string
		start int
	}
	var words []word
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		for i < len(runes) && runes[i] == ' ' {
			i++
		}
		start := i
		for i < len(runes) && runes[i] != ' ' {
			i++
		}
		if i > start {
			words = append(words, word{text: string(runes[start:i]), start: start})
		}
	}
	if len(words) == 0 {
		return []textRun{{text: text, start: 0}}
	}

	var runs []textRun
	cur := textRun{text: words[0].text, start: words[0].start}
	max := firstMax
	for _, w := range words[1:] {
		candidate := cur.text + " " + w.text
		if m.Advance(candidate, fontSize) <= max {
			cur.text = candidate
			continue
		}
		runs = append(runs, cur)
		cur = textRun{text: w.text, start: w.start}
		max = restMax
	}
	runs = append(runs, cur)
	return runs
}

func (c *layoutPass) newBox(n *html.Node, parent *Box) *Box {
	box := &Box{Node: n, Parent: parent}
	parent.Children = append(parent.Children, box)
	c.root.byNode[n] = box
	return box
}

func (c *layoutPass) sizeImageBox(box *Box, n *html.Node) {
	src, _ := n.GetAttribute("src")
	box.ImageSrc = src
	if img, ok := c.doc.Images[src]; ok {
		bounds := img.Bounds()
		box.Width = float64(bounds.Dx())
		box.Height = float64(bounds.Dy())
		return
	}
	box.Width = placeholderImageWidth
	box.Height = placeholderImageHeight
}

func applyTagStyle(st style, tag string) style {
	switch tag {
	case "h1":
		st.size = 32
		st.bold = true
	case "h2":
		st.size = 24
		st.bold = true
	case "h3":
		st.size = 19
		st.bold = true
	case "h4", "h5", "h6":
		st.bold = true
	case "b", "strong":
		st.bold = true
	case "pre":
		st.mono = true
		st.pre = true
	case "code", "tt", "kbd":
		st.mono = true
	}
	return st
}

// boundLines sets a text box's rectangle to the union of its lines.
func boundLines(b *Box) {
	if len(b.Lines) == 0 {
		return
	}
	minX, minY := b.Lines[0].X, b.Lines[0].Y
	maxX, maxY := minX, minY
	for _, l := range b.Lines {
		if l.X < minX {
			minX = l.X
		}
		if l.Y < minY {
			minY = l.Y
		}
		if l.X+l.Width > maxX {
			maxX = l.X + l.Width
		}
		if l.Y+l.Height > maxY {
			maxY = l.Y + l.Height
		}
	}
	b.X, b.Y, b.Width, b.Height = minX, minY, maxX-minX, maxY-minY
}

// boundChildren sets an inline element box's rectangle to the union of
// its children.
func boundChildren(b *Box) {
	if len(b.Children) == 0 {
		return
	}
	first := b.Children[0]
	minX, minY := first.X, first.Y
	maxX, maxY := first.X+first.Width, first.Y+first.Height
	for _, c := range b.Children[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X+c.Width > maxX {
			maxX = c.X + c.Width
		}
		if c.Y+c.Height > maxY {
			maxY = c.Y + c.Height
		}
	}
	b.X, b.Y, b.Width, b.Height = minX, minY, maxX-minX, maxY-minY
}

func isRenderable(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	switch n.TagName {
	case "head", "title", "meta", "link", "script", "style", "base":
		return false
	}
	return true
}

func isInline(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	switch n.TagName {
	case "a", "b", "strong", "i", "em", "u", "span", "code", "tt", "kbd",
		"small", "sub", "sup", "br", "img", "abbr", "cite", "q", "mark":
		return true
	}
	return false
}
