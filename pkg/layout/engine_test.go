package layout

import (
	"image"
	"strings"
	"testing"

	"skiff/pkg/html"
	"skiff/pkg/web"
)

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func layoutTestDoc(t *testing.T, markup string) *html.Document {
	t.Helper()
	doc, err := html.TreeParser{}.Parse([]byte(markup), "utf-8", web.ParseAddress("http://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestLayout_BlocksStackVertically(t *testing.T) {
	doc := layoutTestDoc(t, `<p>one</p><p>two</p>`)
	root := NewEngine().Layout(doc, 400)

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 block boxes, got %d", len(root.Children))
	}
	first, second := root.Children[0], root.Children[1]
	if second.Y < first.Y+first.Height {
		t.Errorf("second block at y=%v overlaps first (y=%v h=%v)",
			second.Y, first.Y, first.Height)
	}
	if root.Height <= second.Y {
		t.Errorf("root height %v does not cover content ending at %v", root.Height, second.Y)
	}
}

func TestLayout_HeadingStyle(t *testing.T) {
	doc := layoutTestDoc(t, `<h1>big</h1><p>normal</p>`)
	root := NewEngine().Layout(doc, 400)

	h1 := root.Children[0]
	if h1.FontSize != 32 || !h1.Bold {
		t.Errorf("h1 style = size %v bold %v", h1.FontSize, h1.Bold)
	}
	p := root.Children[1]
	if p.FontSize != defaultFontSize || p.Bold {
		t.Errorf("p style = size %v bold %v", p.FontSize, p.Bold)
	}
}

func TestLayout_TextWrapsAtAvailableWidth(t *testing.T) {
	doc := layoutTestDoc(t, `<p>alpha beta gamma delta epsilon zeta eta theta</p>`)
	root := NewEngine().Layout(doc, 200)

	text := root.Children[0].Children[0]
	if len(text.Lines) < 2 {
		t.Fatalf("expected wrapped text, got %d line(s)", len(text.Lines))
	}
	for i := 1; i < len(text.Lines); i++ {
		prev, cur := text.Lines[i-1], text.Lines[i]
		if cur.Y <= prev.Y {
			t.Errorf("line %d at y=%v not below line %d at y=%v", i, cur.Y, i-1, prev.Y)
		}
		if cur.Start <= prev.Start {
			t.Errorf("line %d start offset %d not after line %d offset %d",
				i, cur.Start, i-1, prev.Start)
		}
	}
}

func TestLayout_PreservesPreformattedNewlines(t *testing.T) {
	doc := layoutTestDoc(t, "<pre>first\nsecond\nthird</pre>")
	root := NewEngine().Layout(doc, 400)

	text := root.Children[0].Children[0]
	if len(text.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(text.Lines))
	}
	if text.Lines[0].Text != "first" || text.Lines[2].Text != "third" {
		t.Errorf("lines = %v", text.Lines)
	}
	if !text.Mono {
		t.Error("pre text should be monospace")
	}
}

func TestLayout_WideContentReportsOverflow(t *testing.T) {
	doc := layoutTestDoc(t, "<pre>"+strings.Repeat("x", 100)+"</pre>")
	root := NewEngine().Layout(doc, 200)
	if root.Width <= 200 {
		t.Errorf("root width = %v, want the overflowing content width", root.Width)
	}

	narrow := layoutTestDoc(t, `<p>short</p>`)
	if w := NewEngine().Layout(narrow, 200).Width; w != 200 {
		t.Errorf("root width = %v, want the available width", w)
	}
}

func TestLayout_SkipsNonRenderable(t *testing.T) {
	doc := layoutTestDoc(t, `<html><head><title>T</title></head><body><p>visible</p></body></html>`)
	root := NewEngine().Layout(doc, 400)

	var sawTitle bool
	var walk func(*Box)
	walk = func(b *Box) {
		if b.Node != nil && b.Node.TagName == "title" {
			sawTitle = true
		}
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(root)
	if sawTitle {
		t.Error("title must not produce a layout box")
	}
}

func TestLayout_ImagePlaceholderAndRealSize(t *testing.T) {
	doc := layoutTestDoc(t, `<p><img src="http://example.com/a.png"></p>`)
	root := NewEngine().Layout(doc, 400)
	img := root.Children[0].Children[0]
	if img.Width != placeholderImageWidth || img.Height != placeholderImageHeight {
		t.Errorf("placeholder size = %vx%v", img.Width, img.Height)
	}

	doc.Images["http://example.com/a.png"] = testImage(30, 20)
	root = NewEngine().Layout(doc, 400)
	img = root.Children[0].Children[0]
	if img.Width != 30 || img.Height != 20 {
		t.Errorf("decoded size = %vx%v, want 30x20", img.Width, img.Height)
	}
}

func TestBoxForNode(t *testing.T) {
	doc := layoutTestDoc(t, `<p id="x">find me</p>`)
	root := NewEngine().Layout(doc, 400)

	p := doc.ElementByID("x")
	box := root.BoxForNode(p)
	if box == nil || box.Node != p {
		t.Fatalf("BoxForNode = %v", box)
	}
	if root.BoxForNode(&html.Node{Type: html.ElementNode, TagName: "p"}) != nil {
		t.Error("unknown node should have no box")
	}
}

func TestHitTest_TextOffsets(t *testing.T) {
	doc := layoutTestDoc(t, `<p>hello world</p>`)
	root := NewEngine().Layout(doc, 400)

	text := root.Children[0].Children[0]
	line := text.Lines[0]
	perRune := line.Width / float64(len([]rune(line.Text)))

	hit := root.HitTest(line.X+perRune*6+1, line.Y+1)
	if hit == nil {
		t.Fatal("expected a hit on the text")
	}
	if hit.Box != text {
		t.Errorf("hit box = %v", hit.Box.Node)
	}
	if hit.IndexInNode != 6 {
		t.Errorf("IndexInNode = %d, want 6", hit.IndexInNode)
	}

	if root.HitTest(-50, -50) != nil {
		t.Error("point outside content should miss")
	}
}

func TestHitTest_PrefersDeepestBox(t *testing.T) {
	doc := layoutTestDoc(t, `<p><a href="/x">link text</a></p>`)
	root := NewEngine().Layout(doc, 400)

	a := root.Children[0].Children[0]
	text := a.Children[0]
	line := text.Lines[0]

	hit := root.HitTest(line.X+1, line.Y+1)
	if hit == nil || hit.Box != text {
		t.Fatalf("expected the text box, got %+v", hit)
	}
	if hit.Box.Node.EnclosingLink() == nil {
		t.Error("hit node should resolve to its enclosing link")
	}
}
