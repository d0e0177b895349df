package html

import (
	"strings"
	"testing"

	"skiff/pkg/web"
)

func parseTestDoc(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := TreeParser{}.Parse([]byte(markup), "utf-8", web.ParseAddress("http://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestTreeParser_SingleElement(t *testing.T) {
	doc := parseTestDoc(t, "<div></div>")
	if len(doc.Root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(doc.Root.Children))
	}
	if doc.Root.Children[0].TagName != "div" {
		t.Errorf("expected tag 'div', got '%s'", doc.Root.Children[0].TagName)
	}
}

func TestTreeParser_NestedElements(t *testing.T) {
	doc := parseTestDoc(t, `<div><p>Hello</p></div>`)
	div := doc.Root.Children[0]
	if div.TagName != "div" {
		t.Fatalf("expected 'div', got '%s'", div.TagName)
	}
	if len(div.Children) != 1 || div.Children[0].TagName != "p" {
		t.Fatalf("expected div > p, got %+v", div.Children)
	}
	p := div.Children[0]
	if len(p.Children) != 1 || p.Children[0].Type != TextNode || p.Children[0].Text != "Hello" {
		t.Errorf("expected text 'Hello' inside p")
	}
}

func TestTreeParser_Attributes(t *testing.T) {
	doc := parseTestDoc(t, `<a href="/next" title="go next">next</a>`)
	a := doc.Root.Children[0]
	if href, ok := a.GetAttribute("href"); !ok || href != "/next" {
		t.Errorf("href = %q, %v", href, ok)
	}
	if title, ok := a.GetAttribute("title"); !ok || title != "go next" {
		t.Errorf("title = %q, %v", title, ok)
	}
}

func TestTreeParser_TitleCapture(t *testing.T) {
	doc := parseTestDoc(t, `<html><head><title> My Page </title></head><body></body></html>`)
	if doc.Title != "My Page" {
		t.Errorf("title = %q, want %q", doc.Title, "My Page")
	}
}

func TestTreeParser_ScriptCapture(t *testing.T) {
	doc := parseTestDoc(t, `<body><script>var x = 1 < 2;</script><p>text</p></body>`)
	if len(doc.Scripts) != 1 {
		t.Fatalf("expected 1 script, got %d", len(doc.Scripts))
	}
	if doc.Scripts[0] != "var x = 1 < 2;" {
		t.Errorf("script = %q", doc.Scripts[0])
	}
	// The script tag and its content must not appear in the tree.
	if doc.Root.FindElement("script") != nil {
		t.Error("script element should not be in the tree")
	}
}

func TestTreeParser_AutoCloseParagraph(t *testing.T) {
	doc := parseTestDoc(t, `<body><p>one<p>two</body>`)
	body := doc.Root.Children[0]
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(body.Children))
	}
	for i, want := range []string{"one", "two"} {
		if got := strings.TrimSpace(body.Children[i].TextContent()); got != want {
			t.Errorf("paragraph %d text = %q, want %q", i, got, want)
		}
	}
}

func TestTreeParser_VoidElements(t *testing.T) {
	doc := parseTestDoc(t, `<p>before<br>after</p>`)
	p := doc.Root.Children[0]
	if len(p.Children) != 3 {
		t.Fatalf("expected text, br, text; got %d children", len(p.Children))
	}
	if p.Children[1].TagName != "br" {
		t.Errorf("middle child = %q", p.Children[1].TagName)
	}
}

func TestTreeParser_CharsetDecode(t *testing.T) {
	// "café" in ISO-8859-1: the é is a single 0xE9 byte.
	data := []byte{'c', 'a', 'f', 0xe9}
	doc, err := TreeParser{}.Parse(
		append([]byte("<p>"), append(data, []byte("</p>")...)...),
		"iso-8859-1", web.ParseAddress("http://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.Children[0].TextContent(); got != "café" {
		t.Errorf("text = %q, want %q", got, "café")
	}
}
